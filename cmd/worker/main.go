package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"server/internal/compose"
	"server/internal/domain"
	"server/internal/infra"
	"server/internal/providers/notify"
	"server/internal/sqlinline"
	"server/internal/storage"
	zipbundle "server/pkg/zip"
)

const jobPollInterval = 2 * time.Second

var errNoJobAvailable = errors.New("no job available")

type renderJob struct {
	ID          string
	OrderItemID string
	Attempts    int
}

// renderItem is everything one job needs, joined in a single query.
type renderItem struct {
	OrderItemID   string
	OrderID       string
	Quantity      int
	SlotImages    map[string]string
	LayoutID      string
	BaseImageKey  string
	BaseWidth     int
	BaseHeight    int
	Slots         []domain.PrintSlot
	ProductName   string
	CustomerName  string
	CustomerPhone string
	Locale        string
}

type renderWorker struct {
	ctx    context.Context
	runner *infra.SQLRunner
	logger infra.Logger
	engine *compose.Engine
	store  *storage.FileStore
	sender *notify.Sender
	cfg    *infra.Config
}

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	storagePath := cfg.StoragePath
	if !filepath.IsAbs(storagePath) {
		if abs, err := filepath.Abs(storagePath); err == nil {
			storagePath = abs
		}
	}
	fileStore, err := storage.NewFileStore(storagePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure storage")
	}

	worker := &renderWorker{
		ctx:    ctx,
		runner: infra.NewSQLRunner(pool, logger),
		logger: logger,
		engine: compose.NewEngine(logger),
		store:  fileStore,
		sender: notify.NewSender(notify.Options{
			WebhookURL: cfg.NotifyWebhookURL,
			AuthToken:  cfg.NotifyAuthToken,
			HTTPClient: &http.Client{Timeout: 15 * time.Second},
			Logger:     &logger,
		}),
		cfg: cfg,
	}

	if err := worker.Run(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("worker: stopped with error")
	}
	logger.Info().Msg("worker: stopped")
}

func (w *renderWorker) Run() error {
	w.logger.Info().Msg("worker: started")
	for {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		job, err := w.claimJob()
		if err != nil {
			if !errors.Is(err, errNoJobAvailable) {
				w.logger.Error().Err(err).Msg("worker: failed to claim job")
			}
			time.Sleep(jobPollInterval)
			continue
		}

		w.handleJob(job)
	}
}

func (w *renderWorker) claimJob() (renderJob, error) {
	row := w.runner.QueryRow(w.ctx, sqlinline.QWorkerClaimRenderJob)
	var j renderJob
	if err := row.Scan(&j.ID, &j.OrderItemID, &j.Attempts); err != nil {
		if infra.IsNoRows(err) {
			return renderJob{}, errNoJobAvailable
		}
		return renderJob{}, err
	}
	return j, nil
}

func (w *renderWorker) handleJob(job renderJob) {
	w.logger.Info().Str("job_id", job.ID).Str("order_item_id", job.OrderItemID).Msg("worker: picked render job")
	skipped, err := w.renderItem(job)
	if err != nil {
		w.logger.Error().Err(err).Str("job_id", job.ID).Msg("worker: render failed")
		w.finishJob(job.ID, domain.RenderJobFailed, err.Error(), nil)
		return
	}
	w.finishJob(job.ID, domain.RenderJobSucceeded, "", skipped)
}

func (w *renderWorker) finishJob(jobID string, status domain.RenderJobStatus, errMsg string, skipped []string) {
	if skipped == nil {
		skipped = []string{}
	}
	skippedJSON, _ := json.Marshal(skipped)
	if _, err := w.runner.Exec(w.ctx, sqlinline.QFinishRenderJob, jobID, string(status), errMsg, skippedJSON); err != nil {
		w.logger.Error().Err(err).Str("job_id", jobID).Msg("worker: update job status failed")
	}
}

func (w *renderWorker) loadRenderItem(orderItemID string) (*renderItem, error) {
	row := w.runner.QueryRow(w.ctx, sqlinline.QSelectRenderItem, orderItemID)
	var item renderItem
	var slotImagesJSON, slotsJSON []byte
	if err := row.Scan(&item.OrderItemID, &item.OrderID, &item.Quantity, &slotImagesJSON,
		&item.LayoutID, &item.BaseImageKey, &item.BaseWidth, &item.BaseHeight, &slotsJSON,
		&item.ProductName, &item.CustomerName, &item.CustomerPhone, &item.Locale); err != nil {
		return nil, fmt.Errorf("load order item: %w", err)
	}
	if len(slotImagesJSON) > 0 {
		if err := json.Unmarshal(slotImagesJSON, &item.SlotImages); err != nil {
			return nil, fmt.Errorf("decode slot images: %w", err)
		}
	}
	slots, err := domain.DecodeSlots(slotsJSON)
	if err != nil {
		return nil, err
	}
	item.Slots = slots
	return &item, nil
}

// renderItem composes the final manufacturing artwork for one order item,
// persists it with its print bundle, and notifies the customer. Per-slot
// source failures degrade the render (the slot shows bare base) but never
// fail the job; only a broken base image does.
func (w *renderWorker) renderItem(job renderJob) ([]string, error) {
	item, err := w.loadRenderItem(job.OrderItemID)
	if err != nil {
		return nil, err
	}

	ws, err := compose.NewWorkspace(w.cfg.WorkspacePath)
	if err != nil {
		return nil, err
	}
	defer ws.Close()

	// Stage slot sources into the call's own workspace so the engine
	// never depends on store internals and cleanup is one RemoveAll.
	assignments := make(map[string]compose.Source, len(item.SlotImages))
	var skipped []string
	for slotID, storageKey := range item.SlotImages {
		data, err := w.store.Read(w.ctx, storageKey)
		if err != nil {
			w.logger.Warn().Err(err).Str("slot_id", slotID).Str("storage_key", storageKey).
				Msg("worker: slot source missing in store, skipping")
			skipped = append(skipped, slotID)
			continue
		}
		staged, err := ws.Stage(slotID+filepath.Ext(storageKey), data)
		if err != nil {
			w.logger.Warn().Err(err).Str("slot_id", slotID).Msg("worker: staging slot source failed, skipping")
			skipped = append(skipped, slotID)
			continue
		}
		assignments[slotID] = compose.FileSource(staged)
	}

	basePath, err := w.store.Resolve(item.BaseImageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBaseImageNotFound, err)
	}

	result, err := w.engine.Compose(w.ctx, compose.Request{
		Base:         compose.FileSource(basePath),
		TargetWidth:  item.BaseWidth,
		TargetHeight: item.BaseHeight,
		Slots:        item.Slots,
		Assignments:  assignments,
	})
	if err != nil {
		return nil, err
	}
	skipped = append(skipped, result.SkippedSlots...)

	artwork, err := result.PNG()
	if err != nil {
		return nil, err
	}
	artworkKey, err := w.store.Write(w.ctx, fmt.Sprintf("composed/%s/artwork.png", item.OrderItemID), artwork)
	if err != nil {
		return nil, fmt.Errorf("persist artwork: %w", err)
	}
	w.recordAsset(item.OrderItemID, domain.ComposedAssetFinal, artworkKey, "image/png", int64(len(artwork)), result.Width, result.Height)

	trackingURL := w.cfg.TrackingBaseURL + "/" + item.OrderID
	qrPNG, err := notify.TrackingQR(trackingURL, 384)
	if err != nil {
		w.logger.Warn().Err(err).Str("order_id", item.OrderID).Msg("worker: tracking qr failed")
	}

	bundleFiles := []zipbundle.File{{Name: "artwork.png", Data: artwork}}
	if len(qrPNG) > 0 {
		bundleFiles = append(bundleFiles, zipbundle.File{Name: "tracking-qr.png", Data: qrPNG})
	}
	bundle, err := zipbundle.BuildBundle(zipbundle.Manifest{
		OrderItemID:  item.OrderItemID,
		OrderID:      item.OrderID,
		Quantity:     item.Quantity,
		ArtworkFile:  "artwork.png",
		Width:        result.Width,
		Height:       result.Height,
		SkippedSlots: skipped,
		RenderedAt:   time.Now().UTC(),
	}, bundleFiles)
	if err != nil {
		return nil, fmt.Errorf("build print bundle: %w", err)
	}
	bundleKey, err := w.store.Write(w.ctx, fmt.Sprintf("composed/%s/bundle.zip", item.OrderItemID), bundle)
	if err != nil {
		return nil, fmt.Errorf("persist print bundle: %w", err)
	}
	w.recordAsset(item.OrderItemID, domain.ComposedAssetBundle, bundleKey, "application/zip", int64(len(bundle)), 0, 0)

	if _, err := w.runner.Exec(w.ctx, sqlinline.QUpdateOrderStatus, item.OrderID, string(domain.OrderStatusInProgress)); err != nil {
		w.logger.Error().Err(err).Str("order_id", item.OrderID).Msg("worker: order status update failed")
	}

	msg := notify.OrderMessage{
		Phone:       item.CustomerPhone,
		Text:        notify.BuildOrderPaid(item.Locale, item.CustomerName, []string{item.ProductName}, item.OrderID, trackingURL),
		TrackingURL: trackingURL,
		QRPNG:       qrPNG,
	}
	if err := w.sender.Send(w.ctx, msg); err != nil {
		w.logger.Warn().Err(err).Str("order_id", item.OrderID).Msg("worker: notification failed")
	}

	return skipped, nil
}

func (w *renderWorker) recordAsset(orderItemID string, kind domain.ComposedAssetKind, key, mime string, size int64, width, height int) {
	if _, err := w.runner.Exec(w.ctx, sqlinline.QInsertComposedAsset,
		uuid.NewString(), orderItemID, string(kind), key, mime, size, width, height); err != nil {
		w.logger.Error().Err(err).Str("order_item_id", orderItemID).Msg("worker: record asset failed")
	}
}
