package compose

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"server/internal/domain"
)

// Request describes one composition call. Slots come from a validated
// layout and are treated as read-only; Assignments maps slot ids to the
// customer images filling them. Slots without an assignment render as
// bare base.
type Request struct {
	Base         Source
	TargetWidth  int
	TargetHeight int
	Slots        []domain.PrintSlot
	Assignments  map[string]Source
}

// Result is the flattened output of one composition call. The caller owns
// the image exclusively; the engine keeps no reference. SkippedSlots lists
// slots whose assigned source could not be read or decoded.
type Result struct {
	Image        *image.NRGBA
	Width        int
	Height       int
	SkippedSlots []string
}

// PNG encodes the composed image. PNG is lossless and deterministic,
// which keeps identical inputs byte-identical all the way to storage.
func (r *Result) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, r.Image, imaging.PNG); err != nil {
		return nil, fmt.Errorf("compose: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Engine renders flattened artwork from a layout's slots and a set of
// source images. It is stateless; one Engine may serve any number of
// concurrent calls.
type Engine struct {
	logger zerolog.Logger
	filter imaging.ResampleFilter
}

// NewEngine constructs an Engine logging through the given logger.
func NewEngine(logger zerolog.Logger) *Engine {
	return &Engine{logger: logger, filter: imaging.Lanczos}
}

// Compose renders one flattened image at exactly the requested target
// dimensions. The base image failing to load is fatal; an individual
// slot source failing is not — the slot is skipped, recorded in the
// result, and the remaining slots still render.
func (e *Engine) Compose(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.TargetWidth <= 0 || req.TargetHeight <= 0 {
		return nil, fmt.Errorf("compose: target dimensions %dx%d out of range", req.TargetWidth, req.TargetHeight)
	}

	base, err := decodeSource(req.Base)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBaseImageNotFound, err)
	}
	canvas := coverResize(base, req.TargetWidth, req.TargetHeight, e.filter)

	var skipped []string
	for _, slot := range orderSlots(req.Slots) {
		src, ok := req.Assignments[slot.ID]
		if !ok || src.IsZero() {
			continue
		}
		img, err := decodeSource(src)
		if err != nil {
			e.logger.Warn().Err(err).Str("slot_id", slot.ID).Msg("compose: slot source unreadable, skipping")
			skipped = append(skipped, slot.ID)
			continue
		}
		layer, at := e.renderSlot(slot, img, req.TargetWidth, req.TargetHeight)
		canvas = imaging.Overlay(canvas, layer, at, 1.0)
	}

	return &Result{
		Image:        canvas,
		Width:        req.TargetWidth,
		Height:       req.TargetHeight,
		SkippedSlots: skipped,
	}, nil
}

// renderSlot processes one source image to its slot rectangle and returns
// the layer plus its top-left placement on the canvas.
func (e *Engine) renderSlot(slot domain.PrintSlot, src image.Image, targetW, targetH int) (*image.NRGBA, image.Point) {
	rect := slotRect(slot, targetW, targetH)

	var layer *image.NRGBA
	switch slot.Fit {
	case domain.FitContain:
		layer = containResize(src, rect.W, rect.H, e.filter)
	default:
		layer = coverResize(src, rect.W, rect.H, e.filter)
	}

	at := image.Pt(rect.X, rect.Y)
	if slot.Rotation != 0 {
		// Rotate about the layer center and shift so the slot center
		// stays the pivot; exposed corners stay transparent.
		layer = imaging.Rotate(layer, slot.Rotation, color.NRGBA{})
		at.X -= (layer.Bounds().Dx() - rect.W) / 2
		at.Y -= (layer.Bounds().Dy() - rect.H) / 2
	}
	return layer, at
}

// coverResize scales the image to fully cover w x h and crops the excess,
// centered. Resize dimensions are ceil'd so no transparent sliver is ever
// left inside the covered region.
func coverResize(img image.Image, w, h int, filter imaging.ResampleFilter) *image.NRGBA {
	ow := img.Bounds().Dx()
	oh := img.Bounds().Dy()
	if ow == 0 || oh == 0 {
		return imaging.New(w, h, color.NRGBA{})
	}
	scale := math.Max(float64(w)/float64(ow), float64(h)/float64(oh))
	nw := int(math.Ceil(float64(ow) * scale))
	nh := int(math.Ceil(float64(oh) * scale))
	resized := imaging.Resize(img, nw, nh, filter)
	return imaging.CropAnchor(resized, w, h, imaging.Center)
}

// containResize scales the image, up or down, to the largest size that
// fits inside w x h preserving aspect ratio, and pads the remainder with
// full transparency so the slot shape stays visible through the padding.
func containResize(img image.Image, w, h int, filter imaging.ResampleFilter) *image.NRGBA {
	ow := img.Bounds().Dx()
	oh := img.Bounds().Dy()
	canvas := imaging.New(w, h, color.NRGBA{})
	if ow == 0 || oh == 0 {
		return canvas
	}
	scale := math.Min(float64(w)/float64(ow), float64(h)/float64(oh))
	nw := clampDim(int(math.Round(float64(ow)*scale)), w)
	nh := clampDim(int(math.Round(float64(oh)*scale)), h)
	fitted := imaging.Resize(img, nw, nh, filter)
	return imaging.PasteCenter(canvas, fitted)
}

func clampDim(n, max int) int {
	if n < 1 {
		return 1
	}
	if n > max {
		return max
	}
	return n
}

// orderSlots returns slots in paint order: zIndex ascending, declaration
// order preserved among equals.
func orderSlots(slots []domain.PrintSlot) []domain.PrintSlot {
	ordered := make([]domain.PrintSlot, len(slots))
	copy(ordered, slots)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ZIndex < ordered[j].ZIndex
	})
	return ordered
}
