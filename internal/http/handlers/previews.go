package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"server/internal/compose"
	"server/internal/domain"
)

type previewRequest struct {
	LayoutID    string            `json:"layout_id"`
	Assignments map[string]string `json:"assignments"`
	MaxWidth    int               `json:"max_width"`
}

// PreviewCreate renders a small composition for customer feedback and
// streams it back as PNG. Slots whose source image could not be used are
// reported in the X-Skipped-Slots header so the storefront can warn the
// customer without failing the preview.
func (a *App) PreviewCreate(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	layout, err := a.Layouts.GetByID(r.Context(), req.LayoutID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "layout not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load layout")
		return
	}

	assignments, err := a.resolveAssignments(r, layout, req.Assignments)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	maxWidth := req.MaxWidth
	if maxWidth <= 0 || maxWidth > 1024 {
		maxWidth = a.Cfg.PreviewMaxWidth
	}

	basePath, err := a.Store.Resolve(layout.BaseImageKey)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to resolve base image")
		return
	}

	result, err := a.Engine.Preview(r.Context(), compose.FileSource(basePath),
		layout.BaseWidth, layout.BaseHeight, layout.Slots, assignments, maxWidth)
	if err != nil {
		if errors.Is(err, domain.ErrBaseImageNotFound) {
			a.Logger.Error().Err(err).Str("layout_id", layout.ID).Msg("previews: base image unreadable")
		} else {
			a.Logger.Error().Err(err).Str("layout_id", layout.ID).Msg("previews: composition failed")
		}
		a.error(w, http.StatusInternalServerError, "render_failed", "could not generate preview")
		return
	}

	png, err := result.PNG()
	if err != nil {
		a.error(w, http.StatusInternalServerError, "render_failed", "could not encode preview")
		return
	}
	if len(result.SkippedSlots) > 0 {
		w.Header().Set("X-Skipped-Slots", strings.Join(result.SkippedSlots, ","))
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// resolveAssignments maps slot id -> upload id onto slot id -> on-disk
// source, checking that every referenced slot and upload actually exists.
func (a *App) resolveAssignments(r *http.Request, layout *domain.Layout, refs map[string]string) (map[string]compose.Source, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	slotIDs := make(map[string]struct{}, len(layout.Slots))
	for _, s := range layout.Slots {
		slotIDs[s.ID] = struct{}{}
	}
	uploadIDs := make([]string, 0, len(refs))
	for slotID, uploadID := range refs {
		if _, ok := slotIDs[slotID]; !ok {
			return nil, errors.New("unknown slot id " + slotID)
		}
		uploadIDs = append(uploadIDs, uploadID)
	}
	uploads, err := a.Uploads.GetByIDs(r.Context(), uploadIDs)
	if err != nil {
		return nil, errors.New("failed to load uploads")
	}
	assignments := make(map[string]compose.Source, len(refs))
	for slotID, uploadID := range refs {
		upload, ok := uploads[uploadID]
		if !ok {
			return nil, errors.New("unknown upload id " + uploadID)
		}
		path, err := a.Store.Resolve(upload.StorageKey)
		if err != nil {
			return nil, errors.New("failed to resolve upload " + uploadID)
		}
		assignments[slotID] = compose.FileSource(path)
	}
	return assignments, nil
}
