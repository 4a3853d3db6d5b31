package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"server/internal/compose"
	"server/internal/domain"
)

type uploadResponse struct {
	ID         string `json:"id"`
	StorageKey string `json:"storage_key"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Bytes      int64  `json:"bytes"`
}

// UploadCreate accepts one customer photo, gatekeeps it through the image
// validator, and persists it. Only images accepted here may later be
// assigned to print slots; the composition engine does not re-validate.
func (a *App) UploadCreate(w http.ResponseWriter, r *http.Request) {
	// One extra MB of headroom so the validator, not the transport,
	// produces the size rejection customers see.
	r.Body = http.MaxBytesReader(w, r.Body, (a.Cfg.UploadMaxSizeMB+1)<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "multipart field 'file' is required")
		return
	}
	defer file.Close()

	ws, err := compose.NewWorkspace(a.Cfg.WorkspacePath)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to prepare workspace")
		return
	}
	defer ws.Close()

	staged, size, err := ws.StageFrom("upload"+uploadExt(header.Filename), file)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "failed to read upload")
		return
	}

	verdict, err := compose.ValidateImage(staged, compose.Limits{
		MaxSizeMB: a.Cfg.UploadMaxSizeMB,
		MinWidth:  a.Cfg.UploadMinWidth,
		MinHeight: a.Cfg.UploadMinHeight,
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("uploads: validator io failure")
		a.error(w, http.StatusInternalServerError, "internal", "failed to validate upload")
		return
	}
	if !verdict.Valid {
		a.error(w, http.StatusUnprocessableEntity, string(verdict.Reason), "image rejected")
		return
	}

	data, err := os.ReadFile(staged)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to read staged upload")
		return
	}
	id := uuid.NewString()
	key := fmt.Sprintf("uploads/%s%s", id, uploadExt(header.Filename))
	savedKey, err := a.Store.Write(r.Context(), key, data)
	if err != nil {
		a.Logger.Error().Err(err).Msg("uploads: persist failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to store upload")
		return
	}

	upload := &domain.Upload{
		ID:         id,
		StorageKey: savedKey,
		MIME:       uploadMIME(header.Filename),
		Bytes:      size,
		Width:      verdict.Width,
		Height:     verdict.Height,
	}
	if err := a.Uploads.Create(r.Context(), upload); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to record upload")
		return
	}
	a.json(w, http.StatusCreated, uploadResponse{
		ID:         upload.ID,
		StorageKey: upload.StorageKey,
		Width:      upload.Width,
		Height:     upload.Height,
		Bytes:      upload.Bytes,
	})
}

func uploadExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return ".jpg"
	case ".gif":
		return ".gif"
	default:
		return ".png"
	}
}

func uploadMIME(filename string) string {
	switch uploadExt(filename) {
	case ".jpg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	default:
		return "image/png"
	}
}
