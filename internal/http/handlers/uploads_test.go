package handlers

import (
	"bytes"
	"encoding/json"
	"image/color"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &body, mw.FormDataContentType()
}

func TestUploadCreateAccepts(t *testing.T) {
	app, store, _, uploads := newTestApp(t)

	body, contentType := multipartUpload(t, "photo.png", solidPNG(t, 640, 480, color.NRGBA{R: 200, A: 255}))
	r := httptest.NewRequest(http.MethodPost, "/v1/uploads", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	app.UploadCreate(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("status mismatch: got %d body %s", w.Code, w.Body.String())
	}
	var resp uploadResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Width != 640 || resp.Height != 480 {
		t.Fatalf("dimensions mismatch: %+v", resp)
	}
	if uploads.created == nil || uploads.created.StorageKey != resp.StorageKey {
		t.Fatalf("upload row mismatch: %+v", uploads.created)
	}
	if _, err := store.Read(r.Context(), resp.StorageKey); err != nil {
		t.Fatalf("stored bytes unreadable: %v", err)
	}
}

func TestUploadCreateRejectsUndecodable(t *testing.T) {
	app, _, _, uploads := newTestApp(t)

	body, contentType := multipartUpload(t, "junk.png", []byte("not an image"))
	r := httptest.NewRequest(http.MethodPost, "/v1/uploads", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	app.UploadCreate(w, r)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("undecodable upload must 422, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != "dimensions_unknown" {
		t.Fatalf("error slug mismatch: %q", resp["error"])
	}
	if uploads.created != nil {
		t.Fatal("rejected upload must not be persisted")
	}
}

func TestUploadCreateRejectsTooSmall(t *testing.T) {
	app, _, _, _ := newTestApp(t)
	app.Cfg.UploadMinWidth = 300
	app.Cfg.UploadMinHeight = 300

	body, contentType := multipartUpload(t, "tiny.png", solidPNG(t, 50, 50, color.NRGBA{A: 255}))
	r := httptest.NewRequest(http.MethodPost, "/v1/uploads", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	app.UploadCreate(w, r)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("undersized upload must 422, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != "image_too_small" {
		t.Fatalf("error slug mismatch: %q", resp["error"])
	}
}

func TestUploadCreateRequiresFileField(t *testing.T) {
	app, _, _, _ := newTestApp(t)
	r := httptest.NewRequest(http.MethodPost, "/v1/uploads", bytes.NewReader(nil))
	r.Header.Set("Content-Type", "multipart/form-data; boundary=none")
	w := httptest.NewRecorder()
	app.UploadCreate(w, r)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing file field must 400, got %d", w.Code)
	}
}

func TestUploadExtAndMIME(t *testing.T) {
	tests := []struct {
		filename string
		ext      string
		mime     string
	}{
		{"photo.JPG", ".jpg", "image/jpeg"},
		{"photo.jpeg", ".jpg", "image/jpeg"},
		{"anim.gif", ".gif", "image/gif"},
		{"photo.png", ".png", "image/png"},
		{"noext", ".png", "image/png"},
	}
	for _, tt := range tests {
		if got := uploadExt(tt.filename); got != tt.ext {
			t.Fatalf("uploadExt(%q) = %q want %q", tt.filename, got, tt.ext)
		}
		if got := uploadMIME(tt.filename); got != tt.mime {
			t.Fatalf("uploadMIME(%q) = %q want %q", tt.filename, got, tt.mime)
		}
	}
}
