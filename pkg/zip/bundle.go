package zip

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// File is one entry in a print bundle.
type File struct {
	Name string
	Data []byte
}

// Manifest describes a print bundle to the manufacturing side.
type Manifest struct {
	OrderItemID  string    `json:"order_item_id"`
	OrderID      string    `json:"order_id"`
	Quantity     int       `json:"quantity"`
	ArtworkFile  string    `json:"artwork_file"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	SkippedSlots []string  `json:"skipped_slots,omitempty"`
	RenderedAt   time.Time `json:"rendered_at"`
}

// BuildBundle archives the final artwork together with its manifest so
// manufacturing receives one self-describing file per order item.
func BuildBundle(manifest Manifest, files []File) ([]byte, error) {
	manifestJSON, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("zip: encode manifest: %w", err)
	}

	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	entries := append([]File{{Name: "manifest.json", Data: manifestJSON}}, files...)
	for _, f := range entries {
		w, err := zw.Create(f.Name)
		if err != nil {
			return nil, fmt.Errorf("zip: create %s: %w", f.Name, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil, fmt.Errorf("zip: write %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: close archive: %w", err)
	}
	return buf.Bytes(), nil
}
