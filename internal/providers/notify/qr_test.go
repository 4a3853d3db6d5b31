package notify

import (
	"bytes"
	"image/png"
	"testing"
)

func TestTrackingQR(t *testing.T) {
	data, err := TrackingQR("https://shop.example.com/track/order-1", 384)
	if err != nil {
		t.Fatalf("TrackingQR returned error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a decodable png: %v", err)
	}
	if img.Bounds().Dx() != 384 || img.Bounds().Dy() != 384 {
		t.Fatalf("qr size mismatch: got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestTrackingQRDefaultSize(t *testing.T) {
	data, err := TrackingQR("https://shop.example.com/track/order-1", 0)
	if err != nil {
		t.Fatalf("TrackingQR returned error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a decodable png: %v", err)
	}
	if img.Bounds().Dx() != 256 {
		t.Fatalf("default size mismatch: got %d", img.Bounds().Dx())
	}
}

func TestTrackingQRRequiresURL(t *testing.T) {
	if _, err := TrackingQR("", 256); err == nil {
		t.Fatal("expected error for empty tracking url")
	}
}
