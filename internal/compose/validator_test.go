package compose

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// headerOnlyPNG builds a valid PNG signature plus IHDR chunk declaring the
// given dimensions. DecodeConfig never reads pixel data, so this keeps
// resolution-ceiling tests cheap even for dimensions that would need
// hundreds of megabytes as real bitmaps.
func headerOnlyPNG(t *testing.T, width, height uint32) []byte {
	t.Helper()
	data := make([]byte, 13)
	binary.BigEndian.PutUint32(data[0:4], width)
	binary.BigEndian.PutUint32(data[4:8], height)
	data[8] = 8 // bit depth
	data[9] = 2 // truecolor

	var buf bytes.Buffer
	buf.Write([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a})
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(data)))
	buf.Write(length[:])
	chunk := append([]byte("IHDR"), data...)
	buf.Write(chunk)
	var crc [4]byte
	binary.BigEndian.PutUint32(crc[:], crc32.ChecksumIEEE(chunk))
	buf.Write(crc[:])
	return buf.Bytes()
}

func TestValidateImageAccepts(t *testing.T) {
	path := writeFixture(t, "ok.png", solidPNG(t, 800, 600, color.NRGBA{R: 1, A: 255}))
	v, err := ValidateImage(path, Limits{MaxSizeMB: 20, MinWidth: 100, MinHeight: 100})
	if err != nil {
		t.Fatalf("ValidateImage returned error: %v", err)
	}
	if !v.Valid {
		t.Fatalf("expected valid verdict, got reason %q", v.Reason)
	}
	if v.Width != 800 || v.Height != 600 {
		t.Fatalf("dimensions mismatch: got %dx%d", v.Width, v.Height)
	}
	if v.SizeBytes <= 0 {
		t.Fatalf("size not recorded: %d", v.SizeBytes)
	}
}

func TestValidateImageRejectsOversizedFile(t *testing.T) {
	path := writeFixture(t, "big.png", make([]byte, 3<<20))
	v, err := ValidateImage(path, Limits{MaxSizeMB: 2})
	if err != nil {
		t.Fatalf("ValidateImage returned error: %v", err)
	}
	if v.Valid || v.Reason != RejectTooLarge {
		t.Fatalf("expected %q, got valid=%v reason=%q", RejectTooLarge, v.Valid, v.Reason)
	}
}

func TestValidateImageRejectsUndecodable(t *testing.T) {
	path := writeFixture(t, "junk.png", []byte("definitely not an image"))
	v, err := ValidateImage(path, Limits{})
	if err != nil {
		t.Fatalf("ValidateImage returned error: %v", err)
	}
	if v.Valid || v.Reason != RejectUndecodable {
		t.Fatalf("expected %q, got valid=%v reason=%q", RejectUndecodable, v.Valid, v.Reason)
	}
}

func TestValidateImageEnforcesMegapixelCeiling(t *testing.T) {
	path := writeFixture(t, "huge.png", headerOnlyPNG(t, 6000, 6000))
	v, err := ValidateImage(path, Limits{})
	if err != nil {
		t.Fatalf("ValidateImage returned error: %v", err)
	}
	if v.Valid || v.Reason != RejectResolution {
		t.Fatalf("expected %q, got valid=%v reason=%q", RejectResolution, v.Valid, v.Reason)
	}
	if v.Width != 6000 || v.Height != 6000 {
		t.Fatalf("dimensions mismatch: got %dx%d", v.Width, v.Height)
	}
}

func TestValidateImageAllowsExactMegapixelCeiling(t *testing.T) {
	path := writeFixture(t, "exact.png", headerOnlyPNG(t, 5000, 4000))
	v, err := ValidateImage(path, Limits{})
	if err != nil {
		t.Fatalf("ValidateImage returned error: %v", err)
	}
	if !v.Valid {
		t.Fatalf("exactly %dMP must pass, got reason %q", MaxMegapixels, v.Reason)
	}
}

func TestValidateImageRejectsBelowMinimum(t *testing.T) {
	path := writeFixture(t, "small.png", solidPNG(t, 40, 40, color.NRGBA{A: 255}))
	v, err := ValidateImage(path, Limits{MinWidth: 100, MinHeight: 100})
	if err != nil {
		t.Fatalf("ValidateImage returned error: %v", err)
	}
	if v.Valid || v.Reason != RejectTooSmall {
		t.Fatalf("expected %q, got valid=%v reason=%q", RejectTooSmall, v.Valid, v.Reason)
	}
}

func TestValidateImageMissingFileIsAnError(t *testing.T) {
	if _, err := ValidateImage(filepath.Join(t.TempDir(), "nope.png"), Limits{}); err == nil {
		t.Fatal("expected error for missing file")
	}
}
