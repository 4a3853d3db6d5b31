package compose

import (
	"bytes"
	"errors"
	"image"

	"github.com/disintegration/imaging"
)

// Source points the engine at one raster image, either on disk or already
// in memory. Exactly one of Path and Data should be set.
type Source struct {
	Path string
	Data []byte
}

// FileSource references an image on the local filesystem.
func FileSource(path string) Source { return Source{Path: path} }

// BytesSource wraps an in-memory encoded image.
func BytesSource(data []byte) Source { return Source{Data: data} }

// IsZero reports whether the source references nothing.
func (s Source) IsZero() bool { return s.Path == "" && len(s.Data) == 0 }

func decodeSource(s Source) (image.Image, error) {
	if len(s.Data) > 0 {
		return imaging.Decode(bytes.NewReader(s.Data))
	}
	if s.Path != "" {
		return imaging.Open(s.Path)
	}
	return nil, errors.New("compose: empty source")
}
