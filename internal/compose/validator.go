package compose

import (
	"image"
	"os"

	// Register decoders so DecodeConfig can read dimensions of the
	// formats customers actually upload.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// MaxMegapixels bounds the worst-case memory and CPU cost of a single
// composition, regardless of caller-supplied limits. Not configurable on
// purpose.
const MaxMegapixels = 20

// RejectReason labels why an image was refused. Reasons are data, not
// errors: a refused upload is expected user input, not a fault.
type RejectReason string

const (
	RejectTooLarge    RejectReason = "image_too_large"
	RejectTooSmall    RejectReason = "image_too_small"
	RejectResolution  RejectReason = "resolution_exceeded"
	RejectUndecodable RejectReason = "dimensions_unknown"
)

// Limits are the caller-tunable validation thresholds. Zero values
// disable the corresponding check; the megapixel ceiling always applies.
type Limits struct {
	MaxSizeMB int64
	MinWidth  int
	MinHeight int
}

// Verdict is the structured outcome of validating one image.
type Verdict struct {
	Valid     bool
	Reason    RejectReason
	Width     int
	Height    int
	SizeBytes int64
}

// ValidateImage gatekeeps a prospective slot source. Business-rule
// violations come back as an invalid Verdict; only I/O-level failures
// (file unreadable) return an error.
func ValidateImage(path string, limits Limits) (Verdict, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Verdict{}, err
	}
	v := Verdict{SizeBytes: info.Size()}

	if limits.MaxSizeMB > 0 && info.Size() > limits.MaxSizeMB*1024*1024 {
		v.Reason = RejectTooLarge
		return v, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Verdict{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		v.Reason = RejectUndecodable
		return v, nil
	}
	v.Width = cfg.Width
	v.Height = cfg.Height

	if cfg.Width <= 0 || cfg.Height <= 0 {
		v.Reason = RejectUndecodable
		return v, nil
	}
	if cfg.Width*cfg.Height > MaxMegapixels*1_000_000 {
		v.Reason = RejectResolution
		return v, nil
	}
	if (limits.MinWidth > 0 && cfg.Width < limits.MinWidth) ||
		(limits.MinHeight > 0 && cfg.Height < limits.MinHeight) {
		v.Reason = RejectTooSmall
		return v, nil
	}

	v.Valid = true
	return v, nil
}
