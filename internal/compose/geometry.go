package compose

import (
	"math"

	"server/internal/domain"
)

// pixelRect is a slot rectangle resolved against a concrete canvas.
type pixelRect struct {
	X, Y, W, H int
}

// slotRect converts a slot's percentage rectangle to pixel coordinates
// against the target canvas. Each component is rounded independently, with
// no shared sub-pixel basis; adjacent slot edges can therefore disagree by
// one pixel at some resolutions. That tolerance is part of the output
// contract and must not be "fixed".
func slotRect(s domain.PrintSlot, targetW, targetH int) pixelRect {
	r := pixelRect{
		X: roundPct(s.X, targetW),
		Y: roundPct(s.Y, targetH),
		W: roundPct(s.Width, targetW),
		H: roundPct(s.Height, targetH),
	}
	if r.W < 1 {
		r.W = 1
	}
	if r.H < 1 {
		r.H = 1
	}
	return r
}

func roundPct(pct float64, total int) int {
	return int(math.Round(pct / 100 * float64(total)))
}
