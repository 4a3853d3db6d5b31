package compose

import (
	"context"
	"fmt"
	"math"

	"server/internal/domain"
)

// Preview renders the same composition scaled down for fast customer
// feedback. Because slots are percentage-defined, the geometry needs no
// re-authoring: only the target canvas shrinks. A maxWidth wider than the
// base never upscales.
func (e *Engine) Preview(ctx context.Context, base Source, baseWidth, baseHeight int, slots []domain.PrintSlot, assignments map[string]Source, maxWidth int) (*Result, error) {
	if baseWidth <= 0 || baseHeight <= 0 {
		return nil, fmt.Errorf("compose: base dimensions %dx%d out of range", baseWidth, baseHeight)
	}
	if maxWidth <= 0 {
		return nil, fmt.Errorf("compose: preview max width %d out of range", maxWidth)
	}
	scale := math.Min(1, float64(maxWidth)/float64(baseWidth))
	return e.Compose(ctx, Request{
		Base:         base,
		TargetWidth:  int(math.Round(float64(baseWidth) * scale)),
		TargetHeight: int(math.Round(float64(baseHeight) * scale)),
		Slots:        slots,
		Assignments:  assignments,
	})
}
