package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// FitMode controls how a slot's source image is mapped onto the slot
// rectangle.
type FitMode string

const (
	// FitCover scales the source to fill the slot and crops the excess.
	FitCover FitMode = "cover"
	// FitContain scales the source to fit inside the slot and pads the
	// remainder with transparency.
	FitContain FitMode = "contain"
)

// DefaultFitMode is applied when a slot declares no fit mode.
const DefaultFitMode = FitCover

// PrintSlot is one customizable rectangular region on a layout. All
// geometry is expressed in percentages of the layout canvas so the same
// slot definition renders correctly at any target resolution.
type PrintSlot struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Fit      FitMode `json:"fit,omitempty"`
	Rotation float64 `json:"rotation,omitempty"`
	ZIndex   int     `json:"z_index,omitempty"`
}

// Layout is one selectable base design for a product. The base image is
// immutable once referenced by an order; slots may be empty for a
// non-customizable design.
type Layout struct {
	ID           string
	ProductID    string
	Name         string
	BaseImageKey string
	BaseWidth    int
	BaseHeight   int
	Slots        []PrintSlot
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DecodeSlots parses a stored slot definition, applies defaults and
// validates the result. Defaults are resolved here, once, so composition
// never re-interprets raw slot JSON.
func DecodeSlots(raw []byte) ([]PrintSlot, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var slots []PrintSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlotGeometry, err)
	}
	for i := range slots {
		if slots[i].Fit == "" {
			slots[i].Fit = DefaultFitMode
		}
	}
	if err := ValidateSlots(slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// EncodeSlots serializes a validated slot list for storage.
func EncodeSlots(slots []PrintSlot) ([]byte, error) {
	if err := ValidateSlots(slots); err != nil {
		return nil, err
	}
	return json.Marshal(slots)
}

// ValidateSlots checks the structural invariants of a slot list. An empty
// list is valid. All violations wrap ErrInvalidSlotGeometry.
func ValidateSlots(slots []PrintSlot) error {
	seen := make(map[string]struct{}, len(slots))
	for i, s := range slots {
		if s.ID == "" {
			return fmt.Errorf("%w: slot %d has no id", ErrInvalidSlotGeometry, i)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: duplicate slot id %q", ErrInvalidSlotGeometry, s.ID)
		}
		seen[s.ID] = struct{}{}
		if s.X < 0 || s.X > 100 || s.Y < 0 || s.Y > 100 {
			return fmt.Errorf("%w: slot %q position out of range", ErrInvalidSlotGeometry, s.ID)
		}
		if s.Width <= 0 || s.Width > 100 || s.Height <= 0 || s.Height > 100 {
			return fmt.Errorf("%w: slot %q size out of range", ErrInvalidSlotGeometry, s.ID)
		}
		switch s.Fit {
		case FitCover, FitContain:
		default:
			return fmt.Errorf("%w: slot %q has unknown fit mode %q", ErrInvalidSlotGeometry, s.ID, s.Fit)
		}
	}
	return nil
}
