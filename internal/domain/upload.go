package domain

import "time"

// Upload is one customer-submitted source image that passed the image
// validator. Only uploads may be assigned to print slots.
type Upload struct {
	ID         string
	StorageKey string
	MIME       string
	Bytes      int64
	Width      int
	Height     int
	CreatedAt  time.Time
}
