package notify

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// TrackingQR returns PNG bytes of a QR code pointing at the order tracking
// page. The code goes into the notification message and onto the packing
// slip in the print bundle.
func TrackingQR(trackingURL string, size int) ([]byte, error) {
	if trackingURL == "" {
		return nil, fmt.Errorf("notify: tracking url is required")
	}
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(trackingURL, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("notify: encode qr: %w", err)
	}
	return png, nil
}
