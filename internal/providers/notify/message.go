package notify

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// OrderMessage carries everything the messaging provider needs to tell a
// customer about their order.
type OrderMessage struct {
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
	Text        string `json:"text"`
	TrackingURL string `json:"tracking_url"`
	QRPNG       []byte `json:"qr_png,omitempty"`
}

// BuildOrderPaid renders the order-confirmation text in the customer's
// locale. Product names are title-cased so hand-typed catalog entries
// read cleanly in the message.
func BuildOrderPaid(locale, customerName string, productNames []string, orderID, trackingURL string) string {
	titled := make([]string, 0, len(productNames))
	caser := casesFor(locale)
	for _, name := range productNames {
		if n := strings.TrimSpace(name); n != "" {
			titled = append(titled, caser.String(n))
		}
	}
	items := strings.Join(titled, ", ")
	if items == "" {
		if normalize(locale) == "id" {
			items = "pesanan custom"
		} else {
			items = "custom order"
		}
	}

	if normalize(locale) == "id" {
		return fmt.Sprintf(
			"Halo %s! Pembayaran pesanan %s sudah kami terima. Pesanan kamu (%s) sedang kami proses. Pantau statusnya di %s",
			customerName, shortID(orderID), items, trackingURL)
	}
	return fmt.Sprintf(
		"Hi %s! We received your payment for order %s. Your order (%s) is now in production. Track it at %s",
		customerName, shortID(orderID), items, trackingURL)
}

// BuildOrderShipped renders the shipping notification text.
func BuildOrderShipped(locale, customerName, orderID, trackingURL string) string {
	if normalize(locale) == "id" {
		return fmt.Sprintf("Halo %s! Pesanan %s sudah dikirim. Lacak di %s", customerName, shortID(orderID), trackingURL)
	}
	return fmt.Sprintf("Hi %s! Order %s has shipped. Track it at %s", customerName, shortID(orderID), trackingURL)
}

func casesFor(locale string) cases.Caser {
	if normalize(locale) == "id" {
		return cases.Title(language.Indonesian)
	}
	return cases.Title(language.English)
}

func normalize(locale string) string {
	if strings.HasPrefix(strings.ToLower(locale), "id") {
		return "id"
	}
	return "en"
}

// shortID keeps messages readable; customers match on the prefix shown in
// the storefront.
func shortID(orderID string) string {
	if len(orderID) <= 8 {
		return orderID
	}
	return orderID[:8]
}
