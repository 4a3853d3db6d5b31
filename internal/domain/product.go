package domain

import "time"

// Category groups products in the storefront catalog.
type Category struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
}

// Product is one orderable made-to-order gift item. Prices are stored in
// minor units to avoid floating point money.
type Product struct {
	ID          string
	CategoryID  string
	Name        string
	Slug        string
	Description string
	PriceCents  int64
	Currency    string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
