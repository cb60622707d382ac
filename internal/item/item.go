package item

import "time"

// Item is one parsed receipt line item as persisted for price-history
// charting. Nullable fields are pointers so JSON round-trips null.
// Items are written once and never mutated.
type Item struct {
	ID         uint64   `json:"id"`
	Name       string   `json:"name"`
	PriceTotal *float64 `json:"priceTotal"`
	QtyValue   *float64 `json:"qtyValue"`
	QtyUnit    string   `json:"qtyUnit"`
	UnitPrice  *string  `json:"unitPrice"`
	Date       string   `json:"date"` // ISO YYYY-MM-DD

	CreatedAt time.Time `json:"created_at"`
}
