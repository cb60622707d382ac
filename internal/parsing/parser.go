package parsing

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/pricetrail/price-trail/internal/fallback"
)

// LineItem is one purchased product or service entry parsed from a receipt.
type LineItem struct {
	Name       string   `json:"name"`
	PriceTotal *float64 `json:"priceTotal"`
	QtyValue   *float64 `json:"qtyValue"`
	QtyUnit    string   `json:"qtyUnit"`
	UnitPrice  *string  `json:"unitPrice"`
	Date       string   `json:"date"` // ISO YYYY-MM-DD
}

// sentinelName is substituted when no strategy produced anything, so
// downstream consumers always have at least one row.
const sentinelName = "Unparsed Receipt"

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Parser runs the layered extraction strategy over raw OCR text: the fuel
// specialist first, then the generic extractor, then the external
// text-understanding fallback, and finally the sentinel item.
type Parser struct {
	fallback   fallback.Extractor // nil when no fallback is configured
	timeSource TimeSource
}

// NewParser creates a Parser. The extractor may be nil, in which case the
// fallback strategy is skipped.
func NewParser(extractor fallback.Extractor) *Parser {
	return &Parser{
		fallback:   extractor,
		timeSource: &defaultTimeSource{},
	}
}

// NewParserWithDeps creates a Parser with a custom time source for testing
func NewParserWithDeps(extractor fallback.Extractor, timeSource TimeSource) *Parser {
	return &Parser{
		fallback:   extractor,
		timeSource: timeSource,
	}
}

// Parse extracts normalized line items from one receipt's OCR text. The
// result is never empty and parsing never fails: each strategy miss degrades
// to the next one, ending at the sentinel item.
func (p *Parser) Parse(ctx context.Context, text string) []LineItem {
	now := p.timeSource.Now()

	if items, ok := ExtractFuel(text, now); ok {
		// Fuel detection is authoritative once it succeeds.
		return p.normalizeItems(items, now)
	}

	items := ExtractGeneric(text, now)
	if len(items) == 0 {
		items = p.fallbackItems(ctx, text)
	}

	items = p.normalizeItems(items, now)
	if len(items) == 0 {
		items = []LineItem{{Name: sentinelName, Date: now.Format("2006-01-02")}}
	}
	return items
}

// fallbackItems submits the receipt text to the external fallback. Any
// failure (not configured, transport, malformed response) collapses to an
// empty list; network variability is an expected outcome here, not an error.
func (p *Parser) fallbackItems(ctx context.Context, text string) []LineItem {
	if p.fallback == nil {
		return nil
	}

	raw, err := p.fallback.ExtractItems(ctx, text)
	if err != nil {
		slog.Warn("Fallback extraction failed", "error", err)
		return nil
	}

	items := make([]LineItem, 0, len(raw))
	for _, r := range raw {
		items = append(items, LineItem{
			Name:       strings.TrimSpace(r.Name),
			PriceTotal: r.PriceTotal,
			QtyValue:   r.QtyValue,
			QtyUnit:    r.QtyUnit,
		})
	}
	return items
}

// normalizeItems enforces the item invariants on every candidate from
// whichever source produced it: a non-empty name, a finite non-negative
// price, a positive quantity, a canonical unit, a derived unit price, and a
// date.
func (p *Parser) normalizeItems(items []LineItem, now time.Time) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		it.Name = strings.TrimSpace(it.Name)
		if it.Name == "" {
			it.Name = defaultItemName
		}
		if it.PriceTotal != nil {
			v := *it.PriceTotal
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				it.PriceTotal = nil
			}
		}
		if it.QtyValue != nil {
			v := *it.QtyValue
			if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
				it.QtyValue = nil
			}
		}
		it.QtyUnit = NormalizeUnit(it.QtyUnit)
		if it.UnitPrice == nil {
			it.UnitPrice = ComputeUnitPrice(it.PriceTotal, it.QtyValue, it.QtyUnit)
		}
		if it.Date == "" {
			it.Date = now.Format("2006-01-02")
		}
		out = append(out, it)
	}
	return out
}
