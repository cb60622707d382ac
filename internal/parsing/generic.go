package parsing

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Sanity windows for the generic extractor. Calibrated to grocery receipts;
// a line price outside this range is noise (phone number, barcode fragment).
const (
	minLineLen   = 5
	minNameLen   = 3
	itemPriceMin = 0.01
	itemPriceMax = 5000
)

var (
	// excludeLineRe rejects lines that are never product lines: totals,
	// payment handling, card networks, membership and footer boilerplate.
	excludeLineRe = regexp.MustCompile(`(?i)\b(?:sub\s*total|total|tax|change|balance|cash|credit|debit|visa|mastercard|amex|discover|payment|tender|member(?:ship)?|rewards?|coupon|savings|points|cashier|register|receipt|refund|thank\s*you)\b`)

	// qtyAtPriceRe matches "<name> x<count> @ $<eachPrice>" style lines,
	// with "*" accepted in place of "x".
	qtyAtPriceRe = regexp.MustCompile(`(?i)^(.*?)\s*[x*]\s*(\d+)\s*@\s*\$?(\d+(?:\.\d+)?)`)

	// trailingPriceRe matches a price anchored at the end of the line.
	trailingPriceRe = regexp.MustCompile(`^(.*?)\s+\$?(\d+(?:\.\d{1,2})?)\s*$`)

	// qtyUnitRe captures a quantity and unit keyword anywhere in the line.
	qtyUnitRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s?(oz|lb|g|kg|ml|l|gal|ct|pk)\b`)
)

// ExtractGeneric scans arbitrary receipt text line by line and produces a
// best-effort item list, independent of receipt vendor. Lines that don't
// look like product lines are silently skipped.
func ExtractGeneric(text string, now time.Time) []LineItem {
	date := now.Format("2006-01-02")

	var items []LineItem
	for _, line := range splitLines(text) {
		if len(line) < minLineLen || excludeLineRe.MatchString(line) {
			continue
		}

		var name string
		var priceTotal float64
		matchedQtyAtPrice := false

		if m := qtyAtPriceRe.FindStringSubmatch(line); m != nil {
			count, countErr := strconv.ParseFloat(m[2], 64)
			each, eachErr := strconv.ParseFloat(m[3], 64)
			if countErr == nil && eachErr == nil {
				name = m[1]
				priceTotal = round2(count * each)
				matchedQtyAtPrice = true
			}
		}

		if !matchedQtyAtPrice {
			m := trailingPriceRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			name = strings.TrimSpace(m[1])
			v, err := strconv.ParseFloat(m[2], 64)
			if name == "" || err != nil || v == 0 || v < itemPriceMin || v > itemPriceMax {
				continue
			}
			priceTotal = v
		}

		var qtyValue *float64
		qtyUnit := ""
		if m := qtyUnitRe.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil && v > 0 {
				qtyValue = &v
				qtyUnit = NormalizeUnit(m[2])
			}
		}

		name = strings.TrimSpace(name)
		if len(name) < minNameLen && !matchedQtyAtPrice {
			continue
		}

		pt := priceTotal
		items = append(items, LineItem{
			Name:       NormalizeName(name),
			PriceTotal: &pt,
			QtyValue:   qtyValue,
			QtyUnit:    qtyUnit,
			UnitPrice:  ComputeUnitPrice(&pt, qtyValue, qtyUnit),
			Date:       date,
		})
	}
	return items
}
