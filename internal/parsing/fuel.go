package parsing

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Sanity windows for pump receipts. A per-gallon price is always in
// [fuelPriceMin, fuelPriceMax]; a fill-up is always in (gallonsMin,
// gallonsMax]. Values outside these windows are discarded, not clamped.
// Calibrated to one retailer's pump layout and almost certainly incomplete
// for others.
const (
	fuelPriceMin = 1.0
	fuelPriceMax = 10.0
	gallonsMin   = 2.0
	gallonsMax   = 50.0

	windowBefore = 2
	windowAfter  = 4
)

var (
	// fuelNoiseRe rejects window lines that carry numbers but never the
	// per-gallon price: totals, grade labels, authorization and card noise.
	fuelNoiseRe = regexp.MustCompile(`(?i)\b(?:total|amount|regular|product|sale|approved|visa|mastercard|amex|discover|debit|credit|auth|ref|seq|invoice|trans)\b`)

	dollarAmountRe = regexp.MustCompile(`\$\s*([0-9OoIlSsUu]+(?:\.[0-9OoIlSsUu]{1,3})?)`)
	labeledPriceRe = regexp.MustCompile(`(?i)price[^0-9$]*\$?\s*([0-9OoIlSsUu]+(?:\.[0-9OoIlSsUu]{1,3})?)`)

	gallonsDecimalRe = regexp.MustCompile(`\b(\d{1,2}\.\d{3})\b`)
	gallonsIntRe     = regexp.MustCompile(`\b(\d{4,5})\b`)

	totalSaleRe = regexp.MustCompile(`(?i)total\s*sale\s*\$?\s*([0-9OoIlSsUu]+(?:\.[0-9OoIlSsUu]{1,2})?)`)

	nonPrintableRe = regexp.MustCompile(`[^\x20-\x7e\n]`)
)

// ExtractFuel is a rule engine for pump-style fuel receipts, where a pump
// number, gallons quantity, and price per gallon appear close together with
// no trailing-price anchor. It locates the pump block, extracts a price and
// gallons from a bounded window, cross-checks against a printed total, and
// reports whether the receipt was recognized.
func ExtractFuel(text string, now time.Time) ([]LineItem, bool) {
	text = nonPrintableRe.ReplaceAllString(text, "")
	date := ExtractDateISO(text, now)

	lines := splitLines(text)
	anchor := findFuelAnchor(lines)
	if anchor < 0 {
		return nil, false
	}
	window := candidateWindow(lines, anchor)

	price, priceOK := findPriceStrict(window)
	gallons, gallonsOK := findGallonsStrict(window)

	// The two extractions occasionally grab each other's number.
	if priceOK && gallonsOK && price > fuelPriceMax && gallons < 5 {
		price, gallons = gallons, price
	}

	total, totalOK := findPrintedTotal(text)

	var priceTotal float64
	switch {
	case priceOK && gallonsOK:
		priceTotal = round2(gallons * price)
	case priceOK && totalOK:
		gallons = round3(total / price)
		if gallons <= gallonsMin || gallons > gallonsMax {
			return nil, false
		}
		priceTotal = total
	default:
		return nil, false
	}

	unitPrice := fmt.Sprintf("%.3f $/gal", price)
	pt := priceTotal
	qty := gallons
	return []LineItem{
		{
			Name:       "Fuel (Regular)",
			PriceTotal: &pt,
			QtyValue:   &qty,
			QtyUnit:    "gal",
			UnitPrice:  &unitPrice,
			Date:       date,
		},
		{
			Name:       "Total",
			PriceTotal: &pt,
			Date:       date,
		},
	}, true
}

// findFuelAnchor returns the index of the first line containing "pump", or
// failing that "gallon", or -1 when neither appears.
func findFuelAnchor(lines []string) int {
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), "pump") {
			return i
		}
	}
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), "gallon") {
			return i
		}
	}
	return -1
}

// candidateWindow collects the lines around the anchor where the price and
// gallons figures live on this layout.
func candidateWindow(lines []string, anchor int) []string {
	start := anchor - windowBefore
	if start < 0 {
		start = 0
	}
	end := anchor + windowAfter
	if end > len(lines)-1 {
		end = len(lines) - 1
	}
	return lines[start : end+1]
}

// findPriceStrict searches the window for a dollar-prefixed or
// "price"-labeled amount inside the per-gallon sanity window. Candidates
// with an explicit decimal point win over bare integers; among those the
// smaller value wins.
func findPriceStrict(window []string) (float64, bool) {
	type candidate struct {
		value      float64
		hasDecimal bool
	}
	var candidates []candidate

	collect := func(raw string) {
		cleaned := FixNumericGlyphs(raw)
		v := ToNumber(cleaned)
		if v == nil || *v < fuelPriceMin || *v > fuelPriceMax {
			return
		}
		candidates = append(candidates, candidate{*v, strings.Contains(cleaned, ".")})
	}

	for _, line := range window {
		if fuelNoiseRe.MatchString(line) {
			continue
		}
		for _, m := range dollarAmountRe.FindAllStringSubmatch(line, -1) {
			collect(m[1])
		}
		for _, m := range labeledPriceRe.FindAllStringSubmatch(line, -1) {
			collect(m[1])
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.hasDecimal != best.hasDecimal {
			if c.hasDecimal {
				best = c
			}
			continue
		}
		if c.value < best.value {
			best = c
		}
	}
	return best.value, true
}

// findGallonsStrict searches pump/gallon lines in the window for the gallons
// quantity: either an explicit 1-2 digit dot 3-digit decimal, or a bare 4-5
// digit integer reinterpreted by dividing by 1000 (OCR frequently drops the
// decimal point). Explicit 3-decimal candidates win; otherwise the maximum
// value wins, since gallons is reliably the larger of the co-occurring
// numbers.
func findGallonsStrict(window []string) (float64, bool) {
	type candidate struct {
		value         float64
		threeDecimals bool
	}
	var candidates []candidate

	inWindow := func(v float64) bool {
		return v > gallonsMin && v <= gallonsMax
	}

	for _, line := range window {
		lower := strings.ToLower(line)
		if fuelNoiseRe.MatchString(line) {
			continue
		}
		if !strings.Contains(lower, "pump") && !strings.Contains(lower, "gallon") {
			continue
		}
		for _, m := range gallonsDecimalRe.FindAllStringSubmatch(line, -1) {
			if v := ToNumber(m[1]); v != nil && inWindow(*v) {
				candidates = append(candidates, candidate{*v, true})
			}
		}
		for _, m := range gallonsIntRe.FindAllStringSubmatch(line, -1) {
			if v := ToNumber(m[1]); v != nil && inWindow(*v/1000) {
				candidates = append(candidates, candidate{*v / 1000, false})
			}
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.threeDecimals != best.threeDecimals {
			if c.threeDecimals {
				best = c
			}
			continue
		}
		if c.value > best.value {
			best = c
		}
	}
	return best.value, true
}

// findPrintedTotal recovers a printed "Total Sale $X" amount, glyph-corrected.
func findPrintedTotal(text string) (float64, bool) {
	m := totalSaleRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v := ToNumber(FixNumericGlyphs(m[1]))
	if v == nil || *v < 0 {
		return 0, false
	}
	return *v, true
}
