package parsing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// maxNameLen bounds item names so one garbled OCR line can't blow up the UI table.
const maxNameLen = 64

// defaultItemName is used when a candidate has no usable name left after cleanup.
const defaultItemName = "Item"

// unitPatterns maps the unit spellings seen on receipts to canonical symbols.
// Patterns are mutually exclusive; first match wins.
var unitPatterns = []struct {
	re    *regexp.Regexp
	canon string
}{
	{regexp.MustCompile(`^gal(?:lons?)?$`), "gal"},
	{regexp.MustCompile(`^(?:lbs?|pounds?)$`), "lb"},
	{regexp.MustCompile(`^(?:kgs?|kilos?|kilograms?)$`), "kg"},
	{regexp.MustCompile(`^(?:oz|ounces?)$`), "oz"},
	{regexp.MustCompile(`^(?:l|liters?|litres?)$`), "l"},
	{regexp.MustCompile(`^(?:ml|milliliters?|millilitres?)$`), "ml"},
	{regexp.MustCompile(`^(?:ct|count|pieces?|pcs?|packs?|pk)$`), "ct"},
}

var (
	nonNumericRe  = regexp.MustCompile(`[^0-9.]`)
	fillerTokenRe = regexp.MustCompile(`(?i)\b(?:ea|pk|ct)\b`)
	nameJunkRe    = regexp.MustCompile(`[^\w\s.\-]`)
	multiSpaceRe  = regexp.MustCompile(`\s{2,}`)
)

// ToNumber parses a noisy token as a decimal, stripping everything except
// digits and the decimal point. Returns nil when nothing numeric remains.
func ToNumber(raw string) *float64 {
	cleaned := nonNumericRe.ReplaceAllString(raw, "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// NormalizeUnit lower-cases, trims, and canonicalizes a unit spelling.
// Unrecognized non-empty input passes through unchanged.
func NormalizeUnit(raw string) string {
	u := strings.ToLower(strings.TrimSpace(raw))
	if u == "" {
		return ""
	}
	for _, p := range unitPatterns {
		if p.re.MatchString(u) {
			return p.canon
		}
	}
	return u
}

// ComputeUnitPrice derives a "<value> $/<baseUnit>" string from a line total
// and quantity, converting the quantity to a canonical base unit first
// (lb to oz, kg to g, ml to l, gal to l). Returns nil when the inputs don't
// support a meaningful per-unit price.
func ComputeUnitPrice(total, qty *float64, unit string) *string {
	if total == nil || qty == nil || *qty <= 0 {
		return nil
	}
	baseUnit := strings.ToLower(strings.TrimSpace(unit))
	if baseUnit == "" {
		return nil
	}

	baseQty := *qty
	switch baseUnit {
	case "lb":
		baseQty *= 16
		baseUnit = "oz"
	case "kg":
		baseQty *= 1000
		baseUnit = "g"
	case "ml":
		baseQty /= 1000
		baseUnit = "l"
	case "gal":
		baseQty *= 3.785
		baseUnit = "l"
	}
	if baseQty <= 0 {
		return nil
	}

	price := round4(*total / baseQty)
	s := strconv.FormatFloat(price, 'f', -1, 64) + " $/" + baseUnit
	return &s
}

// NormalizeName strips packaging-size tokens and stray punctuation from an
// item name, collapses whitespace, and bounds the length. Never returns an
// empty string.
func NormalizeName(s string) string {
	s = fillerTokenRe.ReplaceAllString(s, "")
	s = nameJunkRe.ReplaceAllString(s, "")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if len(s) > maxNameLen {
		s = strings.TrimSpace(s[:maxNameLen])
	}
	if s == "" {
		s = defaultItemName
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
