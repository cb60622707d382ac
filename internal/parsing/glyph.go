package parsing

import (
	"regexp"
	"strconv"
	"strings"
)

// glyphFixes repairs character confusions OCR engines make in printed
// receipt fonts. Only ever applied to pre-isolated numeric tokens; running
// it over a whole line would mangle product names.
var glyphFixes = strings.NewReplacer(
	"O", "0", "o", "0",
	"I", "1", "l", "1",
	"S", "5", "s", "5",
	"U", "4", "u", "4",
)

// numericTokenRe matches an optionally dollar-prefixed digit run with an
// optional decimal part, tolerating the glyph-confusable character set in
// place of digits.
var numericTokenRe = regexp.MustCompile(`\$?[0-9OoIlSsUu]+(?:\.[0-9OoIlSsUu]+)?`)

// FixNumericGlyphs repairs confusable glyphs inside a numeric substring.
func FixNumericGlyphs(s string) string {
	return glyphFixes.Replace(s)
}

// NumericToken is one numeric-looking substring found in a line.
type NumericToken struct {
	Raw        string
	Cleaned    string
	Value      float64
	HasDecimal bool
	Pos        int
}

// ParseNumericTokens scans a line for numeric-looking substrings, repairs
// their glyphs, and parses them, in left-to-right order. Runs of confusable
// letters with no actual digit (e.g. inside a word) are not tokens.
func ParseNumericTokens(line string) []NumericToken {
	var tokens []NumericToken
	for _, loc := range numericTokenRe.FindAllStringIndex(line, -1) {
		raw := line[loc[0]:loc[1]]
		if !strings.HasPrefix(raw, "$") && !strings.ContainsAny(raw, "0123456789") {
			continue
		}
		cleaned := FixNumericGlyphs(strings.TrimPrefix(raw, "$"))
		v, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			continue
		}
		tokens = append(tokens, NumericToken{
			Raw:        raw,
			Cleaned:    cleaned,
			Value:      v,
			HasDecimal: strings.Contains(cleaned, "."),
			Pos:        loc[0],
		})
	}
	return tokens
}
