package parsing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	labeledDateRe = regexp.MustCompile(`(?i)date:?\s*(\d{1,2})/(\d{1,2})/(\d{2,4})`)
	bareDateRe    = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{2,4})\b`)
)

// ExtractDateISO finds an MM/DD/YY(YY) date in receipt text and returns it
// as YYYY-MM-DD. An explicit "Date:" label wins over a bare token. Two-digit
// years are assumed to be 20xx. Falls back to the provided current time.
func ExtractDateISO(text string, now time.Time) string {
	m := labeledDateRe.FindStringSubmatch(text)
	if m == nil {
		m = bareDateRe.FindStringSubmatch(text)
	}
	if m == nil {
		return now.Format("2006-01-02")
	}

	year := m[3]
	if len(year) == 2 {
		year = "20" + year
	}
	mo, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	y, _ := strconv.Atoi(year)
	return fmt.Sprintf("%04d-%02d-%02d", y, mo, day)
}

// splitLines returns the trimmed, non-empty lines of a text block.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
