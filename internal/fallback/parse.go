package fallback

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// flexFloat accepts a JSON number, a numeric string, or null. LLM providers
// are inconsistent about quoting numbers.
type flexFloat struct {
	value *float64
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		f.value = nil
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(strings.TrimPrefix(s, "$"), 64)
	if err != nil {
		f.value = nil
		return nil
	}
	f.value = &v
	return nil
}

// rawItemJSON tolerates the alternate key names providers use for each field.
type rawItemJSON struct {
	Name    string `json:"name"`
	Item    string `json:"item"`
	Product string `json:"product"`
	Title   string `json:"title"`

	PriceTotal flexFloat `json:"priceTotal"`
	Price      flexFloat `json:"price"`
	Total      flexFloat `json:"total"`

	QtyValue flexFloat `json:"qtyValue"`
	Quantity flexFloat `json:"quantity"`
	Qty      flexFloat `json:"qty"`

	QtyUnit string `json:"qtyUnit"`
	Unit    string `json:"unit"`
}

func (r rawItemJSON) toRawItem() RawItem {
	name := firstNonEmpty(r.Name, r.Item, r.Product, r.Title)
	unit := firstNonEmpty(r.QtyUnit, r.Unit)
	return RawItem{
		Name:       strings.TrimSpace(name),
		PriceTotal: firstValue(r.PriceTotal, r.Price, r.Total),
		QtyValue:   firstValue(r.QtyValue, r.Quantity, r.Qty),
		QtyUnit:    strings.TrimSpace(unit),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstValue(values ...flexFloat) *float64 {
	for _, v := range values {
		if v.value != nil {
			return v.value
		}
	}
	return nil
}

// parseItemsJSON parses the JSON response from an LLM provider
func parseItemsJSON(text string) ([]RawItem, error) {
	text = strings.TrimSpace(text)

	// Remove markdown code blocks if present
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	// Some providers return a bare array instead of the documented object
	if strings.HasPrefix(text, "[") {
		var list []rawItemJSON
		if err := json.Unmarshal([]byte(text), &list); err != nil {
			return nil, fmt.Errorf("unmarshaling item array: %w", err)
		}
		return convertItems(list), nil
	}

	// Find the JSON object boundaries - look for first { and last }
	startIdx := strings.Index(text, "{")
	if startIdx == -1 {
		return nil, fmt.Errorf("no JSON object found in response")
	}
	endIdx := strings.LastIndex(text, "}")
	if endIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("invalid JSON object in response")
	}
	text = text[startIdx : endIdx+1]

	var resp struct {
		Items []rawItemJSON `json:"items"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling json: %w", err)
	}
	if resp.Items == nil {
		return nil, fmt.Errorf("response has no items list")
	}
	return convertItems(resp.Items), nil
}

func convertItems(list []rawItemJSON) []RawItem {
	items := make([]RawItem, 0, len(list))
	for _, r := range list {
		items = append(items, r.toRawItem())
	}
	return items
}
