package fallback

import "context"

// extractItemsPrompt is the shared prompt used by all LLM providers for
// extracting line items from receipt text
const extractItemsPrompt = `You are a specialized assistant that extracts grocery and fuel line items from receipt text produced by OCR. For each purchased item, extract:

1. **name**: The product name, cleaned of packaging abbreviations and stray punctuation.
2. **priceTotal**: The total charged for the line in dollars, as a number (e.g. 4.99). Use null if not found.
3. **qtyValue**: The quantity purchased, as a number. Use null if not found.
4. **qtyUnit**: The unit for the quantity, one of: gal, lb, kg, oz, l, ml, ct. Use an empty string if unknown.

Return ONLY valid JSON in this exact format:
{
  "items": [
    { "name": "Item Name", "priceTotal": 0.00, "qtyValue": 0.00, "qtyUnit": "" }
  ]
}

Important:
- Skip subtotal, total, tax, change, and payment lines; they are not items
- If a field is not found, use null for that field
- Do not include any text before or after the JSON
- Do not use markdown code blocks`

// RawItem is one best-effort line item as returned by a provider, before
// normalization.
type RawItem struct {
	Name       string   `json:"name"`
	PriceTotal *float64 `json:"priceTotal"`
	QtyValue   *float64 `json:"qtyValue"`
	QtyUnit    string   `json:"qtyUnit"`
}

// Extractor defines the interface for external text-understanding providers
type Extractor interface {
	// ExtractItems analyzes receipt text and returns a best-effort item list
	ExtractItems(ctx context.Context, receiptText string) ([]RawItem, error)
	// Close closes the extractor and releases resources
	Close() error
}
