package vision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/checksplit/checksplit-backend/internal/domain/receipt"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o"

// ErrNoItems is returned when the model finds no line items in the image.
var ErrNoItems = errors.New("no line items extracted from image")

const extractionPrompt = `You are reading a photo of a restaurant receipt.
Extract every purchased line item with its quantity and per-unit price, plus
the tax and the printed total. Respond with ONLY a JSON object of this exact
shape, no prose:

{"items": [{"name": string, "quantity": number, "price": number}], "tax": number, "total": number}

Rules:
- quantity is how many units were bought; default to 1 when not printed.
- price is the per-unit price, not the line total.
- tax is the tax amount, 0 when not printed.
- total is the printed grand total exactly as it appears, even if it does not
  equal the sum of the items plus tax.
- Exclude tips, discounts headers, and payment lines.`

// Scanner turns a receipt photo into a receipt.Receipt via a vision model.
type Scanner struct {
	client Client
	model  string
}

// NewScanner creates a scanner. An empty model falls back to DefaultModel.
func NewScanner(client Client, model string) *Scanner {
	if model == "" {
		model = DefaultModel
	}
	return &Scanner{client: client, model: model}
}

// parsedReceipt is the constrained JSON shape demanded from the model.
type parsedReceipt struct {
	Items []struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Price    float64 `json:"price"`
	} `json:"items"`
	Tax   float64 `json:"tax"`
	Total float64 `json:"total"`
}

// Scan sends the image (a data URL or remote URL) to the model and parses the
// reply. The extracted values are not normalized: the stated total is kept
// even when it disagrees with items plus tax. On any failure the caller keeps
// its prior receipt.
func (s *Scanner) Scan(ctx context.Context, imageURL string) (*receipt.Receipt, error) {
	if strings.TrimSpace(imageURL) == "" {
		return nil, errors.New("image is required")
	}

	resp, err := s.client.CreateChatCompletion(ctx, ChatCompletionRequest{
		Model:       s.model,
		Temperature: 0.1,
		ResponseFormat: &ResponseFormat{
			Type: "json_object",
		},
		Messages: []Message{
			{
				Role: "user",
				Content: []ContentPart{
					{Type: "text", Text: extractionPrompt},
					{Type: "image_url", ImageURL: &ImageURL{URL: imageURL}},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("vision request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("vision API returned no choices")
	}

	var parsed parsedReceipt
	content := stripCodeFences(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse extraction: %w", err)
	}
	if len(parsed.Items) == 0 {
		return nil, ErrNoItems
	}

	r := &receipt.Receipt{
		Items: make([]receipt.LineItem, 0, len(parsed.Items)),
		Tax:   parsed.Tax,
		Total: parsed.Total,
	}
	for _, it := range parsed.Items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		price := it.Price
		if price < 0 {
			price = 0
		}
		r.Items = append(r.Items, receipt.LineItem{
			Name:      it.Name,
			Quantity:  qty,
			UnitPrice: price,
		})
	}
	return r, nil
}

// stripCodeFences removes a markdown code fence the model sometimes wraps
// around its JSON despite the response format constraint.
func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
