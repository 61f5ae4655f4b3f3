package dto

import (
	"github.com/checksplit/checksplit-backend/internal/domain/receipt"
	"github.com/checksplit/checksplit-backend/internal/domain/split"
	"github.com/checksplit/checksplit-backend/internal/flow"
)

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// NewHealthResponse returns a healthy payload.
func NewHealthResponse() HealthResponse {
	return HealthResponse{Status: "ok", Service: "checksplit-api"}
}

// ItemResponse is one line item in a session snapshot.
type ItemResponse struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"price"`
	LineTotal float64 `json:"line_total"`
}

// ReceiptResponse is the receipt in a session snapshot. Total is the stated
// total, which may disagree with Subtotal+Tax until the user edits a field.
type ReceiptResponse struct {
	Items    []ItemResponse `json:"items"`
	Tax      float64        `json:"tax"`
	Subtotal float64        `json:"subtotal"`
	Total    float64        `json:"total"`
}

// ParticipantResponse is one roster slot, blank names included.
type ParticipantResponse struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// SessionResponse is the full snapshot of one session.
type SessionResponse struct {
	ID           string                `json:"id"`
	Step         string                `json:"step"`
	Receipt      ReceiptResponse       `json:"receipt"`
	Participants []ParticipantResponse `json:"participants"`
}

// NewSessionResponse assembles a snapshot from session state.
func NewSessionResponse(id string, step flow.Step, r *receipt.Receipt, participants []string) SessionResponse {
	resp := SessionResponse{
		ID:           id,
		Step:         string(step),
		Participants: make([]ParticipantResponse, 0, len(participants)),
		Receipt: ReceiptResponse{
			Items:    make([]ItemResponse, 0, len(r.Items)),
			Tax:      r.Tax,
			Subtotal: r.Subtotal(),
			Total:    r.Total,
		},
	}
	for _, it := range r.Items {
		resp.Receipt.Items = append(resp.Receipt.Items, ItemResponse{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal(),
		})
	}
	for i, name := range participants {
		resp.Participants = append(resp.Participants, ParticipantResponse{Index: i, Name: name})
	}
	return resp
}

// PreviewResponse is the live running-total projection.
type PreviewResponse struct {
	Participants []PreviewParticipant `json:"participants"`
}

// PreviewParticipant is one person's unrounded running share.
type PreviewParticipant struct {
	Index      int     `json:"index"`
	Name       string  `json:"name"`
	ItemsTotal float64 `json:"items_total"`
	TaxPortion float64 `json:"tax_portion"`
	Total      float64 `json:"total"`
}

// NewPreviewResponse converts engine preview totals.
func NewPreviewResponse(totals []split.ParticipantTotal) PreviewResponse {
	resp := PreviewResponse{Participants: make([]PreviewParticipant, 0, len(totals))}
	for _, t := range totals {
		resp.Participants = append(resp.Participants, PreviewParticipant{
			Index:      t.Index,
			Name:       t.Name,
			ItemsTotal: t.ItemsTotal,
			TaxPortion: t.TaxPortion,
			Total:      t.Total,
		})
	}
	return resp
}

// SettlementItemResponse is one audit-trail line.
type SettlementItemResponse struct {
	Label           string  `json:"label"`
	Cost            float64 `json:"cost"`
	SharedWithCount int     `json:"shared_with_count"`
}

// SettlementParticipantResponse is one person's final breakdown.
type SettlementParticipantResponse struct {
	Name       string                   `json:"name"`
	ItemsTotal float64                  `json:"items_total"`
	TaxPortion float64                  `json:"tax_portion"`
	Total      float64                  `json:"total"`
	Items      []SettlementItemResponse `json:"items"`
}

// SettlementResponse is the finalized split. Drift is the accuracy flag: how
// far the sum of rounded per-person totals sits from the stated total.
type SettlementResponse struct {
	Participants  []SettlementParticipantResponse `json:"participants"`
	Subtotal      float64                         `json:"subtotal"`
	Tax           float64                         `json:"tax"`
	OriginalTotal float64                         `json:"original_total"`
	SplitTotal    float64                         `json:"split_total"`
	Drift         float64                         `json:"drift"`
}

// NewSettlementResponse converts an engine settlement.
func NewSettlementResponse(s *split.Settlement) SettlementResponse {
	resp := SettlementResponse{
		Participants:  make([]SettlementParticipantResponse, 0, len(s.Participants)),
		Subtotal:      s.Subtotal,
		Tax:           s.Tax,
		OriginalTotal: s.OriginalTotal,
		SplitTotal:    s.SplitTotal,
		Drift:         s.Drift(),
	}
	for _, p := range s.Participants {
		pr := SettlementParticipantResponse{
			Name:       p.Name,
			ItemsTotal: p.ItemsTotal,
			TaxPortion: p.TaxPortion,
			Total:      p.Total,
			Items:      make([]SettlementItemResponse, 0, len(p.Items)),
		}
		for _, it := range p.Items {
			pr.Items = append(pr.Items, SettlementItemResponse{
				Label:           it.Label,
				Cost:            it.Cost,
				SharedWithCount: it.SharedWithCount,
			})
		}
		resp.Participants = append(resp.Participants, pr)
	}
	return resp
}

// StepResponse reports the wizard step after a transition.
type StepResponse struct {
	Step string `json:"step"`
}
