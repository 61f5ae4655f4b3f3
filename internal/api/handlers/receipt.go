package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/checksplit/checksplit-backend/internal/api/dto"
	"github.com/checksplit/checksplit-backend/internal/domain/receipt"
	"github.com/checksplit/checksplit-backend/internal/session"
)

// ReceiptScanner is the vision collaborator surface, kept narrow so tests can
// stub it.
type ReceiptScanner interface {
	Scan(ctx context.Context, imageURL string) (*receipt.Receipt, error)
}

// ReceiptHandler handles receipt loading, scanning, and editing.
type ReceiptHandler struct {
	*Base
	scanner ReceiptScanner
	logger  *slog.Logger
}

// NewReceiptHandler creates a new receipt handler. A nil scanner disables the
// scan endpoint.
func NewReceiptHandler(store *session.Store, scanner ReceiptScanner, logger *slog.Logger) *ReceiptHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReceiptHandler{Base: NewBase(store), scanner: scanner, logger: logger}
}

// Load handles POST /api/sessions/{id}/receipt - loads an already-parsed
// receipt. The stated total is stored verbatim, disagreements included.
func (h *ReceiptHandler) Load(w http.ResponseWriter, r *http.Request) {
	s, ok := h.Session(w, r)
	if !ok {
		return
	}

	var req dto.LoadReceiptRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}
	if len(req.Items) == 0 {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("receipt needs at least one item"))
		return
	}

	rec := &receipt.Receipt{
		Items: make([]receipt.LineItem, 0, len(req.Items)),
		Tax:   req.Tax,
		Total: req.Total,
	}
	for _, it := range req.Items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		price := it.Price
		if price < 0 {
			price = 0
		}
		rec.Items = append(rec.Items, receipt.LineItem{Name: it.Name, Quantity: qty, UnitPrice: price})
	}

	s.LoadReceipt(rec)
	h.snapshot(w, s)
}

// Scan handles POST /api/sessions/{id}/receipt/scan - runs the vision
// collaborator on a receipt photo. On failure the session's prior receipt is
// left untouched.
func (h *ReceiptHandler) Scan(w http.ResponseWriter, r *http.Request) {
	s, ok := h.Session(w, r)
	if !ok {
		return
	}
	if h.scanner == nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("receipt scanning is not configured"))
		return
	}

	var req dto.ScanReceiptRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	rec, err := h.scanner.Scan(r.Context(), req.Image)
	if err != nil {
		h.logger.Warn("receipt scan failed", "session_id", s.ID, "error", err)
		h.WriteError(w, http.StatusBadGateway, dto.NewAPIError("scan_failed", "could not extract a receipt from the image"))
		return
	}

	s.LoadReceipt(rec)
	h.logger.Info("receipt scanned", "session_id", s.ID, "items", len(rec.Items), "total", rec.Total)
	h.snapshot(w, s)
}

// EditItem handles PATCH /api/sessions/{id}/items/{index}. Invalid numeric
// values are silently rejected per the last-known-good policy: the reply is
// always 200 with the current snapshot.
func (h *ReceiptHandler) EditItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.Session(w, r)
	if !ok {
		return
	}
	index, ok := h.IndexParam(w, r, "index")
	if !ok {
		return
	}

	var req dto.ItemEditRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	if req.Name != nil {
		s.SetItemName(index, *req.Name)
	}
	if req.Quantity != nil {
		s.SetItemQuantity(index, *req.Quantity)
	}
	if req.Price != nil {
		s.SetItemPrice(index, *req.Price)
	}
	h.snapshot(w, s)
}

// EditTax handles PATCH /api/sessions/{id}/tax, same silent semantics.
func (h *ReceiptHandler) EditTax(w http.ResponseWriter, r *http.Request) {
	s, ok := h.Session(w, r)
	if !ok {
		return
	}

	var req dto.TaxEditRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	s.SetTax(req.Tax)
	h.snapshot(w, s)
}

// AddItem handles POST /api/sessions/{id}/items - appends a blank item.
func (h *ReceiptHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.Session(w, r)
	if !ok {
		return
	}
	s.AddItem()
	h.snapshot(w, s)
}

// RemoveItem handles DELETE /api/sessions/{id}/items/{index}.
func (h *ReceiptHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.Session(w, r)
	if !ok {
		return
	}
	index, ok := h.IndexParam(w, r, "index")
	if !ok {
		return
	}

	if err := s.RemoveItem(index); err != nil {
		status := http.StatusBadRequest
		apiErr := dto.BadRequestError(err.Error())
		if errors.Is(err, receipt.ErrLastItem) {
			status = http.StatusConflict
			apiErr = dto.ConflictError(err.Error())
		}
		h.WriteError(w, status, apiErr)
		return
	}
	h.snapshot(w, s)
}
