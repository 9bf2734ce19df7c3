// internal/purchase/handler.go
package purchase

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the purchasing endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.handleStaged)
	r.Post("/", h.handleAdd)
	r.Delete("/{purchaseID}", h.handleRemove)
	r.Post("/settle", h.handleSettle)
	r.Get("/history", h.handleHistory)
	return r
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID uuid.UUID `json:"product_id"`
		Quantity  int       `json:"quantity"`
		Supplier  string    `json:"supplier"`
		Customer  string    `json:"customer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.service.AddLineItem(r.Context(), req.ProductID, req.Quantity, req.Supplier, req.Customer)
	if err != nil {
		h.writeRejection(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

func (h *Handler) handleRemove(w http.ResponseWriter, r *http.Request) {
	purchaseID, err := strconv.ParseInt(chi.URLParam(r, "purchaseID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid purchase ID", http.StatusBadRequest)
		return
	}

	if err := h.service.RemoveLineItem(r.Context(), purchaseID); err != nil {
		h.writeRejection(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSettle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Settle(r.Context())
	if err != nil {
		h.writeRejection(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *Handler) handleStaged(w http.ResponseWriter, r *http.Request) {
	items, total := h.service.Staged(r.Context())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Items []StagedLineItem `json:"items"`
		Total float64          `json:"total"`
	}{Items: items, Total: total})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	items, total := h.service.History(r.Context())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Items []CompletedLineItem `json:"items"`
		Total float64             `json:"total"`
	}{Items: items, Total: total})
}

// writeRejection maps the workflow's recoverable outcomes onto status codes
// and a JSON body. Insufficient stock carries the available quantity so the
// caller can render it.
func (h *Handler) writeRejection(w http.ResponseWriter, err error) {
	body := struct {
		Error     string `json:"error"`
		Available *int   `json:"available,omitempty"`
	}{Error: err.Error()}

	status := http.StatusInternalServerError
	var insufficient *InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		status = http.StatusConflict
		body.Available = &insufficient.Available
	case errors.Is(err, ErrOutOfStock):
		status = http.StatusConflict
	case errors.Is(err, ErrInvalidQuantity):
		status = http.StatusBadRequest
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrPurchaseNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrNothingToSettle):
		status = http.StatusConflict
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
