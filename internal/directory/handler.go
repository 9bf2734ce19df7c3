// internal/directory/handler.go
package directory

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the customer and supplier endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/customers", h.handleListCustomers)
	r.Post("/customers", h.handleAddCustomer)
	r.Put("/customers/{customerID}", h.handleUpdateCustomer)
	r.Delete("/customers/{customerID}", h.handleRemoveCustomer)
	r.Get("/suppliers", h.handleListSuppliers)
	r.Post("/suppliers", h.handleAddSupplier)
	r.Put("/suppliers/{supplierID}", h.handleUpdateSupplier)
	r.Delete("/suppliers/{supplierID}", h.handleRemoveSupplier)
	return r
}

type customerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Telephone string `json:"telephone"`
}

type supplierRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Telephone   string `json:"telephone"`
	Description string `json:"description"`
}

func (h *Handler) handleAddCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	customer, err := h.service.AddCustomer(r.Context(), req.Name, req.Email, req.Address, req.Telephone)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(customer)
}

func (h *Handler) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(h.service.ListCustomers(r.Context(), r.URL.Query().Get("name")))
}

func (h *Handler) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "customerID"))
	if err != nil {
		http.Error(w, "invalid customer ID", http.StatusBadRequest)
		return
	}

	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	customer, err := h.service.UpdateCustomer(r.Context(), id, req.Name, req.Email, req.Address, req.Telephone)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	json.NewEncoder(w).Encode(customer)
}

func (h *Handler) handleRemoveCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "customerID"))
	if err != nil {
		http.Error(w, "invalid customer ID", http.StatusBadRequest)
		return
	}

	if err := h.service.RemoveCustomer(r.Context(), id); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddSupplier(w http.ResponseWriter, r *http.Request) {
	var req supplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	supplier, err := h.service.AddSupplier(r.Context(), req.Name, req.Email, req.Address, req.City, req.Telephone, req.Description)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(supplier)
}

func (h *Handler) handleListSuppliers(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(h.service.ListSuppliers(r.Context(), r.URL.Query().Get("name")))
}

func (h *Handler) handleUpdateSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "supplierID"))
	if err != nil {
		http.Error(w, "invalid supplier ID", http.StatusBadRequest)
		return
	}

	var req supplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	supplier, err := h.service.UpdateSupplier(r.Context(), id, req.Name, req.Email, req.Address, req.City, req.Telephone, req.Description)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	json.NewEncoder(w).Encode(supplier)
}

func (h *Handler) handleRemoveSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "supplierID"))
	if err != nil {
		http.Error(w, "invalid supplier ID", http.StatusBadRequest)
		return
	}

	if err := h.service.RemoveSupplier(r.Context(), id); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrCustomerNotFound), errors.Is(err, ErrSupplierNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
