// internal/catalog/handler.go
package catalog

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

// Routes mounts the catalog endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/products", h.handleListProducts)
	r.Post("/products", h.handleAddProduct)
	r.Get("/products/{productID}", h.handleGetProduct)
	r.Put("/products/{productID}", h.handleUpdateProduct)
	r.Delete("/products/{productID}", h.handleRemoveProduct)
	r.Get("/categories", h.handleListCategories)
	r.Post("/categories", h.handleAddCategory)
	r.Put("/categories/{categoryID}", h.handleRenameCategory)
	r.Delete("/categories/{categoryID}", h.handleRemoveCategory)
	return r
}

type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	Category    string  `json:"category"`
}

func (h *Handler) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	product, err := h.service.AddProduct(r.Context(), req.Name, req.Description, req.UnitPrice, req.Quantity, req.Category)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(product)
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products := h.service.ListProducts(r.Context(), r.URL.Query().Get("name"))
	json.NewEncoder(w).Encode(products)
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	json.NewEncoder(w).Encode(product)
}

func (h *Handler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), id, req.Name, req.Description, req.UnitPrice, req.Quantity, req.Category)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	json.NewEncoder(w).Encode(product)
}

func (h *Handler) handleRemoveProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	if err := h.service.RemoveProduct(r.Context(), id); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	category, err := h.service.AddCategory(r.Context(), req.Name)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(category)
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(h.service.ListCategories(r.Context()))
}

func (h *Handler) handleRenameCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "categoryID"))
	if err != nil {
		http.Error(w, "invalid category ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	category, err := h.service.RenameCategory(r.Context(), id, req.Name)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	json.NewEncoder(w).Encode(category)
}

func (h *Handler) handleRemoveCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "categoryID"))
	if err != nil {
		http.Error(w, "invalid category ID", http.StatusBadRequest)
		return
	}

	if err := h.service.RemoveCategory(r.Context(), id); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateCategory), errors.Is(err, ErrQuantityUnderflow):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidProduct), errors.Is(err, ErrInvalidCategory):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
