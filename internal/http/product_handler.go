package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shopblue/storefront/internal/catalog"
	"github.com/shopblue/storefront/internal/domain"
)

type ProductHandler struct {
	catalog *catalog.Store
}

func NewProductHandler(cat *catalog.Store) *ProductHandler {
	return &ProductHandler{catalog: cat}
}

type ProductsResponse struct {
	Products []domain.Product `json:"products"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, ProductsResponse{Products: h.catalog.List()})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "product_id")
	p, ok := h.catalog.Get(id)
	if !ok {
		respondError(w, r, http.StatusNotFound, "not_found", "product not found")
		return
	}
	respondJSON(w, r, http.StatusOK, p)
}

// Create is the admin inventory add. An empty id gets a generated one.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if p.Name == "" {
		respondError(w, r, http.StatusBadRequest, "invalid_product", "name is required")
		return
	}
	if p.Price < 0 {
		respondError(w, r, http.StatusBadRequest, "invalid_product", "price must be >= 0")
		return
	}

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Source == "" {
		p.Source = domain.SourceLocal
	}

	h.catalog.Add(p)
	respondJSON(w, r, http.StatusCreated, p)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "product_id")
	h.catalog.Remove(id)
	w.WriteHeader(http.StatusNoContent)
}
