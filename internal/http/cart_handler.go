package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopblue/storefront/internal/cart"
	"github.com/shopblue/storefront/internal/catalog"
	"github.com/shopblue/storefront/internal/domain"
)

type CartHandler struct {
	cart    *cart.Service
	catalog *catalog.Store
}

func NewCartHandler(cartSvc *cart.Service, cat *catalog.Store) *CartHandler {
	return &CartHandler{cart: cartSvc, catalog: cat}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
}

type UpdateQuantityRequestDTO struct {
	Delta int `json:"delta"`
}

type CartResponse struct {
	Items    []domain.CartLine `json:"items"`
	Subtotal float64           `json:"subtotal"`
}

func (h *CartHandler) cartResponse() CartResponse {
	return CartResponse{
		Items:    h.cart.Lines(),
		Subtotal: h.cart.Subtotal(),
	}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, r, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	product, ok := h.catalog.Get(req.ProductID)
	if !ok {
		respondError(w, r, http.StatusNotFound, "not_found", "product not found")
		return
	}

	h.cart.AddItem(product)
	respondJSON(w, r, http.StatusCreated, h.cartResponse())
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Delta == 0 {
		respondError(w, r, http.StatusBadRequest, "invalid_delta", "delta must be non-zero")
		return
	}

	h.cart.UpdateQuantity(productID, req.Delta)
	respondJSON(w, r, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	h.cart.RemoveItem(productID)
	respondJSON(w, r, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear()
	respondJSON(w, r, http.StatusOK, h.cartResponse())
}
