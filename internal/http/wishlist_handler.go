package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopblue/storefront/internal/domain"
	"github.com/shopblue/storefront/internal/wishlist"
)

type WishlistHandler struct {
	wishlist *wishlist.Service
}

func NewWishlistHandler(wl *wishlist.Service) *WishlistHandler {
	return &WishlistHandler{wishlist: wl}
}

type WishlistResponse struct {
	Products []domain.Product `json:"products"`
}

type ToggleResponse struct {
	ProductID  string `json:"product_id"`
	Wishlisted bool   `json:"wishlisted"`
}

// List returns wishlisted products still present in the catalog; ids whose
// product has been removed are skipped.
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, WishlistResponse{Products: h.wishlist.Products()})
}

func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	wishlisted := h.wishlist.Toggle(productID)
	respondJSON(w, r, http.StatusOK, ToggleResponse{
		ProductID:  productID,
		Wishlisted: wishlisted,
	})
}
