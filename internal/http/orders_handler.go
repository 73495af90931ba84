package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopblue/storefront/internal/domain"
	"github.com/shopblue/storefront/internal/ledger"
)

type OrdersHandler struct {
	ledger *ledger.Ledger
}

func NewOrdersHandler(l *ledger.Ledger) *OrdersHandler {
	return &OrdersHandler{ledger: l}
}

type OrdersResponse struct {
	Orders []domain.Order `json:"orders"`
}

type UpdateStatusDTO struct {
	Status domain.OrderStatus `json:"status"`
}

func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, OrdersResponse{Orders: h.ledger.Orders()})
}

func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, ok := h.ledger.Get(chi.URLParam(r, "order_id"))
	if !ok {
		respondError(w, r, http.StatusNotFound, "not_found", "order not found")
		return
	}
	respondJSON(w, r, http.StatusOK, order)
}

// UpdateStatus advances an order along Processing -> Shipped -> Delivered.
// The ledger ignores unknown ids and illegal transitions; the handler
// reports back whatever the order looks like afterwards.
func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	switch req.Status {
	case domain.OrderStatusPending, domain.OrderStatusProcessing,
		domain.OrderStatusShipped, domain.OrderStatusDelivered:
	default:
		respondError(w, r, http.StatusBadRequest, "invalid_status", "unknown order status")
		return
	}

	orderID := chi.URLParam(r, "order_id")
	h.ledger.UpdateStatus(orderID, req.Status)

	order, ok := h.ledger.Get(orderID)
	if !ok {
		respondError(w, r, http.StatusNotFound, "not_found", "order not found")
		return
	}
	respondJSON(w, r, http.StatusOK, order)
}
