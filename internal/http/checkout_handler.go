package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopblue/storefront/internal/checkout"
	"github.com/shopblue/storefront/internal/domain"
)

type CheckoutHandler struct {
	workflow *checkout.Workflow
}

func NewCheckoutHandler(workflow *checkout.Workflow) *CheckoutHandler {
	return &CheckoutHandler{workflow: workflow}
}

type DirectSubmitDTO struct {
	Shipping checkout.Shipping    `json:"shipping"`
	Card     checkout.CardDetails `json:"card"`
}

type DelegatedSubmitDTO struct {
	Shipping checkout.Shipping `json:"shipping"`
}

type SwitchStrategyDTO struct {
	Strategy checkout.PaymentStrategy `json:"strategy"`
}

type CheckoutResultDTO struct {
	Session checkout.Session `json:"session"`
	Order   *domain.Order    `json:"order,omitempty"`
}

// Begin opens a checkout session. It requires a signed-in identity and a
// non-empty cart.
func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	session, err := h.workflow.Begin(user)
	if err != nil {
		h.respondCheckoutError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, session)
}

func (h *CheckoutHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.workflow.Session(chi.URLParam(r, "session_id"))
	if err != nil {
		h.respondCheckoutError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, session)
}

func (h *CheckoutHandler) SubmitDirect(w http.ResponseWriter, r *http.Request) {
	var req DirectSubmitDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sessionID := chi.URLParam(r, "session_id")
	order, err := h.workflow.SubmitDirect(r.Context(), sessionID, req.Shipping, req.Card)
	if err != nil {
		h.respondCheckoutError(w, r, err)
		return
	}

	session, _ := h.workflow.Session(sessionID)
	respondJSON(w, r, http.StatusCreated, CheckoutResultDTO{Session: session, Order: &order})
}

func (h *CheckoutHandler) SubmitDelegated(w http.ResponseWriter, r *http.Request) {
	var req DelegatedSubmitDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sessionID := chi.URLParam(r, "session_id")
	order, err := h.workflow.SubmitDelegated(r.Context(), sessionID, req.Shipping)
	if err != nil {
		h.respondCheckoutError(w, r, err)
		return
	}

	session, _ := h.workflow.Session(sessionID)
	respondJSON(w, r, http.StatusCreated, CheckoutResultDTO{Session: session, Order: &order})
}

// SwitchStrategy resets a failed attempt so the other strategy starts
// clean, keeping entered shipping details.
func (h *CheckoutHandler) SwitchStrategy(w http.ResponseWriter, r *http.Request) {
	var req SwitchStrategyDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Strategy != checkout.StrategyDirect && req.Strategy != checkout.StrategyDelegated {
		respondError(w, r, http.StatusBadRequest, "invalid_strategy", "unknown payment strategy")
		return
	}

	session, err := h.workflow.SwitchStrategy(chi.URLParam(r, "session_id"), req.Strategy)
	if err != nil {
		h.respondCheckoutError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, session)
}

func (h *CheckoutHandler) respondCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, checkout.ErrNoIdentity):
		respondError(w, r, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, r, http.StatusConflict, "empty_cart", err.Error())
	case errors.Is(err, checkout.ErrSessionNotFound):
		respondError(w, r, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, checkout.ErrValidation):
		respondError(w, r, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, checkout.ErrSubmissionInProgress):
		respondError(w, r, http.StatusConflict, "submission_in_progress", err.Error())
	case errors.Is(err, checkout.ErrAlreadyCompleted):
		respondError(w, r, http.StatusConflict, "already_completed", err.Error())
	case errors.Is(err, checkout.ErrProviderUnavailable):
		respondError(w, r, http.StatusBadGateway, "provider_unavailable", err.Error())
	case errors.Is(err, checkout.ErrPaymentDeclined):
		respondError(w, r, http.StatusPaymentRequired, "payment_declined", err.Error())
	case errors.Is(err, checkout.ErrPaymentCanceled):
		respondError(w, r, http.StatusConflict, "payment_canceled", err.Error())
	default:
		respondError(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
