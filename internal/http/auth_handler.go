package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopblue/storefront/internal/domain"
	"github.com/shopblue/storefront/internal/session"
)

type AuthHandler struct {
	sessions *session.Store
}

func NewAuthHandler(sessions *session.Store) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type LoginRequestDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginResponseDTO struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Login runs the simulated credential check and mints a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" {
		respondError(w, r, http.StatusBadRequest, "invalid_email", "email is required")
		return
	}

	token, user, err := h.sessions.Login(r.Context(), req.Name, req.Email)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return // client went away during the simulated delay
		}
		respondError(w, r, http.StatusInternalServerError, "internal_error", "login failed")
		return
	}

	respondJSON(w, r, http.StatusOK, LoginResponseDTO{Token: token, User: user})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := bearerToken(r); token != "" {
		h.sessions.Logout(token)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the current session identity.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		respondError(w, r, http.StatusUnauthorized, "unauthenticated", "missing or invalid session token")
		return
	}
	respondJSON(w, r, http.StatusOK, user)
}
