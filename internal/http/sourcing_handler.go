package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopblue/storefront/internal/catalog"
	"github.com/shopblue/storefront/internal/domain"
	"github.com/shopblue/storefront/internal/sourcing"
)

// SourcingClient is the generative collaborator boundary; satisfied by
// *sourcing.Client and by test fakes.
type SourcingClient interface {
	Search(ctx context.Context, query string) sourcing.Batch
}

type SourcingHandler struct {
	client  SourcingClient
	catalog *catalog.Store
}

func NewSourcingHandler(client SourcingClient, cat *catalog.Store) *SourcingHandler {
	return &SourcingHandler{client: client, catalog: cat}
}

type SearchRequestDTO struct {
	Query string `json:"query"`
}

// Search forwards the query to the sourcing collaborator. Failures have
// already been folded into an empty batch by the client, so this endpoint
// only ever answers 200.
func (h *SourcingHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Query == "" {
		respondError(w, r, http.StatusBadRequest, "invalid_query", "query is required")
		return
	}

	batch := h.client.Search(r.Context(), req.Query)
	respondJSON(w, r, http.StatusOK, batch)
}

// Import promotes one sourced candidate into the catalog through the
// normal add path. Citation metadata never reaches the catalog: the request
// body is decoded as a bare product.
func (h *SourcingHandler) Import(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if p.ID == "" || p.Name == "" {
		respondError(w, r, http.StatusBadRequest, "invalid_product", "id and name are required")
		return
	}

	p.Source = domain.SourceSourced
	h.catalog.Add(p)
	respondJSON(w, r, http.StatusCreated, p)
}
