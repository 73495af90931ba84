package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/shopblue/storefront/internal/cart"
	"github.com/shopblue/storefront/internal/catalog"
	"github.com/shopblue/storefront/internal/checkout"
	"github.com/shopblue/storefront/internal/ledger"
	"github.com/shopblue/storefront/internal/session"
	"github.com/shopblue/storefront/internal/wishlist"
)

// Deps bundles everything the router serves.
type Deps struct {
	Catalog  *catalog.Store
	Cart     *cart.Service
	Ledger   *ledger.Ledger
	Checkout *checkout.Workflow
	Wishlist *wishlist.Service
	Sessions *session.Store
	Sourcing SourcingClient

	Logger         *zap.Logger
	RequestTimeout time.Duration
}

// NewRouter wires the full storefront API under /api/v1.
func NewRouter(deps Deps) http.Handler {
	products := NewProductHandler(deps.Catalog)
	cartHandler := NewCartHandler(deps.Cart, deps.Catalog)
	checkoutHandler := NewCheckoutHandler(deps.Checkout)
	orders := NewOrdersHandler(deps.Ledger)
	wishlistHandler := NewWishlistHandler(deps.Wishlist)
	sourcingHandler := NewSourcingHandler(deps.Sourcing, deps.Catalog)
	auth := NewAuthHandler(deps.Sessions)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(deps.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(RequestLogger(deps.Logger))
	r.Use(SessionAuth(deps.Sessions))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", auth.Login)
		r.Post("/auth/logout", auth.Logout)
		r.Get("/auth/me", auth.Me)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.List)
			r.Post("/", products.Create)
			r.Get("/{product_id}", products.Get)
			r.Delete("/{product_id}", products.Delete)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			r.Post("/items", cartHandler.AddItem)
			r.Patch("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
			r.Delete("/", cartHandler.Clear)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutHandler.Begin)
			r.Get("/{session_id}", checkoutHandler.GetSession)
			r.Post("/{session_id}/direct", checkoutHandler.SubmitDirect)
			r.Post("/{session_id}/delegated", checkoutHandler.SubmitDelegated)
			r.Post("/{session_id}/strategy", checkoutHandler.SwitchStrategy)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orders.List)
			r.Get("/{order_id}", orders.Get)
			r.Patch("/{order_id}/status", orders.UpdateStatus)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlistHandler.List)
			r.Post("/{product_id}", wishlistHandler.Toggle)
		})

		r.Route("/sourcing", func(r chi.Router) {
			r.Post("/search", sourcingHandler.Search)
			r.Post("/import", sourcingHandler.Import)
		})
	})

	return otelhttp.NewHandler(r, "storefront")
}
