package routes

import (
	"net/http"

	"github.com/rentnest/rentnest/backend/internal/api/handlers"
	"github.com/rentnest/rentnest/backend/internal/api/middleware"
	"github.com/rentnest/rentnest/backend/internal/domain/providers"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	listingHandler *handlers.ListingHandler

	tokenVerifier  providers.TokenVerifier
	allowedOrigins []string
}

// NewRouter creates a new router
func NewRouter(
	listingHandler *handlers.ListingHandler,
	tokenVerifier providers.TokenVerifier,
	allowedOrigins []string,
) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		listingHandler: listingHandler,
		tokenVerifier:  tokenVerifier,
		allowedOrigins: allowedOrigins,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	requireAuth := middleware.RequireAuth(r.tokenVerifier)

	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Public listing endpoints
	r.mux.HandleFunc("GET /api/listings", r.listingHandler.ListListings)
	r.mux.HandleFunc("GET /api/listings/{id}", r.listingHandler.GetListing)

	// Authenticated listing endpoints. ServeMux prefers the literal
	// my-listings segment over the {id} pattern.
	r.mux.Handle("POST /api/listings", requireAuth(http.HandlerFunc(r.listingHandler.CreateListing)))
	r.mux.Handle("GET /api/listings/my-listings", requireAuth(http.HandlerFunc(r.listingHandler.MyListings)))
	r.mux.Handle("PUT /api/listings/{id}", requireAuth(http.HandlerFunc(r.listingHandler.UpdateListing)))
	r.mux.Handle("PATCH /api/listings/{id}/availability", requireAuth(http.HandlerFunc(r.listingHandler.ToggleAvailability)))
	r.mux.Handle("DELETE /api/listings/{id}", requireAuth(http.HandlerFunc(r.listingHandler.DeleteListing)))

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// CORS wraps everything so headers are set even on errors
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
