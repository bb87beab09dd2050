package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"shipment-tracking/internal/api/handlers"
	"shipment-tracking/internal/repository"
	"shipment-tracking/internal/transfer"
)

// Repositories are the stores exposed over HTTP.
type Repositories struct {
	Users     repository.UserRepository
	Items     repository.ItemRepository
	Shipments repository.ShipmentRepository
}

// NewRouter serves /health and the /api resources. Trailing slashes are optional.
func NewRouter(logger *zap.Logger, db handlers.Pinger, repos Repositories) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.StripSlashes)
	r.Use(RequestID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", handlers.NewHealthHandler(db, logger).Check)

	r.Route("/api", func(r chi.Router) {
		mount(r, "/users", handlers.NewResourceHandler(repos.Users, transfer.Users, "/api/users/", logger))
		mount(r, "/items", handlers.NewResourceHandler(repos.Items, transfer.Items, "/api/items/", logger))
		mount(r, "/shipments", handlers.NewResourceHandler(repos.Shipments, transfer.Shipments, "/api/shipments/", logger))
	})

	return r
}

func mount[T any](r chi.Router, path string, h *handlers.ResourceHandler[T]) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)

		r.Route("/{id:[0-9]+}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Patch("/", h.PartialUpdate)
			r.Delete("/", h.Delete)
		})
	})
}
