package router

import (
	"log"
	"net/http"

	"github.com/eventops/api/internal/config"
	"github.com/eventops/api/internal/handler"
	mw "github.com/eventops/api/internal/middleware"
	"github.com/eventops/api/internal/service"
	"github.com/eventops/api/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// EventStore is the event backend the API reads and writes.
// Satisfied by *store.Postgres and *airtable.EventStore.
type EventStore interface {
	handler.EventStore
	service.EventStore
}

// New creates a Chi router with all application routes wired up.
// Applies authentication and role-based middleware as needed.
func New(cfg *config.Config, users handler.AuthStore, events EventStore, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	validate := handler.NewValidator()

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","store":"` + cfg.StoreBackend + `"}`))
	})

	authHandler := handler.NewAuthHandler(users, cfg.JWTSecret, validate)
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/events/{eid}", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, events, w, r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		calcHandler := handler.NewCalcHandler(validate)
		r.Route("/calc", calcHandler.RegisterRoutes)

		beoService := service.NewBEOService(events)
		eventHandler := handler.NewEventHandler(events, beoService)

		var notifier service.Notifier
		if hub != nil {
			notifier = hub
		}
		servicewareService := service.NewServicewareService(events, notifier)
		servicewareHandler := handler.NewServicewareHandler(servicewareService, validate)

		r.Route("/events", func(r chi.Router) {
			eventHandler.RegisterRoutes(r)
			r.Route("/{eid}/serviceware", servicewareHandler.RegisterRoutes)
		})
	})

	log.Println("Router initialized with all handlers")
	return r
}
