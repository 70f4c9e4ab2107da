package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/netair/conciliador/internal/ingestion"
	"github.com/netair/conciliador/internal/reconciliation"
)

// NewRouter creates the Chi router with all routes mounted.
func NewRouter(ingestionSvc *ingestion.Service, engine *reconciliation.Engine, log *zap.Logger) http.Handler {
	h := &Handlers{
		ingestionSvc: ingestionSvc,
		engine:       engine,
		log:          log,
	}

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Post("/conciliar", h.Reconcile)

	return r
}
