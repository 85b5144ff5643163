package api

import (
	"net/http"

	"pricing-engine/internal/api/handlers"
	"pricing-engine/internal/engine"
	"pricing-engine/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay
// unaware of concrete adapters).
func NewRouter(repo ports.InstanceRepository, solveCache ports.SolveCache, auditLog ports.SolveAuditLog, cfg engine.Config) http.Handler {
	mux := http.NewServeMux()

	instanceHandler := &handlers.InstanceHandler{Repo: repo}
	solveHandler := &handlers.SolveHandler{
		Repo:       repo,
		SolveCache: solveCache,
		AuditLog:   auditLog,
		Config:     cfg,
	}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("POST /instances", instanceHandler.Create)
	mux.HandleFunc("GET /instances/{id}", instanceHandler.Get)
	mux.HandleFunc("POST /instances/{id}/solve", solveHandler.Solve)

	return loggingMiddleware(mux)
}
