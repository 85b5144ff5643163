package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"pricing-engine/internal/api/dto"
	"pricing-engine/internal/engine"
	"pricing-engine/internal/ports"
	"pricing-engine/internal/services"
)

// SolveHandler runs a pricing solve against a persisted instance.
type SolveHandler struct {
	Repo       ports.InstanceRepository
	SolveCache ports.SolveCache
	AuditLog   ports.SolveAuditLog
	Config     engine.Config
}

func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "id is required")
		return
	}

	var req dto.SolveRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.Duals) == 0 {
		writeError(w, r, http.StatusBadRequest, "duals is required")
		return
	}

	forbidden := make([]engine.ForbiddenArc, 0, len(req.ForbiddenArcs))
	for _, a := range req.ForbiddenArcs {
		forbidden = append(forbidden, engine.ForbiddenArc{From: a.From, To: a.To})
	}

	cfg := h.Config
	if req.Bidirectional != nil {
		cfg.Bidirectional = *req.Bidirectional
	}

	columns, err := services.Solve(r.Context(), services.SolveRequest{
		InstanceID: id,
		Duals:      req.Duals,
		Forbidden:  forbidden,
		Config:     cfg,
	}, h.Repo, h.SolveCache, h.AuditLog)
	if err != nil {
		log.Printf("solve failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.SolveResponse{Columns: make([]dto.ColumnResponse, 0, len(columns))}
	for _, c := range columns {
		res.Columns = append(res.Columns, dto.ColumnResponse{
			NodeSequence: c.NodeSequence,
			ReducedCost:  c.ReducedCost,
			Distance:     c.Distance,
			Duration:     c.Duration,
			Load:         c.Load,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
