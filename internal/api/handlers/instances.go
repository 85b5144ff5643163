package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"pricing-engine/internal/api/dto"
	"pricing-engine/internal/domain"
	"pricing-engine/internal/ports"
	"pricing-engine/internal/services"
)

// InstanceHandler exposes instance persistence endpoints.
type InstanceHandler struct {
	Repo ports.InstanceRepository
}

func (h *InstanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.InstanceRequest

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

	id := strings.TrimSpace(req.ID)
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "id is required")
		return
	}

	data, err := domain.NewProblemData(domain.ProblemData{
		NumNodes:        req.NumNodes,
		VehicleCapacity: req.VehicleCapacity,
		Demands:         req.Demands,
		ServiceTimes:    req.ServiceTimes,
		TWStart:         req.TWStart,
		TWEnd:           req.TWEnd,
		DistMatrix:      req.DistMatrix,
		TimeMatrix:      req.TimeMatrix,
		Neighbors:       req.Neighbors,
		NGNeighborLists: req.NGNeighborLists,
	})
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Repo.Save(r.Context(), id, data); err != nil {
		log.Printf("save instance failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	services.InvalidateSolverCache(id)

	writeJSON(w, r, http.StatusCreated, dto.InstanceResponse{ID: id})
}

func (h *InstanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "id is required")
		return
	}

	data, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, http.StatusNotFound, "instance not found")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.InstanceRequest{
		ID:              id,
		NumNodes:        data.NumNodes,
		VehicleCapacity: data.VehicleCapacity,
		Demands:         data.Demands,
		ServiceTimes:    data.ServiceTimes,
		TWStart:         data.TWStart,
		TWEnd:           data.TWEnd,
		DistMatrix:      data.DistMatrix,
		TimeMatrix:      data.TimeMatrix,
		Neighbors:       data.Neighbors,
		NGNeighborLists: data.NGNeighborLists,
	})
}
