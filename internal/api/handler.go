// Package api provides the HTTP API for the NCP engine.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/kosha-health/ncp-engine/internal/domain"
	"github.com/kosha-health/ncp-engine/internal/workflow"
)

// Handler holds all dependencies for the HTTP handlers.
type Handler struct {
	Orchestrator *workflow.Orchestrator
}

// CreateClientRequest is the body for POST /api/v1/clients.
type CreateClientRequest struct {
	Name string `json:"name"`
}

// ClientResponse is a client record with its transition history.
type ClientResponse struct {
	Client  *domain.Client           `json:"client"`
	History []domain.StateTransition `json:"history"`
}

// APIError is a structured error response.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateClient handles POST /api/v1/clients.
func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, APIError{Code: 400, Message: "invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, APIError{Code: 400, Message: "name is required"})
		return
	}

	c, err := h.Orchestrator.CreateClient(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// GetClient handles GET /api/v1/clients/{clientID}.
func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("clientID")
	c, history, err := h.Orchestrator.GetClient(r.Context(), clientID)
	if err != nil {
		writeError(w, err)
		return
	}
	if history == nil {
		history = []domain.StateTransition{}
	}
	writeJSON(w, http.StatusOK, ClientResponse{Client: c, History: history})
}

// SubmitIntake handles POST /api/v1/clients/{clientID}/intake.
func (h *Handler) SubmitIntake(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("clientID")
	var intake domain.IntakeContext
	if err := json.NewDecoder(r.Body).Decode(&intake); err != nil {
		writeJSON(w, http.StatusBadRequest, APIError{Code: 400, Message: "invalid request body"})
		return
	}

	a, err := h.Orchestrator.SubmitIntake(r.Context(), clientID, intake)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// RunDiagnosis handles POST /api/v1/clients/{clientID}/diagnosis.
func (h *Handler) RunDiagnosis(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("clientID")
	dc, err := h.Orchestrator.RunDiagnosis(r.Context(), clientID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dc)
}

// GeneratePlan handles POST /api/v1/clients/{clientID}/plan.
func (h *Handler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("clientID")
	plan, err := h.Orchestrator.GeneratePlan(r.Context(), clientID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

// GetLatestPlan handles GET /api/v1/clients/{clientID}/plan.
func (h *Handler) GetLatestPlan(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("clientID")
	plan, err := h.Orchestrator.LatestPlan(r.Context(), clientID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// GetPlanVersion handles GET /api/v1/clients/{clientID}/plan/{version}.
func (h *Handler) GetPlanVersion(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("clientID")
	version, err := strconv.Atoi(r.PathValue("version"))
	if err != nil || version < 1 {
		writeJSON(w, http.StatusBadRequest, APIError{Code: 400, Message: "version must be a positive integer"})
		return
	}

	plan, err := h.Orchestrator.PlanVersion(r.Context(), clientID, version)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// Activate handles POST /api/v1/clients/{clientID}/activate.
func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("clientID")
	c, err := h.Orchestrator.Activate(r.Context(), clientID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// GetStageContext handles GET /api/v1/assessments/{assessmentID}/stages/{stage}.
// It exposes the persisted stage documents for audit.
func (h *Handler) GetStageContext(w http.ResponseWriter, r *http.Request) {
	assessmentID := r.PathValue("assessmentID")
	stage := r.PathValue("stage")

	var doc json.RawMessage
	if err := h.Orchestrator.StageContext(r.Context(), assessmentID, stage, &doc); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	if engErr, ok := err.(*domain.EngineError); ok {
		status := http.StatusInternalServerError
		switch engErr.Code {
		case domain.ErrClientNotFound.Code,
			domain.ErrAssessmentNotFound.Code,
			domain.ErrPlanNotFound.Code:
			status = http.StatusNotFound
		case domain.ErrDuplicateClient.Code:
			status = http.StatusConflict
		case domain.ErrOptimisticLock.Code:
			status = http.StatusConflict
		case domain.ErrInvalidTransition.Code,
			domain.ErrTerminalState.Code,
			domain.ErrStageOutOfOrder.Code,
			domain.ErrContractViolated.Code:
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, APIError{Code: engErr.Code, Message: engErr.Message})
		return
	}
	writeJSON(w, http.StatusInternalServerError, APIError{Code: -1, Message: err.Error()})
}
