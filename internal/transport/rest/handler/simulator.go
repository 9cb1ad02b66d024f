package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"profitum/internal/model"
	"profitum/internal/service"
)

// SimulatorHandler handles the public simulator endpoints
type SimulatorHandler struct {
	sessionSvc   *service.SessionService
	migrationSvc *service.MigrationService
	authSvc      *service.AuthService
}

// NewSimulatorHandler creates a new simulator handler
func NewSimulatorHandler(sessionSvc *service.SessionService, migrationSvc *service.MigrationService, authSvc *service.AuthService) *SimulatorHandler {
	return &SimulatorHandler{
		sessionSvc:   sessionSvc,
		migrationSvc: migrationSvc,
		authSvc:      authSvc,
	}
}

// CreateSession handles POST /v1/simulator/session
func (h *SimulatorHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.Create(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// GetQuestions handles GET /v1/simulator/session/{token}/questions
func (h *SimulatorHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	questions, err := h.sessionSvc.NextQuestions(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if questions == nil {
		questions = []model.Question{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

// SubmitResponseRequest is the request body for submitting an answer
type SubmitResponseRequest struct {
	QuestionID string            `json:"questionId"`
	Value      model.AnswerValue `json:"value"`
}

// SubmitResponse handles POST /v1/simulator/session/{token}/response
func (h *SimulatorHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req SubmitResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.QuestionID == "" {
		writeError(w, http.StatusBadRequest, "questionId is required")
		return
	}

	invalidated, err := h.sessionSvc.SubmitAnswer(r.Context(), token, req.QuestionID, req.Value)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"invalidated": invalidated})
}

// GetResponses handles GET /v1/simulator/session/{token}/responses
func (h *SimulatorHandler) GetResponses(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	responses, err := h.sessionSvc.Responses(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"responses": responses})
}

// ComputeEligibility handles POST /v1/simulator/session/{token}/eligibility
func (h *SimulatorHandler) ComputeEligibility(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	results, err := h.sessionSvc.ComputeEligibility(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// GetResults handles GET /v1/simulator/session/{token}/results
func (h *SimulatorHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	results, err := h.sessionSvc.Results(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if results == nil {
		results = []*model.EligibilityResult{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// Abandon handles POST /v1/simulator/session/{token}/abandon
func (h *SimulatorHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	if err := h.sessionSvc.Abandon(r.Context(), token); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "abandoned"})
}

// Migrate handles POST /v1/simulator/session/{token}/migrate
func (h *SimulatorHandler) Migrate(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var reg model.ClientRegistration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if reg.Email == "" || reg.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	client, result, err := h.migrationSvc.RegisterAndMigrate(r.Context(), token, &reg)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	clientToken, err := h.authSvc.GenerateClientToken(client.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"client":    client,
		"token":     clientToken,
		"migration": result,
	})
}
