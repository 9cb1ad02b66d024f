package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"profitum/internal/service"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// LoginRequest is the request body for admin login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /v1/auth/admin/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authSvc.Login(req.Username, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps domain errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var partial *service.PartialMigrationError
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrQuestionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSessionExpired), errors.Is(err, service.ErrSessionAbandoned):
		writeError(w, http.StatusGone, err.Error())
	case errors.Is(err, service.ErrInvalidAnswerType), errors.Is(err, service.ErrQuestionNotVisible):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEmailAlreadyUsed):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &partial):
		// Data exists but is attached to no visible account; must reach an
		// operator, never be swallowed.
		log.Printf("ALERT: partial migration of session %s, unmigrated records: %v",
			partial.SessionID, partial.UnmigratedIDs)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":         "migration incomplete, support has been notified",
			"unmigratedIds": partial.UnmigratedIDs,
		})
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
