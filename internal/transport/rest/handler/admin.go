package handler

import (
	"net/http"

	"profitum/internal/catalog"
	"profitum/internal/service"
)

// AdminHandler handles back-office endpoints
type AdminHandler struct {
	catalogSvc *catalog.Service
	sessionSvc *service.SessionService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(catalogSvc *catalog.Service, sessionSvc *service.SessionService) *AdminHandler {
	return &AdminHandler{
		catalogSvc: catalogSvc,
		sessionSvc: sessionSvc,
	}
}

// ReloadCatalog handles POST /v1/admin/catalog/reload
func (h *AdminHandler) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogSvc.Load(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "reloaded",
		"questions": h.catalogSvc.Snapshot().Len(),
	})
}

// ListSessions handles GET /v1/admin/sessions
func (h *AdminHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions})
}
