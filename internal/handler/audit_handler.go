package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/entroapps/bookingflow-backend/internal/repository"
)

// AuditHandler serves the read side of the audit trail: pending scheduled
// tasks, sent records and action logs, scoped by company.
type AuditHandler struct {
	Schedule repository.ScheduleRepositoryInterface
	Audit    repository.AuditRepositoryInterface
}

func NewAuditHandler(schedule repository.ScheduleRepositoryInterface, audit repository.AuditRepositoryInterface) *AuditHandler {
	return &AuditHandler{Schedule: schedule, Audit: audit}
}

func (h *AuditHandler) ListScheduledHandler(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	tasks, err := h.Schedule.ListByCompany(companyID)
	if err != nil {
		http.Error(w, "failed to fetch scheduled tasks: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"data": tasks})
}

func (h *AuditHandler) ListSentHandler(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	records, err := h.Audit.ListSentByCompany(companyID)
	if err != nil {
		http.Error(w, "failed to fetch sent records: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"data": records})
}

func (h *AuditHandler) ListLogsHandler(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	logs, err := h.Audit.ListLogsByCompany(companyID)
	if err != nil {
		http.Error(w, "failed to fetch action logs: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"data": logs})
}
