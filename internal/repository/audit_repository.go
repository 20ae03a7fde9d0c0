package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/entroapps/bookingflow-backend/internal/model"
)

type AuditRepositoryInterface interface {
	LogAction(eventID string, workflowID int, companyID, actionType, status string, details any) error
	AddToSent(wf *model.Workflow, event *model.Event, at time.Time) error
	ListLogsByCompany(companyID string) ([]*model.ActionLog, error)
	ListSentByCompany(companyID string) ([]*model.SentRecord, error)
}

// AuditRepository writes the engine's append-only history: one action log
// row per delivery attempt plus one sent record per executed pair.
type AuditRepository struct {
	DB *sql.DB
}

func (r *AuditRepository) LogAction(eventID string, workflowID int, companyID, actionType, status string, details any) error {
	doc, err := json.Marshal(details)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO action_logs (event_id, workflow_id, company_id, action_type, status, details, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW())
    `
	_, err = r.DB.Exec(query, eventID, workflowID, companyID, actionType, status, doc)
	return err
}

func (r *AuditRepository) AddToSent(wf *model.Workflow, event *model.Event, at time.Time) error {
	wfDoc, err := json.Marshal(wf)
	if err != nil {
		return err
	}
	eventDoc, err := json.Marshal(event)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO sent (wf, event, dt, company_id)
        VALUES ($1, $2, $3, $4)
    `
	_, err = r.DB.Exec(query, wfDoc, eventDoc, at, event.CompanyID)
	return err
}

func (r *AuditRepository) ListLogsByCompany(companyID string) ([]*model.ActionLog, error) {
	query := `
        SELECT id, event_id, workflow_id, company_id, action_type, status, details, created_at
        FROM action_logs
        WHERE company_id=$1
        ORDER BY created_at DESC
    `
	rows, err := r.DB.Query(query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []*model.ActionLog{}
	for rows.Next() {
		l := &model.ActionLog{}
		if err := rows.Scan(&l.ID, &l.EventID, &l.WorkflowID, &l.CompanyID, &l.ActionType, &l.Status, &l.Details, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *AuditRepository) ListSentByCompany(companyID string) ([]*model.SentRecord, error) {
	query := `
        SELECT id, wf, event, dt, company_id
        FROM sent
        WHERE company_id=$1
        ORDER BY dt DESC
    `
	rows, err := r.DB.Query(query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*model.SentRecord{}
	for rows.Next() {
		var (
			rec      model.SentRecord
			wfDoc    []byte
			eventDoc []byte
		)
		if err := rows.Scan(&rec.ID, &wfDoc, &eventDoc, &rec.SentAt, &rec.CompanyID); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(wfDoc, &rec.Workflow); err != nil {
			continue
		}
		if err := json.Unmarshal(eventDoc, &rec.Event); err != nil {
			continue
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

var _ AuditRepositoryInterface = (*AuditRepository)(nil)
