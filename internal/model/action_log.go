package model

import (
	"encoding/json"
	"time"
)

// Action outcome statuses recorded in logs.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// ActionLog is one row per delivery attempt: (event, workflow, company,
// action type) with a status and a details document (recipient, rendered
// content, error if any). Write-only from the engine's perspective.
type ActionLog struct {
	ID         int             `db:"id" json:"id"`
	EventID    string          `db:"event_id" json:"event_id"`
	WorkflowID int             `db:"workflow_id" json:"workflow_id"`
	CompanyID  string          `db:"company_id" json:"company_id"`
	ActionType string          `db:"action_type" json:"action_type"`
	Status     string          `db:"status" json:"status"`
	Details    json.RawMessage `db:"details" json:"details"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}
