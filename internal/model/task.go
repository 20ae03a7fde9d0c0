package model

import "time"

// ScheduledTask is a (workflow, event snapshot, fire time) tuple awaiting
// execution. Consumed exactly once by the sweep: read, then deleted per row.
type ScheduledTask struct {
	ID        int       `db:"id" json:"id"`
	Workflow  Workflow  `json:"workflow"`
	Event     Event     `json:"event"`
	FireAt    time.Time `db:"dt" json:"fire_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	CompanyID string    `db:"company_id" json:"company_id"`
}

// SentRecord is the append-only audit copy of every (workflow, event) pair
// that reached the action executor, written regardless of outcome.
type SentRecord struct {
	ID        int       `db:"id" json:"id"`
	Workflow  Workflow  `json:"workflow"`
	Event     Event     `json:"event"`
	SentAt    time.Time `db:"dt" json:"sent_at"`
	CompanyID string    `db:"company_id" json:"company_id"`
}
