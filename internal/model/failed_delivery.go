package model

import (
	"encoding/json"
	"time"
)

// Failed delivery statuses. A record is deleted on successful redrive, so
// in practice entries stay pending until they go through.
const (
	FailedPending  = "pending"
	FailedRetrying = "retrying"
	FailedSent     = "sent"
)

// FailedDelivery captures a delivery that could not be completed, keyed by
// channel and destination so the redrive sweep can retry it verbatim.
type FailedDelivery struct {
	ID          int             `db:"id" json:"id"`
	Channel     string          `db:"channel" json:"channel"`
	Destination string          `db:"destination" json:"destination"`
	Payload     json.RawMessage `db:"payload" json:"payload"`
	Error       string          `db:"error" json:"error"`
	Status      string          `db:"status" json:"status"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}
