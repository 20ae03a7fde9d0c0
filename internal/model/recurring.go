package model

import "time"

// RecurringSeriesRecord holds the canonical title, description and booking
// success message for one recurring series, keyed by (series id, customer id,
// first-occurrence timestamp). Created once, on the first occurrence; every
// later occurrence reads it instead of generating a new code.
type RecurringSeriesRecord struct {
	ID             int       `db:"id" json:"id"`
	SeriesID       string    `db:"recurring_event" json:"recurring_event"`
	CustomerID     string    `db:"customer" json:"customer"`
	Title          string    `db:"title" json:"title"`
	Description    string    `db:"description" json:"description"`
	SuccessMessage string    `db:"booking_success_message" json:"booking_success_message"`
	EventCreatedAt time.Time `db:"event_created_at" json:"event_created_at"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
