package model

import "time"

// Event is a point-in-time snapshot of a booking event, taken at the moment
// a workflow decision is made. Scheduled tasks and audit rows embed the
// snapshot verbatim; it is never re-fetched.
type Event struct {
	ID             string    `json:"id"`
	CompanyID      string    `json:"company_id"`
	CustomerID     string    `json:"customer_id"`
	ServiceTypeID  string    `json:"service_type_id"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	CreatedAt      time.Time `json:"created_at"`
	Title          string    `json:"title,omitempty"`
	Description    string    `json:"description,omitempty"`
	SuccessMessage string    `json:"success_message,omitempty"`

	// Recurrence marker: the shared series id, empty for one-off bookings.
	RecurringEventID string `json:"recurring_event,omitempty"`
	RRule            string `json:"rrule,omitempty"`

	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	CustomerCode  string `json:"customer_code,omitempty"`
}

// IsRecurring reports whether the event belongs to a recurring series.
func (e *Event) IsRecurring() bool {
	return e.RecurringEventID != ""
}
