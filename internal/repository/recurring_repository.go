package repository

import (
	"database/sql"
	"time"

	"github.com/entroapps/bookingflow-backend/internal/model"
)

type RecurringRepositoryInterface interface {
	Store(rec *model.RecurringSeriesRecord) (bool, error)
	PreviousOccurrence(seriesID, customerID string, before time.Time) (*model.RecurringSeriesRecord, error)
	FirstOccurrence(seriesID, customerID string) (*model.RecurringSeriesRecord, error)
}

// RecurringRepository keeps one canonical record per recurring series and
// customer, so later occurrences reuse the first occurrence's generated
// title, description and success message.
type RecurringRepository struct {
	DB *sql.DB
}

// Store inserts the series record if its (series, customer, event_created_at)
// key is not taken yet. Returns false when a concurrent occurrence already
// created the record; the insert itself never races thanks to the unique key.
func (r *RecurringRepository) Store(rec *model.RecurringSeriesRecord) (bool, error) {
	query := `
        INSERT INTO recurring_events (recurring_event, customer, title, description, booking_success_message, event_created_at, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW())
        ON CONFLICT (recurring_event, customer, event_created_at) DO NOTHING
    `
	res, err := r.DB.Exec(query, rec.SeriesID, rec.CustomerID, rec.Title, rec.Description, rec.SuccessMessage, rec.EventCreatedAt)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// PreviousOccurrence returns the most recent record for the series and
// customer created before this occurrence's timestamp, or nil when this is
// the first occurrence.
func (r *RecurringRepository) PreviousOccurrence(seriesID, customerID string, before time.Time) (*model.RecurringSeriesRecord, error) {
	query := `
        SELECT id, recurring_event, customer, title, description, booking_success_message, event_created_at, created_at
        FROM recurring_events
        WHERE recurring_event=$1 AND customer=$2 AND event_created_at < $3
        ORDER BY created_at DESC
        LIMIT 1
    `
	return r.scanOne(r.DB.QueryRow(query, seriesID, customerID, before))
}

// FirstOccurrence returns the oldest record for the series and customer.
func (r *RecurringRepository) FirstOccurrence(seriesID, customerID string) (*model.RecurringSeriesRecord, error) {
	query := `
        SELECT id, recurring_event, customer, title, description, booking_success_message, event_created_at, created_at
        FROM recurring_events
        WHERE recurring_event=$1 AND customer=$2
        ORDER BY created_at ASC
        LIMIT 1
    `
	return r.scanOne(r.DB.QueryRow(query, seriesID, customerID))
}

func (r *RecurringRepository) scanOne(row *sql.Row) (*model.RecurringSeriesRecord, error) {
	var rec model.RecurringSeriesRecord
	err := row.Scan(&rec.ID, &rec.SeriesID, &rec.CustomerID, &rec.Title, &rec.Description, &rec.SuccessMessage, &rec.EventCreatedAt, &rec.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

var _ RecurringRepositoryInterface = (*RecurringRepository)(nil)
