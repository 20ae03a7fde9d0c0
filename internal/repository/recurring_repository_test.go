package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/entroapps/bookingflow-backend/internal/model"
)

func TestRecurringStoreInsertsOnce(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	createdAt := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	rec := &model.RecurringSeriesRecord{
		SeriesID:       "series-1",
		CustomerID:     "cust-1",
		Title:          "(111222) Golf Lesson",
		Description:    "Welcome! Your access code is: 111222",
		SuccessMessage: "Welcome! Your access code is: 111222",
		EventCreatedAt: createdAt,
	}

	mock.ExpectExec("INSERT INTO recurring_events").
		WithArgs("series-1", "cust-1", rec.Title, rec.Description, rec.SuccessMessage, createdAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	// conflicting insert affects zero rows
	mock.ExpectExec("INSERT INTO recurring_events").
		WithArgs("series-1", "cust-1", rec.Title, rec.Description, rec.SuccessMessage, createdAt).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := &RecurringRepository{DB: db}

	inserted, err := repo.Store(rec)
	if err != nil {
		t.Fatal(err)
	}
	if !inserted {
		t.Error("first store should insert")
	}

	inserted, err = repo.Store(rec)
	if err != nil {
		t.Fatal(err)
	}
	if inserted {
		t.Error("second store of the same key must report a conflict")
	}
}

func TestRecurringPreviousOccurrence(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	before := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	stored := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM recurring_events").
		WithArgs("series-1", "cust-1", before).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "recurring_event", "customer", "title", "description", "booking_success_message", "event_created_at", "created_at",
		}).AddRow(1, "series-1", "cust-1", "(111222) Golf Lesson", "d", "d", stored, stored))

	repo := &RecurringRepository{DB: db}
	rec, err := repo.PreviousOccurrence("series-1", "cust-1", before)
	if err != nil {
		t.Fatal(err)
	}
	if rec == nil || rec.Title != "(111222) Golf Lesson" {
		t.Errorf("rec = %+v", rec)
	}
}

func TestRecurringPreviousOccurrenceNone(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM recurring_events").
		WithArgs("series-1", "cust-1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "recurring_event", "customer", "title", "description", "booking_success_message", "event_created_at", "created_at",
		}))

	repo := &RecurringRepository{DB: db}
	rec, err := repo.PreviousOccurrence("series-1", "cust-1", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if rec != nil {
		t.Errorf("rec = %+v, want nil for a first occurrence", rec)
	}
}
