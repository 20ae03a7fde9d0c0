package repository

import (
	"database/sql"
	"encoding/json"

	"github.com/entroapps/bookingflow-backend/internal/model"
)

type FailedDeliveryRepositoryInterface interface {
	Capture(channel, destination string, payload any, deliveryErr string) error
	ListPending() ([]*model.FailedDelivery, error)
	Delete(id int) error
}

// FailedDeliveryRepository stores deliveries that could not be completed.
// Entries stay pending until a redrive pass gets them through, at which
// point they are deleted.
type FailedDeliveryRepository struct {
	DB *sql.DB
}

func (r *FailedDeliveryRepository) Capture(channel, destination string, payload any, deliveryErr string) error {
	doc, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO failed_deliveries (channel, destination, payload, error, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
    `
	_, err = r.DB.Exec(query, channel, destination, doc, deliveryErr, model.FailedPending)
	return err
}

func (r *FailedDeliveryRepository) ListPending() ([]*model.FailedDelivery, error) {
	query := `
        SELECT id, channel, destination, payload, error, status, created_at, updated_at
        FROM failed_deliveries
        WHERE status=$1
        ORDER BY id
    `
	rows, err := r.DB.Query(query, model.FailedPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*model.FailedDelivery{}
	for rows.Next() {
		fd := &model.FailedDelivery{}
		if err := rows.Scan(&fd.ID, &fd.Channel, &fd.Destination, &fd.Payload, &fd.Error, &fd.Status, &fd.CreatedAt, &fd.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, fd)
	}
	return entries, rows.Err()
}

func (r *FailedDeliveryRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM failed_deliveries WHERE id=$1`, id)
	return err
}

var _ FailedDeliveryRepositoryInterface = (*FailedDeliveryRepository)(nil)
