package repository

import (
	"database/sql"
	"encoding/json"
	"log"
	"time"

	"github.com/entroapps/bookingflow-backend/internal/model"
)

type ScheduleRepositoryInterface interface {
	Enqueue(wf *model.Workflow, event *model.Event, fireAt time.Time) (int, error)
	Due(now time.Time) ([]*model.ScheduledTask, error)
	Claim(taskID int) (bool, error)
	ListByCompany(companyID string) ([]*model.ScheduledTask, error)
	DeleteByEvent(eventID string) (int64, error)
}

// ScheduleRepository is the durable queue of (workflow, event snapshot,
// fire time) tuples. Workflow and event are stored as JSON snapshots so a
// task executes against the state that was true when it was scheduled.
type ScheduleRepository struct {
	DB *sql.DB
}

func (r *ScheduleRepository) Enqueue(wf *model.Workflow, event *model.Event, fireAt time.Time) (int, error) {
	wfDoc, err := json.Marshal(wf)
	if err != nil {
		return 0, err
	}
	eventDoc, err := json.Marshal(event)
	if err != nil {
		return 0, err
	}

	query := `
        INSERT INTO schedule (wf, event, dt, created_at, company_id)
        VALUES ($1, $2, $3, NOW(), $4)
        RETURNING id
    `
	var id int
	err = r.DB.QueryRow(query, wfDoc, eventDoc, fireAt, event.CompanyID).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Due returns every task whose fire time is at or before now. Rows are not
// removed here; the caller claims each row with Claim before executing it.
func (r *ScheduleRepository) Due(now time.Time) ([]*model.ScheduledTask, error) {
	query := `
        SELECT id, wf, event, dt, created_at, company_id
        FROM schedule
        WHERE dt <= $1
        ORDER BY dt, id
    `
	rows, err := r.DB.Query(query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// Claim atomically removes one task row. It returns false when the row is
// already gone, meaning another sweep claimed it and this caller must skip.
func (r *ScheduleRepository) Claim(taskID int) (bool, error) {
	res, err := r.DB.Exec(`DELETE FROM schedule WHERE id=$1`, taskID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *ScheduleRepository) ListByCompany(companyID string) ([]*model.ScheduledTask, error) {
	query := `
        SELECT id, wf, event, dt, created_at, company_id
        FROM schedule
        WHERE company_id=$1
        ORDER BY dt, id
    `
	rows, err := r.DB.Query(query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// DeleteByEvent drops every pending task for an event, used when the
// upstream booking is updated or cancelled.
func (r *ScheduleRepository) DeleteByEvent(eventID string) (int64, error) {
	res, err := r.DB.Exec(`DELETE FROM schedule WHERE event->>'id' = $1`, eventID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanTasks(rows *sql.Rows) ([]*model.ScheduledTask, error) {
	tasks := []*model.ScheduledTask{}
	for rows.Next() {
		var (
			task     model.ScheduledTask
			wfDoc    []byte
			eventDoc []byte
		)
		if err := rows.Scan(&task.ID, &wfDoc, &eventDoc, &task.FireAt, &task.CreatedAt, &task.CompanyID); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(wfDoc, &task.Workflow); err != nil {
			log.Println("skipping task with bad workflow snapshot:", task.ID, err)
			continue
		}
		if err := json.Unmarshal(eventDoc, &task.Event); err != nil {
			log.Println("skipping task with bad event snapshot:", task.ID, err)
			continue
		}
		tasks = append(tasks, &task)
	}
	return tasks, rows.Err()
}

var _ ScheduleRepositoryInterface = (*ScheduleRepository)(nil)
