package repository

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	appErrors "github.com/entroapps/bookingflow-backend/internal/errors"
	"github.com/entroapps/bookingflow-backend/internal/model"
)

type WorkflowRepositoryInterface interface {
	ListByCompanyAndTriggers(companyID string, triggers []string) ([]*model.Workflow, error)
	GetByID(id int, companyID string) (*model.Workflow, error)
	Create(wf *model.Workflow) error
	UpdateSettings(id int, companyID string, settings string) error
	Delete(id int, companyID string) error
}

type WorkflowRepository struct {
	DB *sql.DB
}

func (r *WorkflowRepository) Create(wf *model.Workflow) error {
	wf.CreatedAt = time.Now()
	query := `
        INSERT INTO workflows ("trigger", action, settings, name, company_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	return r.DB.QueryRow(query, wf.Trigger, wf.Action, wf.Settings, wf.Name, wf.CompanyID, wf.CreatedAt).Scan(&wf.ID)
}

func (r *WorkflowRepository) GetByID(id int, companyID string) (*model.Workflow, error) {
	query := `
        SELECT id, company_id, "trigger", action, settings, name, created_at, updated_at
        FROM workflows WHERE id=$1 AND company_id=$2
    `
	var wf model.Workflow
	err := r.DB.QueryRow(query, id, companyID).Scan(
		&wf.ID, &wf.CompanyID, &wf.Trigger, &wf.Action, &wf.Settings, &wf.Name, &wf.CreatedAt, &wf.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewWorkflowNotFound(id)
		}
		return nil, err
	}
	return &wf, nil
}

// ListByCompanyAndTriggers fetches the company's workflows restricted to the
// given trigger kinds.
func (r *WorkflowRepository) ListByCompanyAndTriggers(companyID string, triggers []string) ([]*model.Workflow, error) {
	query := `
        SELECT id, company_id, "trigger", action, settings, name, created_at, updated_at
        FROM workflows
        WHERE company_id=$1 AND "trigger" = ANY($2)
        ORDER BY id
    `
	rows, err := r.DB.Query(query, companyID, pq.Array(triggers))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workflows := []*model.Workflow{}
	for rows.Next() {
		wf := &model.Workflow{}
		if err := rows.Scan(&wf.ID, &wf.CompanyID, &wf.Trigger, &wf.Action, &wf.Settings, &wf.Name, &wf.CreatedAt, &wf.UpdatedAt); err != nil {
			return nil, err
		}
		workflows = append(workflows, wf)
	}
	return workflows, rows.Err()
}

func (r *WorkflowRepository) UpdateSettings(id int, companyID string, settings string) error {
	query := `UPDATE workflows SET settings=$1, updated_at=NOW() WHERE id=$2 AND company_id=$3`
	_, err := r.DB.Exec(query, settings, id, companyID)
	return err
}

func (r *WorkflowRepository) Delete(id int, companyID string) error {
	query := `DELETE FROM workflows WHERE id=$1 AND company_id=$2`
	_, err := r.DB.Exec(query, id, companyID)
	return err
}

var _ WorkflowRepositoryInterface = (*WorkflowRepository)(nil)
