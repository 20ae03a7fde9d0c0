// internal/errors/errors.go
package appErrors

import "fmt"

// ValidationError: the event shape is unusable for a single action
// (missing company id, customer code, malformed snapshot). Aborts that
// action only, never the batch.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing %s in event", e.Field)
}

func NewValidationError(field string) error {
	return &ValidationError{Field: field}
}

// ConfigurationError: unknown action kind or unparseable workflow settings.
// Surfaced in the action outcome and logged, never retried.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return e.Reason
}

func NewConfigurationError(reason string) error {
	return &ConfigurationError{Reason: reason}
}

// ErrWorkflowNotFound is a sentinel error
type ErrWorkflowNotFound struct {
	WorkflowID int
}

func (e *ErrWorkflowNotFound) Error() string {
	return fmt.Sprintf("workflow with ID %d not found", e.WorkflowID)
}

// Helper constructor
func NewWorkflowNotFound(id int) error {
	return &ErrWorkflowNotFound{WorkflowID: id}
}
