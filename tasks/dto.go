package tasks

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/user/projectman-go/apperror"
)

var validate = validator.New()

// dueDateLayouts are the accepted wire formats for due dates. Browser date
// inputs submit plain dates; API clients may send full timestamps.
var dueDateLayouts = []string{"2006-01-02", time.RFC3339}

// parseDueDate parses a due date from its wire representation.
func parseDueDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dueDateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// CreateTaskRequest is the payload for creating a task inside a project.
type CreateTaskRequest struct {
	Title     string  `json:"title" example:"Write release notes" validate:"required"`
	DueDate   *string `json:"due_date,omitempty" example:"2026-09-15"`
	ProjectID int     `json:"project_id" example:"1" validate:"required"`
}

// Validate checks the payload and parses the optional due date.
func (r CreateTaskRequest) Validate() (*time.Time, error) {
	if err := validate.Struct(r); err != nil {
		return nil, apperror.NewValidationError("title and project_id are required", err)
	}
	if r.DueDate == nil {
		return nil, nil
	}
	due, err := parseDueDate(*r.DueDate)
	if err != nil {
		return nil, apperror.NewValidationError("due_date must be a date (2006-01-02) or RFC 3339 timestamp", err)
	}
	return &due, nil
}

// UpdateTaskRequest is the partial-update payload for a task. Absent fields
// leave the stored values unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1"`
	DueDate     *string `json:"due_date,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}

// Validate checks the supplied fields and parses the due date when present.
// The empty string is checked by hand: validator's omitempty would otherwise
// skip a pointer to "".
func (r UpdateTaskRequest) Validate() (*time.Time, error) {
	if r.Title != nil && *r.Title == "" {
		return nil, apperror.NewValidationError("title must not be empty", nil)
	}
	if err := validate.Struct(r); err != nil {
		return nil, apperror.NewValidationError("title must not be empty", err)
	}
	if r.DueDate == nil {
		return nil, nil
	}
	due, err := parseDueDate(*r.DueDate)
	if err != nil {
		return nil, apperror.NewValidationError("due_date must be a date (2006-01-02) or RFC 3339 timestamp", err)
	}
	return &due, nil
}
