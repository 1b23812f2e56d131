package projects

import (
	"github.com/go-playground/validator/v10"

	"github.com/user/projectman-go/apperror"
)

var validate = validator.New()

// CreateProjectRequest is the payload for creating a project.
type CreateProjectRequest struct {
	Title       string  `json:"title" example:"Apartment move" validate:"required,min=3,max=100"`
	Description *string `json:"description,omitempty" example:"Everything for the October move" validate:"omitempty,max=500"`
}

// Validate checks the payload against the title and description limits.
func (r CreateProjectRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return apperror.NewValidationError("title must be 3-100 characters and description at most 500", err)
	}
	return nil
}

// UpdateProjectRequest is the partial-update payload for a project. Absent
// fields leave the stored values unchanged.
type UpdateProjectRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=3,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// Validate checks the supplied fields against the same limits as creation.
// The empty string is checked by hand: validator's omitempty would otherwise
// skip a pointer to "".
func (r UpdateProjectRequest) Validate() error {
	if r.Title != nil && *r.Title == "" {
		return apperror.NewValidationError("title must be 3-100 characters and description at most 500", nil)
	}
	if err := validate.Struct(r); err != nil {
		return apperror.NewValidationError("title must be 3-100 characters and description at most 500", err)
	}
	return nil
}
