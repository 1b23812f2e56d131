package projects

import (
	"time"

	"github.com/user/projectman-go/tasks"
)

// Status summarizes a project's progress from its tasks.
type Status string

const (
	// StatusNone means the project has no tasks at all.
	StatusNone Status = "none"
	// StatusCompleted means every task of the project is completed.
	StatusCompleted Status = "completed"
	// StatusPending means at least one task is still open.
	StatusPending Status = "pending"
)

// StatusOf derives a project status from its task list.
func StatusOf(ts []tasks.Task) Status {
	if len(ts) == 0 {
		return StatusNone
	}
	for _, t := range ts {
		if !t.IsCompleted {
			return StatusPending
		}
	}
	return StatusCompleted
}

// Project represents a project row.
type Project struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	UserID      int       `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectView is a project enriched with its tasks and derived status,
// returned by the list endpoint.
type ProjectView struct {
	Project
	Tasks  []tasks.Task `json:"tasks"`
	Status Status       `json:"status"`
}
