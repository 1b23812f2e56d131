// Package tasks contains the task resource: its model, persistence,
// ownership-scoped operations, and the presentation logic that orders and
// classifies tasks for display.
package tasks

import "time"

// Task represents a single task inside a project. A task has no owner field
// of its own; the owning project is the sole authority for it.
type Task struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	ProjectID   int        `json:"project_id"`
}
