package tasks

import (
	"context"
	"time"

	"github.com/user/projectman-go/apperror"
	"github.com/user/projectman-go/ownership"
)

// Service implements the ownership-scoped task operations. Every operation
// authorizes through the ownership guard before touching the store: creates
// and lists check the target project directly, updates and deletes resolve
// the task's parent project first. Validation runs before any write, so a
// rejected request never leaves partial state behind.
type Service struct {
	repo  Repository
	guard *ownership.Guard
}

// NewService creates the task service.
func NewService(repo Repository, guard *ownership.Guard) *Service {
	return &Service{repo: repo, guard: guard}
}

// ListByProject returns the raw tasks of a project owned by the caller.
// Ordering for display is left to ClassifyAndOrder.
func (s *Service) ListByProject(ctx context.Context, callerID, projectID int) ([]Task, error) {
	if err := s.guard.RequireProject(ctx, callerID, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListByProject(ctx, projectID)
}

// Create adds a task to a project owned by the caller. New tasks always
// start incomplete.
func (s *Service) Create(ctx context.Context, callerID int, req CreateTaskRequest) (*Task, error) {
	due, err := req.Validate()
	if err != nil {
		return nil, err
	}
	if err := s.guard.RequireProject(ctx, callerID, req.ProjectID); err != nil {
		return nil, err
	}

	task := &Task{
		Title:       req.Title,
		DueDate:     due,
		IsCompleted: false,
		ProjectID:   req.ProjectID,
	}
	return s.repo.Create(ctx, task)
}

// Update applies a partial update to a task owned (through its project) by
// the caller. Fields absent from the request keep their stored values.
func (s *Service) Update(ctx context.Context, callerID, taskID int, req UpdateTaskRequest) (*Task, error) {
	due, err := req.Validate()
	if err != nil {
		return nil, err
	}

	task, err := s.authorizeTask(ctx, callerID, taskID)
	if err != nil {
		return nil, err
	}

	var dueArg *time.Time
	if req.DueDate != nil {
		dueArg = due
	}
	return s.repo.Update(ctx, task.ID, req.Title, dueArg, req.IsCompleted)
}

// Delete removes a task owned (through its project) by the caller.
func (s *Service) Delete(ctx context.Context, callerID, taskID int) error {
	task, err := s.authorizeTask(ctx, callerID, taskID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, task.ID)
}

// authorizeTask loads the task and checks the parent project's owner. A
// missing task and a foreign task are indistinguishable to the caller: the
// guard's project-level denial is re-reported as task-not-found so the
// response cannot reveal that the task exists under someone else's project.
func (s *Service) authorizeTask(ctx context.Context, callerID, taskID int) (*Task, error) {
	task, err := s.repo.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.RequireProject(ctx, callerID, task.ProjectID); err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFoundError("task not found", nil)
		}
		return nil, err
	}
	return task, nil
}
