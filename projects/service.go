package projects

import (
	"context"

	"github.com/user/projectman-go/ownership"
	"github.com/user/projectman-go/tasks"
)

// Service implements the ownership-scoped project operations. List returns
// each project with its tasks and a derived status; the single-project reads
// and writes work on the bare row. Every operation except Create and List
// runs through the ownership guard, so a foreign project and an absent one
// produce the same not-found answer.
type Service struct {
	repo  Repository
	tasks tasks.Repository
	guard *ownership.Guard
}

// NewService creates the project service.
func NewService(repo Repository, taskRepo tasks.Repository, guard *ownership.Guard) *Service {
	return &Service{repo: repo, tasks: taskRepo, guard: guard}
}

// List returns the caller's projects, each carrying its tasks and the status
// derived from them.
func (s *Service) List(ctx context.Context, callerID int) ([]ProjectView, error) {
	ps, err := s.repo.ListByOwner(ctx, callerID)
	if err != nil {
		return nil, err
	}

	views := make([]ProjectView, 0, len(ps))
	for _, p := range ps {
		ts, err := s.tasks.ListByProject(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, ProjectView{Project: p, Tasks: ts, Status: StatusOf(ts)})
	}
	return views, nil
}

// Create makes a new project owned by the caller. The result carries an
// empty task list, matching the shape of Get and List.
func (s *Service) Create(ctx context.Context, callerID int, req CreateProjectRequest) (*ProjectView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p := &Project{
		Title:       req.Title,
		Description: req.Description,
		UserID:      callerID,
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	return &ProjectView{Project: *created, Tasks: []tasks.Task{}, Status: StatusNone}, nil
}

// Get returns a single project owned by the caller, with its tasks and
// derived status.
func (s *Service) Get(ctx context.Context, callerID, projectID int) (*ProjectView, error) {
	if err := s.guard.RequireProject(ctx, callerID, projectID); err != nil {
		return nil, err
	}
	p, err := s.repo.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	ts, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &ProjectView{Project: *p, Tasks: ts, Status: StatusOf(ts)}, nil
}

// Update applies a partial update to a project owned by the caller. Fields
// absent from the request keep their stored values.
func (s *Service) Update(ctx context.Context, callerID, projectID int, req UpdateProjectRequest) (*Project, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.guard.RequireProject(ctx, callerID, projectID); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, projectID, req.Title, req.Description)
}

// Delete removes a project owned by the caller together with all its tasks.
func (s *Service) Delete(ctx context.Context, callerID, projectID int) error {
	if err := s.guard.RequireProject(ctx, callerID, projectID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, projectID)
}
