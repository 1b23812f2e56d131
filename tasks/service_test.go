package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/user/projectman-go/apperror"
	"github.com/user/projectman-go/ownership"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	tasks  map[int]Task
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tasks: make(map[int]Task), nextID: 1}
}

func (f *fakeRepo) ListByProject(_ context.Context, projectID int) ([]Task, error) {
	out := make([]Task, 0)
	for id := 1; id < f.nextID; id++ {
		if t, ok := f.tasks[id]; ok && t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRepo) Get(_ context.Context, id int) (*Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, apperror.NewNotFoundError("task not found", nil)
	}
	return &t, nil
}

func (f *fakeRepo) Create(_ context.Context, t *Task) (*Task, error) {
	t.ID = f.nextID
	f.nextID++
	f.tasks[t.ID] = *t
	return t, nil
}

func (f *fakeRepo) Update(_ context.Context, id int, title *string, dueDate *time.Time, isCompleted *bool) (*Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, apperror.NewNotFoundError("task not found", nil)
	}
	if title != nil {
		t.Title = *title
	}
	if dueDate != nil {
		t.DueDate = dueDate
	}
	if isCompleted != nil {
		t.IsCompleted = *isCompleted
	}
	f.tasks[id] = t
	return &t, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.tasks[id]; !ok {
		return apperror.NewNotFoundError("task not found", nil)
	}
	delete(f.tasks, id)
	return nil
}

// fakeResolver maps project ids to owners for the ownership guard.
type fakeResolver struct {
	owners map[int]int
}

func (f *fakeResolver) ProjectOwner(_ context.Context, projectID int) (int, error) {
	owner, ok := f.owners[projectID]
	if !ok {
		return 0, apperror.NewNotFoundError("project not found", nil)
	}
	return owner, nil
}

func newTestService(owners map[int]int) (*Service, *fakeRepo) {
	repo := newFakeRepo()
	guard := ownership.NewGuard(&fakeResolver{owners: owners})
	return NewService(repo, guard), repo
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreateTask(t *testing.T) {
	svc, _ := newTestService(map[int]int{1: 100})

	task, err := svc.Create(context.Background(), 100, CreateTaskRequest{
		Title:     "Pack boxes",
		DueDate:   strPtr("2026-10-01"),
		ProjectID: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID == 0 {
		t.Error("created task has no id")
	}
	if task.IsCompleted {
		t.Error("new tasks must start incomplete")
	}
	if task.DueDate == nil || task.DueDate.Format("2006-01-02") != "2026-10-01" {
		t.Errorf("due date not parsed: %v", task.DueDate)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	svc, repo := newTestService(map[int]int{1: 100})

	tests := []struct {
		name string
		req  CreateTaskRequest
	}{
		{"empty title", CreateTaskRequest{Title: "", ProjectID: 1}},
		{"missing project", CreateTaskRequest{Title: "Pack boxes"}},
		{"malformed due date", CreateTaskRequest{Title: "Pack boxes", DueDate: strPtr("next tuesday"), ProjectID: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 100, tt.req)
			if !apperror.IsValidationError(err) {
				t.Fatalf("got %v, want a validation error", err)
			}
		})
	}
	if len(repo.tasks) != 0 {
		t.Errorf("rejected requests must not persist anything, found %d tasks", len(repo.tasks))
	}
}

func TestCreateTaskInForeignProject(t *testing.T) {
	svc, repo := newTestService(map[int]int{1: 100, 2: 200})

	_, err := svc.Create(context.Background(), 100, CreateTaskRequest{Title: "Sneak in", ProjectID: 2})
	if !apperror.IsNotFound(err) {
		t.Fatalf("got %v, want a not-found error", err)
	}
	if len(repo.tasks) != 0 {
		t.Error("task was persisted despite the denied ownership check")
	}
}

func TestUpdateTaskPartial(t *testing.T) {
	svc, repo := newTestService(map[int]int{1: 100})
	due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	repo.tasks[1] = Task{ID: 1, Title: "Pack boxes", DueDate: &due, ProjectID: 1}
	repo.nextID = 2

	got, err := svc.Update(context.Background(), 100, 1, UpdateTaskRequest{IsCompleted: boolPtr(true)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsCompleted {
		t.Error("is_completed was not applied")
	}
	if got.Title != "Pack boxes" {
		t.Errorf("title changed to %q on a partial update", got.Title)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("due date changed to %v on a partial update", got.DueDate)
	}
}

func TestUpdateTaskEmptyRequestIsIdempotent(t *testing.T) {
	svc, repo := newTestService(map[int]int{1: 100})
	repo.tasks[1] = Task{ID: 1, Title: "Pack boxes", ProjectID: 1}
	repo.nextID = 2

	got, err := svc.Update(context.Background(), 100, 1, UpdateTaskRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "Pack boxes" || got.IsCompleted || got.DueDate != nil {
		t.Errorf("empty update changed the task: %+v", got)
	}
}

func TestUpdateTaskRejectsEmptyTitle(t *testing.T) {
	svc, repo := newTestService(map[int]int{1: 100})
	repo.tasks[1] = Task{ID: 1, Title: "Pack boxes", ProjectID: 1}
	repo.nextID = 2

	_, err := svc.Update(context.Background(), 100, 1, UpdateTaskRequest{Title: strPtr("")})
	if !apperror.IsValidationError(err) {
		t.Fatalf("got %v, want a validation error", err)
	}
	if repo.tasks[1].Title != "Pack boxes" {
		t.Error("title was cleared by a rejected update")
	}
}

func TestUpdateForeignTaskReportsTaskNotFound(t *testing.T) {
	svc, repo := newTestService(map[int]int{1: 100, 2: 200})
	repo.tasks[1] = Task{ID: 1, Title: "Theirs", ProjectID: 2}
	repo.nextID = 2

	_, err := svc.Update(context.Background(), 100, 1, UpdateTaskRequest{Title: strPtr("Mine now")})
	if !apperror.IsNotFound(err) {
		t.Fatalf("got %v, want a not-found error", err)
	}
	// The denial must read the same as an absent task, not reveal a
	// project-level cause.
	appErr, _ := apperror.FromError(err)
	if appErr.Message != "task not found" {
		t.Errorf("denial message %q leaks that the task exists", appErr.Message)
	}
	if repo.tasks[1].Title != "Theirs" {
		t.Error("foreign task was modified")
	}
}

func TestDeleteTask(t *testing.T) {
	svc, repo := newTestService(map[int]int{1: 100})
	repo.tasks[1] = Task{ID: 1, Title: "Pack boxes", ProjectID: 1}
	repo.nextID = 2

	if err := svc.Delete(context.Background(), 100, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.tasks[1]; ok {
		t.Error("task still present after delete")
	}
}

func TestDeleteForeignTask(t *testing.T) {
	svc, repo := newTestService(map[int]int{1: 100, 2: 200})
	repo.tasks[1] = Task{ID: 1, Title: "Theirs", ProjectID: 2}
	repo.nextID = 2

	err := svc.Delete(context.Background(), 100, 1)
	if !apperror.IsNotFound(err) {
		t.Fatalf("got %v, want a not-found error", err)
	}
	if _, ok := repo.tasks[1]; !ok {
		t.Error("foreign task was deleted")
	}
}

func TestListByProjectForeign(t *testing.T) {
	svc, _ := newTestService(map[int]int{1: 100, 2: 200})

	_, err := svc.ListByProject(context.Background(), 100, 2)
	if !apperror.IsNotFound(err) {
		t.Fatalf("got %v, want a not-found error", err)
	}
}
