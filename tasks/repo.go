package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/projectman-go/apperror"
	"github.com/user/projectman-go/db"
)

// Repository is the persistence boundary for tasks. The service depends on
// this interface so the store engine stays swappable and tests can use an
// in-memory implementation.
type Repository interface {
	// ListByProject returns the project's tasks in id order.
	ListByProject(ctx context.Context, projectID int) ([]Task, error)
	// Get returns a task by id, or a NotFoundError when absent.
	Get(ctx context.Context, id int) (*Task, error)
	Create(ctx context.Context, t *Task) (*Task, error)
	// Update applies a partial update; nil fields are left unchanged.
	Update(ctx context.Context, id int, title *string, dueDate *time.Time, isCompleted *bool) (*Task, error)
	Delete(ctx context.Context, id int) error
}

// pgxRepository is the PostgreSQL implementation of Repository. Every call
// runs under a bounded timeout; deadline and connection failures surface as
// retryable Unavailable errors.
type pgxRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewRepository creates the PostgreSQL-backed task repository.
func NewRepository(pool *pgxpool.Pool, timeout time.Duration) Repository {
	return &pgxRepository{pool: pool, timeout: timeout}
}

func (r *pgxRepository) ListByProject(ctx context.Context, projectID int) ([]Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT id, title, due_date, is_completed, project_id
		FROM tasks
		WHERE project_id = $1
		ORDER BY id`, projectID)
	if err != nil {
		return nil, db.StoreError("failed to list tasks", err)
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Title, &t.DueDate, &t.IsCompleted, &t.ProjectID); err != nil {
			return nil, db.StoreError("failed to scan task", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, db.StoreError("failed to iterate tasks", err)
	}
	return out, nil
}

func (r *pgxRepository) Get(ctx context.Context, id int) (*Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var t Task
	err := r.pool.QueryRow(ctx, `
		SELECT id, title, due_date, is_completed, project_id
		FROM tasks WHERE id = $1`, id).
		Scan(&t.ID, &t.Title, &t.DueDate, &t.IsCompleted, &t.ProjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("task not found", nil)
		}
		return nil, db.StoreError("failed to get task", err)
	}
	return &t, nil
}

func (r *pgxRepository) Create(ctx context.Context, t *Task) (*Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	err := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (title, due_date, is_completed, project_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		t.Title, t.DueDate, t.IsCompleted, t.ProjectID).Scan(&t.ID)
	if err != nil {
		return nil, db.StoreError("failed to create task", err)
	}
	return t, nil
}

func (r *pgxRepository) Update(ctx context.Context, id int, title *string, dueDate *time.Time, isCompleted *bool) (*Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var setClauses []string
	var args []interface{}
	argID := 1

	if title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", argID))
		args = append(args, *title)
		argID++
	}
	if dueDate != nil {
		setClauses = append(setClauses, fmt.Sprintf("due_date = $%d", argID))
		args = append(args, *dueDate)
		argID++
	}
	if isCompleted != nil {
		setClauses = append(setClauses, fmt.Sprintf("is_completed = $%d", argID))
		args = append(args, *isCompleted)
		argID++
	}

	if len(setClauses) == 0 {
		return r.Get(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE tasks SET %s
		WHERE id = $%d
		RETURNING id, title, due_date, is_completed, project_id`,
		strings.Join(setClauses, ", "), argID)

	var t Task
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&t.ID, &t.Title, &t.DueDate, &t.IsCompleted, &t.ProjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("task not found", nil)
		}
		return nil, db.StoreError("failed to update task", err)
	}
	return &t, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return db.StoreError("failed to delete task", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("task not found", nil)
	}
	return nil
}
