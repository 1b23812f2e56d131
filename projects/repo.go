package projects

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

// Repository is the persistence boundary for projects. Its pgx implementation
// also serves as the ownership resolver for the whole API, since task
// ownership is derived from the owning project.
type Repository interface {
	// ListByOwner returns all projects of a user in id order.
	ListByOwner(ctx context.Context, userID int) ([]Project, error)
	// Get returns a project by id, or a NotFoundError when absent.
	Get(ctx context.Context, id int) (*Project, error)
	Create(ctx context.Context, p *Project) (*Project, error)
	// Update applies a partial update; nil fields are left unchanged.
	Update(ctx context.Context, id int, title *string, description *string) (*Project, error)
	// Delete removes the project; the store cascades to its tasks.
	Delete(ctx context.Context, id int) error
	// ProjectOwner returns the owning user's id, or a NotFoundError when
	// the project does not exist.
	ProjectOwner(ctx context.Context, projectID int) (int, error)
}

type pgxRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewRepository creates the PostgreSQL-backed project repository.
func NewRepository(pool *pgxpool.Pool, timeout time.Duration) Repository {
	return &pgxRepository{pool: pool, timeout: timeout}
}

func (r *pgxRepository) ListByOwner(ctx context.Context, userID int) ([]Project, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, user_id, created_at
		FROM projects
		WHERE user_id = $1
		ORDER BY id`, userID)
	if err != nil {
		return nil, db.StoreError("failed to list projects", err)
	}
	defer rows.Close()

	out := make([]Project, 0)
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.UserID, &p.CreatedAt); err != nil {
			return nil, db.StoreError("failed to scan project", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, db.StoreError("failed to iterate projects", err)
	}
	return out, nil
}

func (r *pgxRepository) Get(ctx context.Context, id int) (*Project, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var p Project
	err := r.pool.QueryRow(ctx, `
		SELECT id, title, description, user_id, created_at
		FROM projects WHERE id = $1`, id).
		Scan(&p.ID, &p.Title, &p.Description, &p.UserID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("project not found", nil)
		}
		return nil, db.StoreError("failed to get project", err)
	}
	return &p, nil
}

func (r *pgxRepository) Create(ctx context.Context, p *Project) (*Project, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	err := r.pool.QueryRow(ctx, `
		INSERT INTO projects (title, description, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		p.Title, p.Description, p.UserID).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, db.StoreError("failed to create project", err)
	}
	return p, nil
}

func (r *pgxRepository) Update(ctx context.Context, id int, title *string, description *string) (*Project, error) {
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
	if description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", argID))
		args = append(args, *description)
		argID++
	}

	if len(setClauses) == 0 {
		return r.Get(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE projects SET %s
		WHERE id = $%d
		RETURNING id, title, description, user_id, created_at`,
		strings.Join(setClauses, ", "), argID)

	var p Project
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&p.ID, &p.Title, &p.Description, &p.UserID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("project not found", nil)
		}
		return nil, db.StoreError("failed to update project", err)
	}
	return &p, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return db.StoreError("failed to delete project", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("project not found", nil)
	}
	return nil
}

func (r *pgxRepository) ProjectOwner(ctx context.Context, projectID int) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var ownerID int
	err := r.pool.QueryRow(ctx, `
		SELECT user_id FROM projects WHERE id = $1`, projectID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperror.NewNotFoundError("project not found", nil)
		}
		return 0, db.StoreError("failed to resolve project owner", err)
	}
	return ownerID, nil
}
