// Package users serves the authenticated user's own profile.
package users

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/projectman-go/apperror"
	"github.com/user/projectman-go/db"
)

// UserProfileResponse is the profile payload for the /users/me endpoint.
type UserProfileResponse struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// UserService reads user profiles from the store.
type UserService struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewUserService creates a new UserService.
func NewUserService(pool *pgxpool.Pool, timeout time.Duration) *UserService {
	return &UserService{pool: pool, timeout: timeout}
}

// GetUserProfile returns the profile of the given user.
func (s *UserService) GetUserProfile(ctx context.Context, userID int) (*UserProfileResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var profile UserProfileResponse
	err := s.pool.QueryRow(ctx, `
		SELECT id, username, created_at
		FROM users WHERE id = $1`, userID).
		Scan(&profile.ID, &profile.Username, &profile.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("user not found", nil)
		}
		return nil, db.StoreError("failed to get user profile", err)
	}
	return &profile, nil
}
