package auth

import "time"

// User represents a registered account. The hashed credential is never
// serialized into API responses.
type User struct {
	ID             int       `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
