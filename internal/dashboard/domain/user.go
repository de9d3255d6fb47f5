package domain

import "time"

// User is an account record. Name is unique across all accounts; the
// password hash is an argon2id PHC string and never leaves the service.
type User struct {
	ID           string
	Name         string
	PasswordHash string
	Role         Role
	Status       string // optional free-form label, e.g. "active"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the projection safe to return to callers. It never carries
// the password hash.
type PublicUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Status string `json:"status,omitempty"`
}

// Public returns the caller-safe projection of u.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:     u.ID,
		Name:   u.Name,
		Role:   u.Role.String(),
		Status: u.Status,
	}
}
