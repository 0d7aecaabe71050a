// ABOUTME: User model and the internal directory record that carries a password.
// ABOUTME: Public() strips the password before a user leaves the auth store.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account as seen outside the auth store.
type User struct {
	ID        string    `json:"id" yaml:"id"`
	Email     string    `json:"email" yaml:"email"`
	Name      string    `json:"name" yaml:"name"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
}

// UserRecord is a user directory entry. Password holds whatever the
// configured hasher produced (plain text by default).
type UserRecord struct {
	User
	Password string `json:"password"`
}

// NewUserRecord creates a directory entry with a generated id.
func NewUserRecord(email, password, name string, now time.Time) *UserRecord {
	return &UserRecord{
		User: User{
			ID:        uuid.NewString(),
			Email:     email,
			Name:      name,
			CreatedAt: Timestamp(now),
		},
		Password: password,
	}
}

// Public returns the user without the password field.
func (r *UserRecord) Public() User {
	return r.User
}
