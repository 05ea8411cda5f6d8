package domain

import (
	"errors"
	"time"
)

var (
	// ErrUserNotFound indicates that the user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameAlreadyExists indicates that the username is taken.
	ErrUsernameAlreadyExists = errors.New("username already exists")
	// ErrUserNotActive indicates that the user may not act (pending approval or frozen).
	ErrUserNotActive = errors.New("user not active")
)

// UserStatus is the lifecycle state of a user. Only ACTIVE users may open
// accounts or move money; the transitions themselves are managed outside
// the ledger core.
type UserStatus string

// User lifecycle states.
const (
	StatusPending UserStatus = "PENDING"
	StatusActive  UserStatus = "ACTIVE"
	StatusFrozen  UserStatus = "FROZEN"
)

// User identifies an account owner. Credentials live elsewhere.
type User struct {
	ID        int32      `json:"id"`
	Username  string     `json:"username"`
	FullName  string     `json:"full_name"`
	Status    UserStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// CreateUserParams is the input data for creating a user row.
type CreateUserParams struct {
	Username string
	FullName string
	Status   UserStatus
}
