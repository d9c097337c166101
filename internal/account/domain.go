package account

import (
	"errors"
	"time"
)

// User represents a registered account. PasswordHash never leaves the
// service layer; response payloads are built from the other fields only.
type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	Points       int64
	CreatedAt    time.Time
}

var (
	// ErrDuplicate indicates the email or username is already taken.
	ErrDuplicate = errors.New("account already exists")
	// ErrNotFound indicates no account matches the given id.
	ErrNotFound = errors.New("account not found")
	// ErrInvalidCredentials indicates login failure. It covers both an
	// unknown username and a wrong password so responses cannot be used
	// to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
