// Package user holds the read-side boundary to the user directory.
// Registration, login and password management live in the auth service;
// this subsystem only resolves emails to user IDs.
package user

import (
	"fmt"
	"strings"
	"time"
)

// User represents a directory entry for an account.
type User struct {
	id        uint
	name      string
	email     string
	createdAt time.Time
	lastLogin *time.Time
}

// ReconstructUser reconstructs a user from persistence.
func ReconstructUser(id uint, name, email string, createdAt time.Time, lastLogin *time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	return &User{
		id:        id,
		name:      name,
		email:     email,
		createdAt: createdAt,
		lastLogin: lastLogin,
	}, nil
}

// ID returns the user ID
func (u *User) ID() uint {
	return u.id
}

// Name returns the display name
func (u *User) Name() string {
	return u.name
}

// Email returns the email address
func (u *User) Email() string {
	return u.email
}

// CreatedAt returns when the account was created
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// LastLogin returns the last login time, nil if the user never logged in
func (u *User) LastLogin() *time.Time {
	return u.lastLogin
}

// NormalizeEmail canonicalizes an email for lookup: trimmed and lowercased.
// Every trainer-access request is keyed by this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
