// Package domain defines the core entities of the recipe service.
package domain

import "strings"

// User represents an authenticated user account in the system.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"` // Stored hashed, never serialized
	IsActive     bool   `json:"is_active"`
	IsStaff      bool   `json:"is_staff"`
	IsSuperuser  bool   `json:"is_superuser"`
	Timestamps
}

// NormalizeEmail lowercases the domain part of an email address, leaving
// the local part untouched. "Foo@EXAMPLE.com" becomes "Foo@example.com".
// The local part is case-sensitive per RFC 5321, so we only normalize what
// we can safely normalize.
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}
