package domain

import "time"

// DefaultUserColor is assigned to new accounts until the profile is updated.
const DefaultUserColor = "bg-blue-500"

// User is the domain model for registered accounts. Accounts are never hard
// deleted; deactivation flips Active off.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Avatar       *string
	Color        string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
