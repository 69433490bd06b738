package model

import (
	"fmt"
	"time"
)

// Role names as stored in the roles table.
const (
	RoleNameUser       = "User"
	RoleNameAdmin      = "Admin"
	RoleNameSuperAdmin = "Super Admin"
)

// User account statuses. A blocked user cannot log in.
const (
	StatusPending = "pending"
	StatusActive  = "active"
	StatusBlocked = "blocked"
)

// Role carries the numeric privilege score; higher is more privileged.
type Role struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// User represents an account in the system
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	Role         Role      `json:"role"`
	Avatar       string    `json:"avatar,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidStatusTransition reports whether an account may move from one status
// to another. Pending accounts are resolved by an admin; active and blocked
// toggle freely. No status ever goes back to pending.
func ValidStatusTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusActive || to == StatusBlocked
	case StatusActive:
		return to == StatusBlocked
	case StatusBlocked:
		return to == StatusActive
	default:
		return false
	}
}

// ValidateStatus returns an error for anything outside the known status set.
func ValidateStatus(status string) error {
	switch status {
	case StatusPending, StatusActive, StatusBlocked:
		return nil
	}
	return fmt.Errorf("unknown status %q", status)
}
