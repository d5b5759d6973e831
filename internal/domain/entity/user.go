// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system. A user owns zero or more invoices
// and is the only principal allowed to see or mutate them.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Username     string    // Unique, case-sensitive login identifier.
	PasswordHash string    // Salted bcrypt hash of the user's password. Never the plaintext.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
