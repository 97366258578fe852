package entity

import (
	"time"
)

// User is the aggregate root for the account domain
// Passwords are stored as bcrypt hashes in Password field and never leave
// the persistence layer in any other form.
type User struct {
	ID          string
	Username    string
	Email       string
	Password    string
	Description string
	Roles       []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
