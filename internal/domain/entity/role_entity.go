package entity

import "time"

// Role names are embedded as token claims at issuance time.
// Many-to-many with User via user_roles; no permission checks are
// derived from them anywhere in this service.
type Role struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
