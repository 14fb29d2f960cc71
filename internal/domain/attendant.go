package domain

import "time"

// Attendant is a person who handles tickets. UserID links the attendant to
// a login account; attendants without one cannot be resolved from a token
// and are never sector-scoped on listing.
type Attendant struct {
	ID        int64
	Name      string
	Email     string
	Phone     *string
	UserID    *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
