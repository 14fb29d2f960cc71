package domain

import "time"

// User is a login account. LevelAccess ranges 0-3; it is stored and
// validated on registration but no route is gated by it.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	LevelAccess  int
	Phone        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
