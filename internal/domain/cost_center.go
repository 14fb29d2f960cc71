package domain

import "time"

// CostCenter groups sectors for accounting purposes.
type CostCenter struct {
	ID          int64
	Name        string
	Description string
	Code        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
