package domain

import "time"

// Sector is the organizational unit tickets are filed against.
type Sector struct {
	ID           int64
	CostCenterID int64
	Name         string
	Description  *string
	Code         *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
