package domain

import "time"

// SectorAttendant links an attendant to a sector. IsManager marks the
// attendant as the sector's supervisor.
type SectorAttendant struct {
	ID          int64
	SectorID    int64
	AttendantID int64
	IsManager   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
