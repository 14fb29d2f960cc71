package dto

import "time"

// AttendantRequest payload. SectorID triggers the assignment side effect.
type AttendantRequest struct {
	Name      string  `json:"nome"`
	Email     string  `json:"email"`
	Phone     *string `json:"telefone"`
	UserID    *int64  `json:"user_id"`
	SectorID  *int64  `json:"setor_id"`
	IsManager *bool   `json:"is_gestor"`
}

// AttendantResponse resource.
type AttendantResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nome"`
	Email     string    `json:"email"`
	Phone     *string   `json:"telefone"`
	UserID    *int64    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AssignmentRequest payload for the direct assignment CRUD.
type AssignmentRequest struct {
	SectorID    *int64 `json:"setor_id"`
	AttendantID *int64 `json:"atendente_id"`
	IsManager   *bool  `json:"is_gestor"`
}

// AssignmentResponse resource with both ends optionally embedded.
type AssignmentResponse struct {
	ID          int64     `json:"id"`
	SectorID    int64     `json:"setor_id"`
	AttendantID int64     `json:"atendente_id"`
	IsManager   bool      `json:"is_gestor"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Sector    *SectorResponse    `json:"setor,omitempty"`
	Attendant *AttendantResponse `json:"atendente,omitempty"`
}
