package dto

import "time"

// CostCenterRequest payload.
type CostCenterRequest struct {
	Name        string `json:"nome"`
	Description string `json:"descricao"`
	Code        string `json:"codigo"`
}

// CostCenterResponse resource.
type CostCenterResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"nome"`
	Description string    `json:"descricao"`
	Code        string    `json:"codigo"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SectorRequest payload.
type SectorRequest struct {
	Name         string  `json:"nome"`
	Description  *string `json:"descricao"`
	Code         *string `json:"codigo"`
	CostCenterID int64   `json:"centro_de_custo_id"`
}

// SectorResponse resource with its cost center optionally embedded.
type SectorResponse struct {
	ID           int64     `json:"id"`
	CostCenterID int64     `json:"centro_de_custo_id"`
	Name         string    `json:"nome"`
	Description  *string   `json:"descricao"`
	Code         *string   `json:"codigo"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	CostCenter *CostCenterResponse `json:"centro_de_custo,omitempty"`
}
