package dto

import (
	"time"

	"github.com/suportehub/chamados-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"titulo"`
	Description string                `json:"descricao"`
	SectorID    int64                 `json:"setor_id"`
	Priority    domain.TicketPriority `json:"prioridade"`
}

// UpdateTicketRequest payload; every field is optional.
type UpdateTicketRequest struct {
	Status   *domain.TicketStatus   `json:"status"`
	Priority *domain.TicketPriority `json:"prioridade"`
	Notes    *string                `json:"observacoes"`
	SectorID *int64                 `json:"setor_id"`
}

// TransferTicketRequest payload.
type TransferTicketRequest struct {
	SectorID int64  `json:"setor_id"`
	Notes    string `json:"observacoes"`
}

// ResolveTicketRequest payload.
type ResolveTicketRequest struct {
	Notes string `json:"observacoes"`
}

// TicketResponse mirrors the persisted ticket row plus optional eagerly
// loaded relations.
type TicketResponse struct {
	ID          int64                 `json:"id"`
	Title       string                `json:"titulo"`
	Description string                `json:"descricao"`
	Status      domain.TicketStatus   `json:"status"`
	Priority    domain.TicketPriority `json:"prioridade"`
	SectorID    int64                 `json:"setor_id"`
	RequesterID int64                 `json:"solicitante_id"`
	AttendantID *int64                `json:"atendente_id"`
	StartedAt   *time.Time            `json:"data_inicio"`
	EndedAt     *time.Time            `json:"data_fim"`
	Notes       *string               `json:"observacoes"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`

	Sector    *SectorResponse    `json:"setor,omitempty"`
	Requester *UserResponse      `json:"solicitante,omitempty"`
	Attendant *AttendantResponse `json:"atendente,omitempty"`
	History   []HistoryResponse  `json:"historico,omitempty"`
}

// HistoryResponse is one immutable audit entry.
type HistoryResponse struct {
	ID           int64                `json:"id"`
	TicketID     int64                `json:"chamado_id"`
	UserID       int64                `json:"usuario_id"`
	Action       domain.HistoryAction `json:"acao"`
	Description  string               `json:"descricao"`
	PreviousData map[string]any       `json:"dados_anteriores"`
	NewData      map[string]any       `json:"dados_novos"`
	CreatedAt    time.Time            `json:"created_at"`

	User *UserResponse `json:"usuario,omitempty"`
}

// PageResponse is the paginated listing envelope.
type PageResponse struct {
	Data []TicketResponse `json:"data"`
	Meta any              `json:"meta"`
}
