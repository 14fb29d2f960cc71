package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen        TicketStatus = "aberto"
	TicketStatusInProgress  TicketStatus = "em_andamento"
	TicketStatusTransferred TicketStatus = "transferido"
	TicketStatusResolved    TicketStatus = "resolvido"
	TicketStatusClosed      TicketStatus = "fechado"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "baixa"
	TicketPriorityMedium TicketPriority = "media"
	TicketPriorityHigh   TicketPriority = "alta"
	TicketPriorityUrgent TicketPriority = "urgente"
)

// ValidStatus reports whether s is one of the five ticket states.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusTransferred, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the four priorities.
func ValidPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// Ticket is the aggregate for helpdesk requests (chamados).
type Ticket struct {
	ID          int64
	Title       string
	Description string
	Status      TicketStatus
	Priority    TicketPriority
	SectorID    int64
	RequesterID int64
	AttendantID *int64
	StartedAt   *time.Time
	EndedAt     *time.Time
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Snapshot renders the ticket row as the structured state stored in history
// entries. Keys match the wire field names.
func (t *Ticket) Snapshot() map[string]any {
	snap := map[string]any{
		"id":             t.ID,
		"titulo":         t.Title,
		"descricao":      t.Description,
		"status":         string(t.Status),
		"prioridade":     string(t.Priority),
		"setor_id":       t.SectorID,
		"solicitante_id": t.RequesterID,
		"atendente_id":   nil,
		"data_inicio":    nil,
		"data_fim":       nil,
		"observacoes":    nil,
		"created_at":     t.CreatedAt.Format(time.RFC3339),
		"updated_at":     t.UpdatedAt.Format(time.RFC3339),
	}
	if t.AttendantID != nil {
		snap["atendente_id"] = *t.AttendantID
	}
	if t.StartedAt != nil {
		snap["data_inicio"] = t.StartedAt.Format(time.RFC3339)
	}
	if t.EndedAt != nil {
		snap["data_fim"] = t.EndedAt.Format(time.RFC3339)
	}
	if t.Notes != nil {
		snap["observacoes"] = *t.Notes
	}
	return snap
}
