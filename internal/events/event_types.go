package events

import (
	"time"

	"github.com/suportehub/chamados-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated     EventType = "ticket_created"
	EventTicketUpdated     EventType = "ticket_updated"
	EventTicketTransferred EventType = "ticket_transferred"
	EventTicketResolved    EventType = "ticket_resolved"
)

// Event represents a domain event emitted by services.
type Event struct {
	Type      EventType   `json:"type"`
	TicketID  int64       `json:"ticket_id"`
	ActorID   int64       `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	SectorID int64                 `json:"sector_id"`
	Priority domain.TicketPriority `json:"priority"`
	Title    string                `json:"title"`
}

// TicketUpdatedPayload payload.
type TicketUpdatedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketTransferredPayload payload.
type TicketTransferredPayload struct {
	OldSectorID int64 `json:"old_sector_id"`
	NewSectorID int64 `json:"new_sector_id"`
}

// TicketResolvedPayload payload.
type TicketResolvedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	EndedAt   time.Time           `json:"ended_at"`
}
