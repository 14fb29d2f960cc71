package domain

import "time"

// HistoryAction captures which operation produced a history entry.
type HistoryAction string

const (
	ActionCreation   HistoryAction = "criacao"
	ActionUpdate     HistoryAction = "atualizacao"
	ActionTransfer   HistoryAction = "transferencia"
	ActionResolution HistoryAction = "resolucao"
	ActionClosing    HistoryAction = "fechamento"
)

// TicketHistory is an immutable audit trail entry. Rows are only ever
// inserted, in the same transaction as the ticket write they describe.
type TicketHistory struct {
	ID           int64
	TicketID     int64
	UserID       int64
	Action       HistoryAction
	Description  string
	PreviousData map[string]any
	NewData      map[string]any
	CreatedAt    time.Time
}
