package entity

import (
	"time"

	"github.com/google/uuid"
)

// SaleCommittedEventType is the routing key of SaleCommittedEvent
const SaleCommittedEventType = "pos.sale.committed"

// SaleCommittedEvent is published after the collaborator accepted a sale
type SaleCommittedEvent struct {
	EventID       uuid.UUID   `json:"event_id"`
	EventType     string      `json:"event_type"`
	OccurredAt    time.Time   `json:"occurred_at"`
	SessionID     uuid.UUID   `json:"session_id"`
	TransactionID string      `json:"transaction_id"`
	Sale          SalePayload `json:"sale"`
}

// NewSaleCommittedEvent creates an event for a committed sale
func NewSaleCommittedEvent(sessionID uuid.UUID, transactionID string, sale SalePayload) *SaleCommittedEvent {
	return &SaleCommittedEvent{
		EventID:       uuid.New(),
		EventType:     SaleCommittedEventType,
		OccurredAt:    time.Now().UTC(),
		SessionID:     sessionID,
		TransactionID: transactionID,
		Sale:          sale,
	}
}
