package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeTransactionRejected = "transaction_rejected"
	TypeAccountLocked       = "account_locked"
)

type TransactionRejected struct {
	Type          string           `json:"type"`
	EventID       string           `json:"event_id"`
	RunID         string           `json:"run_id"`
	ClientID      uint32           `json:"client_id"`
	TransactionID uint32           `json:"transaction_id"`
	Kind          string           `json:"kind"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Reason        string           `json:"reason"`
	OccurredAt    time.Time        `json:"occurred_at"`
}

type AccountLocked struct {
	Type          string    `json:"type"`
	EventID       string    `json:"event_id"`
	RunID         string    `json:"run_id"`
	ClientID      uint32    `json:"client_id"`
	TransactionID uint32    `json:"transaction_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}
