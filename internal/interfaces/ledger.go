package interfaces

import (
	"context"

	"github.com/sheikh-saqib/transactions-engine/internal/models"
)

// TransactionProcessor is the serialized entry point to the account table
type TransactionProcessor interface {
	Submit(ctx context.Context, tx models.Transaction) (<-chan error, error)
	Snapshot(ctx context.Context) ([]models.AccountSnapshot, error)
}
