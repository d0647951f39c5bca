package interfaces

import (
	"context"

	"github.com/sheikh-saqib/transactions-engine/internal/models"
)

// SnapshotStore keeps the final account table of each run
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, runID string, rows []models.AccountSnapshot) error
	GetSnapshot(ctx context.Context, runID string) ([]models.AccountSnapshot, error)
}
