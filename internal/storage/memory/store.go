package memory

import (
	"context"
	"sync"

	interfaces "github.com/sheikh-saqib/transactions-engine/internal/interfaces"
	"github.com/sheikh-saqib/transactions-engine/internal/models"
)

// MemorySnapshotStore is an in-memory implementation of interfaces.SnapshotStore.
// It keeps every run's snapshot for the life of the process.
type MemorySnapshotStore struct {
	mu        sync.Mutex
	snapshots map[string][]models.AccountSnapshot
}

// NewMemorySnapshotStore creates and returns a new MemorySnapshotStore instance
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{
		snapshots: make(map[string][]models.AccountSnapshot),
	}
}

// SaveSnapshot stores a copy of rows under runID, replacing any earlier snapshot
func (m *MemorySnapshotStore) SaveSnapshot(ctx context.Context, runID string, rows []models.AccountSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]models.AccountSnapshot, len(rows))
	copy(copied, rows)
	m.snapshots[runID] = copied
	return nil
}

// GetSnapshot returns a copy so callers can't modify stored state
func (m *MemorySnapshotStore) GetSnapshot(ctx context.Context, runID string) ([]models.AccountSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.snapshots[runID]
	copied := make([]models.AccountSnapshot, len(rows))
	copy(copied, rows)
	return copied, nil
}

// Compile-time check: ensure MemorySnapshotStore implements SnapshotStore interface
var _ interfaces.SnapshotStore = (*MemorySnapshotStore)(nil)
