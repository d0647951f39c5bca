package ledger

import (
	"sort"

	"github.com/sheikh-saqib/transactions-engine/internal/models"
)

// Ledger routes transactions to per-client accounts.
// It owns the client table and is not safe for concurrent use; wrap it in an
// Actor to share it between goroutines.
type Ledger struct {
	accounts map[models.ClientID]*ClientAccount
}

// NewLedger creates an empty Ledger
func NewLedger() *Ledger {
	return &Ledger{
		accounts: make(map[models.ClientID]*ClientAccount),
	}
}

// Process applies tx to its client's account, creating the account on first
// reference. The account's error is returned unchanged.
func (l *Ledger) Process(tx models.Transaction) error {
	return l.getOrCreateAccount(tx.ClientID).Apply(tx)
}

func (l *Ledger) getOrCreateAccount(id models.ClientID) *ClientAccount {
	account, exists := l.accounts[id]
	if !exists {
		account = NewClientAccount(id)
		l.accounts[id] = account
	}
	return account
}

// account returns the account for id if it has been referenced
func (l *Ledger) account(id models.ClientID) (*ClientAccount, bool) {
	account, ok := l.accounts[id]
	return account, ok
}

// Snapshot returns one row per known client ordered by client id
func (l *Ledger) Snapshot() []models.AccountSnapshot {
	snapshots := make([]models.AccountSnapshot, 0, len(l.accounts))
	for _, account := range l.accounts {
		snapshots = append(snapshots, account.Snapshot())
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].ClientID < snapshots[j].ClientID
	})
	return snapshots
}
