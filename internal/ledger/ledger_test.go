package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/transactions-engine/internal/models"
)

func TestLedger_ProcessCreatesAccountsLazily(t *testing.T) {
	l := NewLedger()

	_, ok := l.account(7)
	assert.False(t, ok)

	require.NoError(t, l.Process(models.NewTransaction(models.Deposit, 7, 1, amt("2.5"))))

	acct, ok := l.account(7)
	require.True(t, ok)
	assert.Equal(t, "2.5000", acct.Snapshot().Available.StringFixed(4))
}

func TestLedger_ProcessRoutesByClient(t *testing.T) {
	l := NewLedger()

	require.NoError(t, l.Process(models.NewTransaction(models.Deposit, 1, 1, amt("1.0"))))
	require.NoError(t, l.Process(models.NewTransaction(models.Deposit, 2, 2, amt("2.0"))))

	// Transaction ids are looked up per client.
	err := l.Process(models.NewTransaction(models.Dispute, 2, 1, nil))
	assert.ErrorIs(t, err, ErrDisputedTransactionNotFound)

	rows := l.Snapshot()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "1.0000", "0.0000", "1.0000", "false"}, rows[0].Row())
	assert.Equal(t, []string{"2", "2.0000", "0.0000", "2.0000", "false"}, rows[1].Row())
}

func TestLedger_FailedFirstTransactionStillCreatesAccount(t *testing.T) {
	l := NewLedger()

	err := l.Process(models.NewTransaction(models.Dispute, 3, 99, nil))

	assert.ErrorIs(t, err, ErrDisputedTransactionNotFound)
	rows := l.Snapshot()
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"3", "0.0000", "0.0000", "0.0000", "false"}, rows[0].Row())
}

func TestLedger_SnapshotSortedByClient(t *testing.T) {
	l := NewLedger()
	for _, id := range []models.ClientID{5, 3, 9, 1} {
		require.NoError(t, l.Process(models.NewTransaction(models.Deposit, id, models.TransactionID(id), amt("1"))))
	}

	var ids []models.ClientID
	for _, row := range l.Snapshot() {
		ids = append(ids, row.ClientID)
	}
	assert.Equal(t, []models.ClientID{1, 3, 5, 9}, ids)
}

func TestLedger_SnapshotEmpty(t *testing.T) {
	assert.Empty(t, NewLedger().Snapshot())
}

func TestLedger_Scenarios(t *testing.T) {
	type step struct {
		tx      models.Transaction
		wantErr error
	}

	tests := []struct {
		name  string
		steps []step
		want  []string
	}{
		{
			name: "deposit",
			steps: []step{
				{tx: models.NewTransaction(models.Deposit, 1, 1, amt("1.0"))},
			},
			want: []string{"1", "1.0000", "0.0000", "1.0000", "false"},
		},
		{
			name: "withdrawal exceeding available",
			steps: []step{
				{tx: models.NewTransaction(models.Deposit, 1, 1, amt("1.0"))},
				{tx: models.NewTransaction(models.Withdrawal, 1, 2, amt("1.5")), wantErr: ErrInsufficientFundsForWithdrawal},
			},
			want: []string{"1", "1.0000", "0.0000", "1.0000", "false"},
		},
		{
			name: "dispute then chargeback locks",
			steps: []step{
				{tx: models.NewTransaction(models.Deposit, 1, 1, amt("5.0"))},
				{tx: models.NewTransaction(models.Dispute, 1, 1, nil)},
				{tx: models.NewTransaction(models.Chargeback, 1, 1, nil)},
				{tx: models.NewTransaction(models.Deposit, 1, 2, amt("1.0")), wantErr: ErrAccountLocked},
			},
			want: []string{"1", "0.0000", "0.0000", "0.0000", "true"},
		},
		{
			name: "dispute then resolve",
			steps: []step{
				{tx: models.NewTransaction(models.Deposit, 1, 1, amt("3.0"))},
				{tx: models.NewTransaction(models.Dispute, 1, 1, nil)},
				{tx: models.NewTransaction(models.Resolve, 1, 1, nil)},
			},
			want: []string{"1", "3.0000", "0.0000", "3.0000", "false"},
		},
		{
			name: "dispute of unknown transaction",
			steps: []step{
				{tx: models.NewTransaction(models.Dispute, 1, 99, nil), wantErr: ErrDisputedTransactionNotFound},
			},
			want: []string{"1", "0.0000", "0.0000", "0.0000", "false"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger()
			for _, s := range tt.steps {
				err := l.Process(s.tx)
				if s.wantErr == nil {
					require.NoError(t, err)
				} else {
					require.ErrorIs(t, err, s.wantErr)
				}
			}

			rows := l.Snapshot()
			require.Len(t, rows, 1)
			assert.Equal(t, tt.want, rows[0].Row())
		})
	}
}
