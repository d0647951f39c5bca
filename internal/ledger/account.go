package ledger

import (
	"github.com/sheikh-saqib/transactions-engine/internal/models"
	"github.com/shopspring/decimal"
)

// ClientAccount holds the balances and deposit/withdrawal history of one client.
// Invariant: total == available + held after every applied transaction.
type ClientAccount struct {
	clientID     models.ClientID
	available    decimal.Decimal
	held         decimal.Decimal
	total        decimal.Decimal
	transactions map[models.TransactionID]*models.Transaction
	locked       bool
}

// NewClientAccount creates an unlocked account with zero balances
func NewClientAccount(id models.ClientID) *ClientAccount {
	return &ClientAccount{
		clientID:     id,
		available:    decimal.Zero,
		held:         decimal.Zero,
		total:        decimal.Zero,
		transactions: make(map[models.TransactionID]*models.Transaction),
	}
}

func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(models.AmountPrecision)
}

// Apply validates tx against the account and applies it.
// On error the account is left untouched.
func (a *ClientAccount) Apply(tx models.Transaction) error {
	if a.locked {
		return ErrAccountLocked
	}

	switch tx.Kind {
	case models.Deposit:
		return a.deposit(tx)
	case models.Withdrawal:
		return a.withdraw(tx)
	case models.Dispute:
		return a.dispute(tx.TxID)
	case models.Resolve:
		return a.resolve(tx.TxID)
	case models.Chargeback:
		return a.chargeback(tx.TxID)
	}
	panic("ledger: unknown transaction kind " + tx.Kind.String())
}

func (a *ClientAccount) deposit(tx models.Transaction) error {
	if tx.Amount == nil {
		return ErrMissingDepositAmount
	}
	amount := round(*tx.Amount)

	a.available = round(a.available.Add(amount))
	a.total = round(a.total.Add(amount))
	a.store(tx, amount)
	return nil
}

func (a *ClientAccount) withdraw(tx models.Transaction) error {
	if tx.Amount == nil {
		return ErrMissingWithdrawalAmount
	}
	amount := round(*tx.Amount)

	if a.available.LessThan(amount) {
		return ErrInsufficientFundsForWithdrawal
	}

	a.available = round(a.available.Sub(amount))
	a.total = round(a.total.Sub(amount))
	a.store(tx, amount)
	return nil
}

// store records a committed deposit or withdrawal with its rounded amount.
// A repeated id overwrites the earlier record.
func (a *ClientAccount) store(tx models.Transaction, amount decimal.Decimal) {
	tx.Amount = &amount
	tx.Status = models.Committed
	a.transactions[tx.TxID] = &tx
}

// dispute holds the referenced amount. Available may go negative when the
// funds were already withdrawn.
func (a *ClientAccount) dispute(id models.TransactionID) error {
	stored, ok := a.transactions[id]
	if !ok {
		return ErrDisputedTransactionNotFound
	}

	stored.Status = models.Disputed
	amount := *stored.Amount
	a.available = round(a.available.Sub(amount))
	a.held = round(a.held.Add(amount))
	return nil
}

func (a *ClientAccount) resolve(id models.TransactionID) error {
	stored, ok := a.transactions[id]
	if !ok {
		return ErrResolvedTransactionNotFound
	}
	if stored.Status != models.Disputed {
		return ErrResolvedTransactionNotDisputed
	}

	stored.Status = models.Committed
	amount := *stored.Amount
	a.available = round(a.available.Add(amount))
	a.held = round(a.held.Sub(amount))
	return nil
}

func (a *ClientAccount) chargeback(id models.TransactionID) error {
	stored, ok := a.transactions[id]
	if !ok {
		return ErrChargebackTransactionNotFound
	}
	if stored.Status != models.Disputed {
		return ErrChargebackWasNotDisputed
	}

	stored.Status = models.ChargedBack
	amount := *stored.Amount
	a.held = round(a.held.Sub(amount))
	a.total = round(a.total.Sub(amount))
	a.locked = true
	return nil
}

// Locked reports whether a chargeback has frozen the account
func (a *ClientAccount) Locked() bool {
	return a.locked
}

// transactionStatus returns the status of a stored deposit or withdrawal
func (a *ClientAccount) transactionStatus(id models.TransactionID) (models.TransactionStatus, bool) {
	stored, ok := a.transactions[id]
	if !ok {
		return models.NotYetCommitted, false
	}
	return stored.Status, true
}

// Snapshot returns the account balances rounded to ledger precision
func (a *ClientAccount) Snapshot() models.AccountSnapshot {
	return models.AccountSnapshot{
		ClientID:  a.clientID,
		Available: round(a.available),
		Held:      round(a.held),
		Total:     round(a.total),
		Locked:    a.locked,
	}
}
