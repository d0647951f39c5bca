package ledger

import (
	"errors"
	"fmt"
)

// TransactionError is the reason an account rejected a transaction.
// The set of values is closed; compare with errors.Is or a switch.
type TransactionError uint8

const (
	ErrAccountLocked TransactionError = iota + 1
	ErrMissingDepositAmount
	ErrMissingWithdrawalAmount
	ErrInsufficientFundsForWithdrawal
	ErrDisputedTransactionNotFound
	ErrResolvedTransactionNotFound
	ErrResolvedTransactionNotDisputed
	ErrChargebackTransactionNotFound
	ErrChargebackWasNotDisputed
)

func (e TransactionError) Error() string {
	switch e {
	case ErrAccountLocked:
		return "account locked"
	case ErrMissingDepositAmount:
		return "missing deposit amount"
	case ErrMissingWithdrawalAmount:
		return "missing withdrawal amount"
	case ErrInsufficientFundsForWithdrawal:
		return "insufficient funds for withdrawal"
	case ErrDisputedTransactionNotFound:
		return "disputed transaction not found"
	case ErrResolvedTransactionNotFound:
		return "resolved transaction not found"
	case ErrResolvedTransactionNotDisputed:
		return "resolved transaction not disputed"
	case ErrChargebackTransactionNotFound:
		return "chargeback transaction not found"
	case ErrChargebackWasNotDisputed:
		return "chargeback was not disputed"
	default:
		return fmt.Sprintf("transaction error %d", uint8(e))
	}
}

// ErrActorClosed is returned when work is submitted to a stopped actor
var ErrActorClosed = errors.New("ledger actor closed")

// AsTransactionError extracts the core rejection reason from err, if any
func AsTransactionError(err error) (TransactionError, bool) {
	var txErr TransactionError
	if errors.As(err, &txErr) {
		return txErr, true
	}
	return 0, false
}
