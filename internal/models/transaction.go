package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ClientID identifies a client account
type ClientID uint32

// TransactionID identifies a deposit or withdrawal. Disputes, resolves and
// chargebacks reuse the id of the transaction they reference.
type TransactionID uint32

// AmountPrecision is the number of fractional digits every amount is rounded to
const AmountPrecision int32 = 4

// TransactionKind is the type of a ledger event
type TransactionKind uint8

const (
	Deposit TransactionKind = iota
	Withdrawal
	Dispute
	Resolve
	Chargeback
)

func (k TransactionKind) String() string {
	switch k {
	case Deposit:
		return "deposit"
	case Withdrawal:
		return "withdrawal"
	case Dispute:
		return "dispute"
	case Resolve:
		return "resolve"
	case Chargeback:
		return "chargeback"
	default:
		return fmt.Sprintf("TransactionKind(%d)", uint8(k))
	}
}

// ParseTransactionKind maps an input token to a TransactionKind.
// Matching ignores case, surrounding whitespace and quote characters.
func ParseTransactionKind(token string) (TransactionKind, bool) {
	switch strings.ToLower(CleanField(token)) {
	case "deposit":
		return Deposit, true
	case "withdrawal":
		return Withdrawal, true
	case "dispute":
		return Dispute, true
	case "resolve":
		return Resolve, true
	case "chargeback":
		return Chargeback, true
	}
	return 0, false
}

// CleanField strips quote characters and surrounding whitespace from a raw field
func CleanField(field string) string {
	field = strings.ReplaceAll(field, `"`, "")
	field = strings.ReplaceAll(field, `'`, "")
	return strings.TrimSpace(field)
}

// TransactionStatus tracks a stored deposit or withdrawal through the dispute flow
type TransactionStatus uint8

const (
	NotYetCommitted TransactionStatus = iota
	Committed
	Disputed
	ChargedBack
)

func (s TransactionStatus) String() string {
	switch s {
	case NotYetCommitted:
		return "not_yet_committed"
	case Committed:
		return "committed"
	case Disputed:
		return "disputed"
	case ChargedBack:
		return "chargeback"
	default:
		return fmt.Sprintf("TransactionStatus(%d)", uint8(s))
	}
}

// Transaction is a single input event for a client.
// Amount is nil for dispute, resolve and chargeback.
type Transaction struct {
	Kind     TransactionKind
	ClientID ClientID
	TxID     TransactionID
	Amount   *decimal.Decimal
	Status   TransactionStatus
}

// NewTransaction builds a transaction in the NotYetCommitted state
func NewTransaction(kind TransactionKind, client ClientID, tx TransactionID, amount *decimal.Decimal) Transaction {
	return Transaction{
		Kind:     kind,
		ClientID: client,
		TxID:     tx,
		Amount:   amount,
		Status:   NotYetCommitted,
	}
}
