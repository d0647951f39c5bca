package csvio

import (
	"errors"
	"fmt"
)

// ErrInvalidHeaders is returned when the input does not start with the expected header row
var ErrInvalidHeaders = errors.New("invalid headers: expected type, client, tx, amount")

// ValidationKind is the reason a record could not be turned into a transaction
type ValidationKind uint8

const (
	MissingTransactionType ValidationKind = iota + 1
	InvalidTransactionType
	MissingClientID
	MissingTransactionID
	InvalidIDFormat
	MissingAmountForDeposit
	MissingAmountForWithdrawal
	InvalidAmountFormat
	NegativeAmount
	MalformedRecord
)

func (k ValidationKind) String() string {
	switch k {
	case MissingTransactionType:
		return "missing transaction type"
	case InvalidTransactionType:
		return "invalid transaction type"
	case MissingClientID:
		return "missing client id"
	case MissingTransactionID:
		return "missing transaction id"
	case InvalidIDFormat:
		return "invalid id format"
	case MissingAmountForDeposit:
		return "missing amount for deposit"
	case MissingAmountForWithdrawal:
		return "missing amount for withdrawal"
	case InvalidAmountFormat:
		return "invalid amount format"
	case NegativeAmount:
		return "negative amount"
	case MalformedRecord:
		return "malformed record"
	default:
		return fmt.Sprintf("ValidationKind(%d)", uint8(k))
	}
}

// ValidationError reports a malformed record. The record is skipped and
// reading can continue.
type ValidationError struct {
	Line  int
	Kind  ValidationKind
	Value string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Kind)
	}
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Kind, e.Value)
}
