package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sheikh-saqib/transactions-engine/internal/models"
	"github.com/shopspring/decimal"
)

// maxAmountLength bounds the raw amount field
const maxAmountLength = 32

var expectedHeaders = []string{"type", "client", "tx", "amount"}

const (
	typeColumn = iota
	clientColumn
	txColumn
	amountColumn
)

// Reader turns CSV records into transactions in input order
type Reader struct {
	csv        *csv.Reader
	headerRead bool
}

func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	cr.ReuseRecord = true
	return &Reader{csv: cr}
}

func (r *Reader) readHeaders() error {
	record, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: empty input", ErrInvalidHeaders)
	}
	if err != nil {
		return fmt.Errorf("read headers: %w", err)
	}
	if len(record) < len(expectedHeaders)-1 || len(record) > len(expectedHeaders) {
		return ErrInvalidHeaders
	}
	for i, field := range record {
		if !strings.EqualFold(models.CleanField(field), expectedHeaders[i]) {
			return ErrInvalidHeaders
		}
	}
	return nil
}

// Next returns the next transaction. It returns io.EOF at the end of input,
// a *ValidationError for a malformed record that can be skipped, and any
// other error when the input itself is unreadable.
func (r *Reader) Next() (models.Transaction, error) {
	if !r.headerRead {
		if err := r.readHeaders(); err != nil {
			return models.Transaction{}, err
		}
		r.headerRead = true
	}

	record, err := r.csv.Read()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return models.Transaction{}, &ValidationError{Line: parseErr.Line, Kind: MalformedRecord, Value: parseErr.Err.Error()}
		}
		return models.Transaction{}, err
	}

	line, _ := r.csv.FieldPos(0)
	return parseRecord(record, line)
}

func field(record []string, i int) (string, bool) {
	if i >= len(record) {
		return "", false
	}
	value := models.CleanField(record[i])
	return value, value != ""
}

func parseRecord(record []string, line int) (models.Transaction, error) {
	token, ok := field(record, typeColumn)
	if !ok {
		return models.Transaction{}, &ValidationError{Line: line, Kind: MissingTransactionType}
	}
	kind, ok := models.ParseTransactionKind(token)
	if !ok {
		return models.Transaction{}, &ValidationError{Line: line, Kind: InvalidTransactionType, Value: token}
	}

	client, err := parseID(record, clientColumn, line, MissingClientID)
	if err != nil {
		return models.Transaction{}, err
	}
	tx, err := parseID(record, txColumn, line, MissingTransactionID)
	if err != nil {
		return models.Transaction{}, err
	}

	amount, err := parseAmount(record, kind, line)
	if err != nil {
		return models.Transaction{}, err
	}

	return models.NewTransaction(kind, models.ClientID(client), models.TransactionID(tx), amount), nil
}

func parseID(record []string, column, line int, missing ValidationKind) (uint32, error) {
	raw, ok := field(record, column)
	if !ok {
		return 0, &ValidationError{Line: line, Kind: missing}
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, &ValidationError{Line: line, Kind: InvalidIDFormat, Value: raw}
	}
	return uint32(id), nil
}

// parseAmount requires an amount on deposits and withdrawals. Other kinds
// ignore the column.
func parseAmount(record []string, kind models.TransactionKind, line int) (*decimal.Decimal, error) {
	raw, ok := field(record, amountColumn)
	if kind != models.Deposit && kind != models.Withdrawal {
		return nil, nil
	}
	if !ok {
		if kind == models.Deposit {
			return nil, &ValidationError{Line: line, Kind: MissingAmountForDeposit}
		}
		return nil, &ValidationError{Line: line, Kind: MissingAmountForWithdrawal}
	}

	// Exponent notation and oversized fields would expand to arbitrarily
	// many digits once combined with a balance.
	if len(raw) > maxAmountLength || strings.ContainsAny(raw, "eE") {
		return nil, &ValidationError{Line: line, Kind: InvalidAmountFormat, Value: raw}
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, &ValidationError{Line: line, Kind: InvalidAmountFormat, Value: raw}
	}
	if amount.IsNegative() {
		return nil, &ValidationError{Line: line, Kind: NegativeAmount, Value: raw}
	}

	amount = amount.Round(models.AmountPrecision)
	return &amount, nil
}
