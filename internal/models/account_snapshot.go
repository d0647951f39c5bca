package models

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// SnapshotHeader is the column order of an exported account row
var SnapshotHeader = []string{"client", "available", "held", "total", "locked"}

// AccountSnapshot is the reported state of one client account
type AccountSnapshot struct {
	ClientID  ClientID        `json:"client"`
	Available decimal.Decimal `json:"available"`
	Held      decimal.Decimal `json:"held"`
	Total     decimal.Decimal `json:"total"`
	Locked    bool            `json:"locked"`
}

// Row formats the snapshot as export columns with four fractional digits
func (s AccountSnapshot) Row() []string {
	return []string{
		strconv.FormatUint(uint64(s.ClientID), 10),
		s.Available.StringFixed(AmountPrecision),
		s.Held.StringFixed(AmountPrecision),
		s.Total.StringFixed(AmountPrecision),
		strconv.FormatBool(s.Locked),
	}
}
