package csvio

import (
	"encoding/csv"
	"io"

	"github.com/sheikh-saqib/transactions-engine/internal/models"
)

// WriteSnapshot writes the header and one row per account
func WriteSnapshot(w io.Writer, rows []models.AccountSnapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.SnapshotHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
