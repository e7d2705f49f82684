package render

import (
	"encoding/csv"
	"io"

	"github.com/mediacue/cuesheet/internal/domain/quote"
)

// WriteCSV writes the quote's line items and totals as CSV. Bundle member rows
// get an empty package-cost cell so a spreadsheet can merge the bundle into one
// spanning cell.
func WriteCSV(w io.Writer, q *quote.Quote) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header(q.Window.Days())); err != nil {
		return err
	}
	for _, line := range q.Lines {
		if err := cw.Write(row(line)); err != nil {
			return err
		}
	}

	totals := [][]string{
		{"Media Total", q.Totals.MediaTotal.String()},
		{"Production Fee", q.Totals.ProductionFee.String()},
		{"VAT", q.Totals.VAT.String()},
		{"Grand Total", q.Totals.GrandTotal.String()},
	}
	for _, t := range totals {
		if err := cw.Write(t); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
