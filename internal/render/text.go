// Package render turns a computed quote into consumer formats: a fixed-width
// cue-sheet table for the terminal and CSV for spreadsheet import.
//
// The engine marks bundle rows instead of encoding presentation; this layer is
// what honors the lead/member flags, printing the package cost once per bundle
// and leaving member cells blank so the bundle reads as one merged cell.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mediacue/cuesheet/internal/domain/quote"
)

// CueSheet writes the quote as a cue-sheet table with the totals block.
func CueSheet(w io.Writer, q *quote.Quote) error {
	days := q.Window.Days()

	fmt.Fprintf(w, "Client: %s\n", q.Client)
	fmt.Fprintf(w, "Period: %s - %s (%d days)\n\n",
		q.Window.Start.Format("2006-01-02"), q.Window.End.Format("2006-01-02"), days)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header(days), "\t"))
	for _, line := range q.Lines {
		fmt.Fprintln(tw, strings.Join(row(line), "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nMedia Total:\t%s\n", q.Totals.MediaTotal)
	fmt.Fprintf(w, "Production Fee:\t%s\n", q.Totals.ProductionFee)
	fmt.Fprintf(w, "VAT:\t%s\n", q.Totals.VAT)
	fmt.Fprintf(w, "Grand Total:\t%s\n", q.Totals.GrandTotal)
	return nil
}

func header(days int) []string {
	cols := []string{"Station", "Location", "Program", "Day-part", "Size", "Rate", "Package-cost", "Spots"}
	for i := 1; i <= days; i++ {
		cols = append(cols, strconv.Itoa(i))
	}
	return cols
}

func row(line quote.LineItem) []string {
	pkg := ""
	switch {
	case line.BundleID == "":
		// Region-specific buy: the rate is the whole line cost.
	case line.BundleLead:
		pkg = line.PackageCost.String()
	}

	cols := []string{
		line.Station,
		line.Location,
		line.Program,
		line.DayPart,
		fmt.Sprintf("%ds", line.DurationSec),
		line.Rate.String(),
		pkg,
		strconv.Itoa(line.Spots),
	}
	for _, n := range line.Daily {
		cols = append(cols, strconv.Itoa(n))
	}
	return cols
}
