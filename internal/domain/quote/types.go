package quote

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mediacue/cuesheet/internal/domain/schedule"
)

// Request describes one cue-sheet computation. Every field is an input; the
// engine holds no state between builds, so identical requests always produce
// identical line items and totals.
type Request struct {
	Client   string
	Budget   int64 // total media budget in whole currency units
	Window   schedule.Window
	Channels []ChannelSelection
}

// ChannelSelection picks a channel, its budget share, and the durations to buy.
type ChannelSelection struct {
	Channel   string
	Percent   int
	Auto      bool     // take the budget left over after earlier channels
	Regions   []string // empty selects every region the catalog lists
	Durations []DurationSelection
}

// DurationSelection is one spot duration and its share of the channel budget.
type DurationSelection struct {
	DurationSec int
	Percent     int
}

// LineItem is one displayed cue-sheet row.
//
// Rate is the list-based line cost the customer sees; TrueCost is the net cost
// that drives the totals and is zero on bundle member rows so a bundle is never
// counted twice. PackageCost is set on the bundle lead row only; the rendering
// layer merges member cells into one spanning package cell.
type LineItem struct {
	Station      string
	Location     string
	Program      string
	DayPart      string
	DurationSec  int
	Spots        int
	Daily        []int
	Rate         decimal.Decimal
	PackageCost  decimal.Decimal
	BundleID     string // "" on standalone rows
	BundleLead   bool
	BundleMember bool
	TrueCost     decimal.Decimal
}

// Totals is the four-line total block under the cue sheet.
type Totals struct {
	MediaTotal    decimal.Decimal
	ProductionFee decimal.Decimal
	VAT           decimal.Decimal
	GrandTotal    decimal.Decimal
}

// Warning codes attached to a quote.
const (
	// WarnUnknownChannel: a selected channel is not in the catalog.
	WarnUnknownChannel = "unknown_channel"
	// WarnUnpricedChannel: a (channel, region) pair has no rate-card entry, so
	// its line was dropped. Surfaced rather than silently omitted.
	WarnUnpricedChannel = "unpriced_channel"
	// WarnAllocation: the budget split itself raised a warning, e.g. explicit
	// shares past 100% or duration shares off 100%.
	WarnAllocation = "allocation"
	// WarnUnallocated: part of the budget was left unspent.
	WarnUnallocated = "unallocated_budget"
)

// Warning is a user-visible computation warning.
type Warning struct {
	Code    string
	Message string
}

// Quote is a fully priced, day-scheduled cue sheet.
type Quote struct {
	ID          string
	Client      string
	GeneratedAt time.Time
	Window      schedule.Window
	Lines       []LineItem
	Totals      Totals
	Warnings    []Warning
}
