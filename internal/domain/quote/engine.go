// Package quote composes allocation, pricing, and scheduling into the final cue
// sheet: ordered line items with daily spot schedules, package-cost rollup for
// national bundles, and the totals block.
//
// The build is a pure function of (catalog, discount table, config, request);
// channels are emitted in the catalog's canonical order and durations from long
// to short, so output never depends on request insertion order.
package quote

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mediacue/cuesheet/internal/domain/allocator"
	"github.com/mediacue/cuesheet/internal/domain/catalog"
	"github.com/mediacue/cuesheet/internal/domain/schedule"
	"github.com/mediacue/cuesheet/internal/domain/spots"
)

var hundred = decimal.NewFromInt(100)

// Config holds the pricing constants applied to every quote.
type Config struct {
	ProductionFee    int64
	VATPercent       int
	SurchargePercent int
	EvenParity       bool
}

// Engine builds quotes against one immutable catalog and discount table.
type Engine struct {
	catalog   *catalog.Catalog
	discounts catalog.DiscountTable
	cfg       Config
	logger    *slog.Logger
}

// NewEngine creates an Engine. A nil logger falls back to slog.Default.
func NewEngine(cat *catalog.Catalog, discounts catalog.DiscountTable, cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		catalog:   cat,
		discounts: discounts,
		cfg:       cfg,
		logger:    logger.With("system", "quote"),
	}
}

// Build computes the cue sheet for a request.
func (e *Engine) Build(req Request) (*Quote, error) {
	q := &Quote{
		ID:          uuid.NewString(),
		Client:      req.Client,
		GeneratedAt: time.Now().UTC(),
		Window:      req.Window,
	}
	days := req.Window.Days()

	selections := e.orderSelections(req.Channels, q)

	shares := make([]allocator.ChannelShare, len(selections))
	for i, sel := range selections {
		durations := make([]allocator.DurationShare, len(sel.Durations))
		for j, d := range sel.Durations {
			durations[j] = allocator.DurationShare{DurationSec: d.DurationSec, Percent: d.Percent}
		}
		shares[i] = allocator.ChannelShare{
			Channel:   sel.Channel,
			Percent:   sel.Percent,
			Auto:      sel.Auto,
			Durations: durations,
		}
	}

	alloc, err := allocator.Allocate(req.Budget, shares)
	if err != nil {
		return nil, fmt.Errorf("allocate budget: %w", err)
	}
	for _, w := range alloc.Warnings {
		q.warn(WarnAllocation, w)
	}

	pricing := spots.Pricing{
		SurchargePercent: e.cfg.SurchargePercent,
		EvenParity:       e.cfg.EvenParity,
	}

	bundleSeq := 0
	mediaTotal := decimal.Zero
	for i, cb := range alloc.Channels {
		sel := selections[i]
		spec, _ := e.catalog.Channel(sel.Channel)
		for _, db := range cb.Durations {
			if !db.Budget.IsPositive() {
				continue
			}
			lines, netCost := e.buildGroup(q, spec, sel, db, pricing, days, &bundleSeq)
			q.Lines = append(q.Lines, lines...)
			mediaTotal = mediaTotal.Add(netCost)
		}
	}

	if alloc.Unallocated.IsPositive() {
		q.warn(WarnUnallocated, fmt.Sprintf("%s of the budget is unallocated", alloc.Unallocated))
	}

	q.Totals = e.totals(mediaTotal)

	e.logger.Debug("quote built",
		slog.String("quote_id", q.ID),
		slog.Int("lines", len(q.Lines)),
		slog.Int("warnings", len(q.Warnings)),
		slog.String("media_total", q.Totals.MediaTotal.String()),
	)
	return q, nil
}

// orderSelections drops unknown channels with a warning and sorts the rest into
// the catalog's canonical channel order, durations long to short.
func (e *Engine) orderSelections(selections []ChannelSelection, q *Quote) []ChannelSelection {
	kept := make([]ChannelSelection, 0, len(selections))
	for _, sel := range selections {
		if e.catalog.ChannelIndex(sel.Channel) < 0 {
			q.warn(WarnUnknownChannel, fmt.Sprintf("channel %q is not in the rate catalog", sel.Channel))
			continue
		}
		durations := make([]DurationSelection, len(sel.Durations))
		copy(durations, sel.Durations)
		sort.SliceStable(durations, func(a, b int) bool {
			return durations[a].DurationSec > durations[b].DurationSec
		})
		sel.Durations = durations
		kept = append(kept, sel)
	}
	sort.SliceStable(kept, func(a, b int) bool {
		return e.catalog.ChannelIndex(kept[a].Channel) < e.catalog.ChannelIndex(kept[b].Channel)
	})
	return kept
}

// buildGroup prices one channel x duration slice and returns its rows plus the
// net cost that feeds the media total.
func (e *Engine) buildGroup(q *Quote, spec catalog.ChannelSpec, sel ChannelSelection, db allocator.DurationBudget, pricing spots.Pricing, days int, bundleSeq *int) ([]LineItem, decimal.Decimal) {
	discount := e.discounts.Multiplier(db.DurationSec)
	entries := e.resolveEntries(q, spec, sel, db.DurationSec)
	if len(entries) == 0 {
		return nil, decimal.Zero
	}

	if spec.National {
		return e.buildBundle(spec, entries, db, discount, pricing, days, bundleSeq)
	}
	return e.buildStandalone(spec, entries, db, discount, pricing, days)
}

// resolveEntries returns the priced rate entries for the selected regions in
// the catalog's display order, warning on every unpriced pair.
func (e *Engine) resolveEntries(q *Quote, spec catalog.ChannelSpec, sel ChannelSelection, durationSec int) []catalog.RateEntry {
	selected := func(region string) bool {
		if len(sel.Regions) == 0 {
			return true
		}
		for _, r := range sel.Regions {
			if r == region {
				return true
			}
		}
		return false
	}

	var entries []catalog.RateEntry
	for _, region := range spec.Regions {
		if !selected(region) {
			continue
		}
		entry, ok := e.catalog.Rate(spec.Name, region)
		if !ok {
			q.warn(WarnUnpricedChannel, fmt.Sprintf("no rate for %s / %s at %ds; line dropped", spec.Name, region, durationSec))
			continue
		}
		entries = append(entries, entry)
	}

	// Selected regions the channel does not list are unpriceable too.
	for _, region := range sel.Regions {
		known := false
		for _, r := range spec.Regions {
			if r == region {
				known = true
				break
			}
		}
		if !known {
			q.warn(WarnUnpricedChannel, fmt.Sprintf("no rate for %s / %s at %ds; line dropped", spec.Name, region, durationSec))
		}
	}
	return entries
}

// buildBundle prices a national buy: one spot count against the summed regional
// unit costs, displayed as one row per region with the package cost on the lead.
func (e *Engine) buildBundle(spec catalog.ChannelSpec, entries []catalog.RateEntry, db allocator.DurationBudget, discount decimal.Decimal, pricing spots.Pricing, days int, bundleSeq *int) ([]LineItem, decimal.Decimal) {
	combinedNet := decimal.Zero
	combinedList := decimal.Zero
	for _, entry := range entries {
		combinedNet = combinedNet.Add(spots.UnitCost(entry.NetPrice, entry.StandardSpots, discount))
		combinedList = combinedList.Add(spots.UnitCost(entry.ListPrice, entry.StandardSpots, discount))
	}

	purchase, ok := spots.Calculate(spots.Line{
		Budget:        db.Budget,
		UnitNet:       combinedNet,
		UnitList:      combinedList,
		StandardSpots: entries[0].StandardSpots,
	}, pricing)
	if !ok {
		return nil, decimal.Zero
	}

	label := bundleLabel(*bundleSeq)
	*bundleSeq++

	factor := decimal.NewFromInt(1)
	if purchase.Surcharged {
		factor = pricing.SurchargeFactor()
	}

	daily := schedule.Distribute(purchase.Spots, days)
	spotCount := decimal.NewFromInt(int64(purchase.Spots))

	// Each region row shows its own list-based cost; the lead row carries the
	// sum as the bundle's single package cost.
	rates := make([]decimal.Decimal, len(entries))
	packageCost := decimal.Zero
	for i, entry := range entries {
		unitList := spots.UnitCost(entry.ListPrice, entry.StandardSpots, discount).Mul(factor)
		rates[i] = unitList.Mul(spotCount).Ceil()
		packageCost = packageCost.Add(rates[i])
	}
	trueCost := purchase.NetCost.Ceil()

	items := make([]LineItem, len(entries))
	for i, entry := range entries {
		item := LineItem{
			Station:      spec.Name,
			Location:     entry.Region,
			Program:      entry.Program,
			DayPart:      entry.DayPart,
			DurationSec:  db.DurationSec,
			Spots:        purchase.Spots,
			Daily:        append([]int(nil), daily...),
			Rate:         rates[i],
			BundleID:     label,
			BundleLead:   i == 0,
			BundleMember: i > 0,
		}
		if i == 0 {
			item.PackageCost = packageCost
			item.TrueCost = trueCost
		}
		items[i] = item
	}
	return items, trueCost
}

// buildStandalone prices region-specific buys: the duration slice is split
// evenly across the selected regions and each row stands on its own.
func (e *Engine) buildStandalone(spec catalog.ChannelSpec, entries []catalog.RateEntry, db allocator.DurationBudget, discount decimal.Decimal, pricing spots.Pricing, days int) ([]LineItem, decimal.Decimal) {
	slice := db.Budget.Div(decimal.NewFromInt(int64(len(entries))))

	var items []LineItem
	netTotal := decimal.Zero
	for _, entry := range entries {
		purchase, ok := spots.Calculate(spots.Line{
			Budget:        slice,
			UnitNet:       spots.UnitCost(entry.NetPrice, entry.StandardSpots, discount),
			UnitList:      spots.UnitCost(entry.ListPrice, entry.StandardSpots, discount),
			StandardSpots: entry.StandardSpots,
		}, pricing)
		if !ok {
			continue
		}

		trueCost := purchase.NetCost.Ceil()
		items = append(items, LineItem{
			Station:     spec.Name,
			Location:    entry.Region,
			Program:     entry.Program,
			DayPart:     entry.DayPart,
			DurationSec: db.DurationSec,
			Spots:       purchase.Spots,
			Daily:       schedule.Distribute(purchase.Spots, days),
			Rate:        purchase.ListCost.Ceil(),
			TrueCost:    trueCost,
		})
		netTotal = netTotal.Add(trueCost)
	}
	return items, netTotal
}

// totals computes the four-line block. The VAT base is the realized media cost,
// not the nominal input budget, and the production fee applies only when media
// was actually purchased.
func (e *Engine) totals(mediaTotal decimal.Decimal) Totals {
	if mediaTotal.IsZero() {
		return Totals{
			MediaTotal:    decimal.Zero,
			ProductionFee: decimal.Zero,
			VAT:           decimal.Zero,
			GrandTotal:    decimal.Zero,
		}
	}
	fee := decimal.NewFromInt(e.cfg.ProductionFee)
	base := mediaTotal.Add(fee)
	vat := base.Mul(decimal.NewFromInt(int64(e.cfg.VATPercent))).Div(hundred).Round(0)
	return Totals{
		MediaTotal:    mediaTotal,
		ProductionFee: fee,
		VAT:           vat,
		GrandTotal:    base.Add(vat),
	}
}

func (q *Quote) warn(code, message string) {
	q.Warnings = append(q.Warnings, Warning{Code: code, Message: message})
}

// bundleLabel yields display labels A, B, ... Z, AA, AB, ... for bundle groups.
func bundleLabel(i int) string {
	label := ""
	for {
		label = string(rune('A'+i%26)) + label
		i = i/26 - 1
		if i < 0 {
			return label
		}
	}
}
