// Package catalog holds the static rate card and the spot-duration discount table.
//
// Rates are keyed by (channel, region). Duration pricing is expressed as a
// multiplier over a baseline duration via the DiscountTable, so a 5-second and a
// 20-second spot share one rate row per region. The catalog is an immutable value
// built once and injected into the engine, never a package-level table.
package catalog

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// RateEntry is one priced (channel, region) row of the rate card.
//
// Prices are whole currency units for the standard monthly spot volume. ListPrice
// is what the customer sees on the cue sheet; NetPrice is the agency's real cost.
type RateEntry struct {
	Channel       string
	Region        string
	Program       string // store-count label shown in the Program column
	DayPart       string
	ListPrice     int64
	NetPrice      int64
	StandardSpots int // monthly spot baseline the prices correspond to
}

// ChannelSpec describes how a channel is sold and displayed.
type ChannelSpec struct {
	Name     string
	National bool     // one nationwide buy, displayed as one row per region
	Regions  []string // region display order
}

// Catalog is an immutable rate card: channel specs in canonical priority order
// plus one RateEntry per (channel, region).
type Catalog struct {
	channels []ChannelSpec
	rates    map[string]RateEntry
}

func rateKey(channel, region string) string {
	return channel + "\x00" + region
}

// New builds a Catalog and validates rate-card invariants.
func New(channels []ChannelSpec, entries []RateEntry) (*Catalog, error) {
	rates := make(map[string]RateEntry, len(entries))
	for _, e := range entries {
		if e.StandardSpots <= 0 {
			return nil, fmt.Errorf("rate %s/%s: standard spots must be positive, got %d", e.Channel, e.Region, e.StandardSpots)
		}
		if e.ListPrice < 0 || e.NetPrice < 0 {
			return nil, fmt.Errorf("rate %s/%s: prices cannot be negative", e.Channel, e.Region)
		}
		if e.NetPrice > e.ListPrice {
			return nil, fmt.Errorf("rate %s/%s: net price %d exceeds list price %d", e.Channel, e.Region, e.NetPrice, e.ListPrice)
		}
		key := rateKey(e.Channel, e.Region)
		if _, dup := rates[key]; dup {
			return nil, fmt.Errorf("rate %s/%s: duplicate entry", e.Channel, e.Region)
		}
		rates[key] = e
	}

	specs := make([]ChannelSpec, len(channels))
	copy(specs, channels)

	return &Catalog{channels: specs, rates: rates}, nil
}

// Rate looks up the rate entry for a channel and region.
func (c *Catalog) Rate(channel, region string) (RateEntry, bool) {
	e, ok := c.rates[rateKey(channel, region)]
	return e, ok
}

// Channel returns the spec for a channel by name.
func (c *Catalog) Channel(name string) (ChannelSpec, bool) {
	for _, ch := range c.channels {
		if ch.Name == name {
			return ch, true
		}
	}
	return ChannelSpec{}, false
}

// Channels returns every channel spec in canonical priority order.
func (c *Catalog) Channels() []ChannelSpec {
	out := make([]ChannelSpec, len(c.channels))
	copy(out, c.channels)
	return out
}

// ChannelIndex returns a channel's position in the canonical order, or -1.
// The engine sorts quote selections by this index so output order never depends
// on request insertion order.
func (c *Catalog) ChannelIndex(name string) int {
	for i, ch := range c.channels {
		if ch.Name == name {
			return i
		}
	}
	return -1
}

// DiscountEntry maps a spot duration to a price multiplier over the baseline.
type DiscountEntry struct {
	DurationSec int
	Multiplier  decimal.Decimal
}

// DiscountTable resolves duration multipliers. Lookup for an unlisted duration
// falls back to the nearest larger listed duration; with no larger duration the
// multiplier is 1.
type DiscountTable struct {
	entries []DiscountEntry // ascending by duration
}

// NewDiscountTable builds a DiscountTable from entries in any order.
func NewDiscountTable(entries []DiscountEntry) (DiscountTable, error) {
	sorted := make([]DiscountEntry, len(entries))
	copy(sorted, entries)
	for i := range sorted {
		if !sorted[i].Multiplier.IsPositive() {
			return DiscountTable{}, fmt.Errorf("discount for %ds: multiplier must be positive, got %s", sorted[i].DurationSec, sorted[i].Multiplier)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DurationSec < sorted[j].DurationSec
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].DurationSec == sorted[i-1].DurationSec {
			return DiscountTable{}, fmt.Errorf("discount for %ds: duplicate duration", sorted[i].DurationSec)
		}
	}
	return DiscountTable{entries: sorted}, nil
}

// Multiplier returns the price multiplier for a spot duration.
func (t DiscountTable) Multiplier(durationSec int) decimal.Decimal {
	for _, e := range t.entries {
		if e.DurationSec == durationSec {
			return e.Multiplier
		}
	}
	// No exact match: the next larger listed duration prices the spot.
	for _, e := range t.entries {
		if e.DurationSec > durationSec {
			return e.Multiplier
		}
	}
	return decimal.NewFromInt(1)
}
