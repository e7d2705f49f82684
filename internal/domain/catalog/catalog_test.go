package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChannels() []ChannelSpec {
	return []ChannelSpec{
		{Name: "FamilyMart Radio", National: true, Regions: []string{"North", "Central", "South"}},
		{Name: "PX Mart Radio", Regions: []string{"North"}},
	}
}

func testEntries() []RateEntry {
	return []RateEntry{
		{Channel: "FamilyMart Radio", Region: "North", Program: "1,649 stores", DayPart: "00:00-24:00", ListPrice: 499333, NetPrice: 416111, StandardSpots: 480},
		{Channel: "FamilyMart Radio", Region: "Central", Program: "839 stores", DayPart: "00:00-24:00", ListPrice: 299600, NetPrice: 249667, StandardSpots: 480},
		{Channel: "FamilyMart Radio", Region: "South", Program: "1,024 stores", DayPart: "00:00-24:00", ListPrice: 299600, NetPrice: 249667, StandardSpots: 480},
		{Channel: "PX Mart Radio", Region: "North", Program: "512 stores", DayPart: "08:00-22:00", ListPrice: 180000, NetPrice: 150000, StandardSpots: 240},
	}
}

func TestRateLookup(t *testing.T) {
	cat, err := New(testChannels(), testEntries())
	require.NoError(t, err)

	entry, ok := cat.Rate("FamilyMart Radio", "Central")
	require.True(t, ok)
	assert.Equal(t, int64(249667), entry.NetPrice)
	assert.Equal(t, 480, entry.StandardSpots)

	_, ok = cat.Rate("FamilyMart Radio", "East")
	assert.False(t, ok)
}

func TestChannelOrder(t *testing.T) {
	cat, err := New(testChannels(), testEntries())
	require.NoError(t, err)

	assert.Equal(t, 0, cat.ChannelIndex("FamilyMart Radio"))
	assert.Equal(t, 1, cat.ChannelIndex("PX Mart Radio"))
	assert.Equal(t, -1, cat.ChannelIndex("7-Eleven Radio"))

	ch, ok := cat.Channel("FamilyMart Radio")
	require.True(t, ok)
	assert.True(t, ch.National)
	assert.Equal(t, []string{"North", "Central", "South"}, ch.Regions)
}

func TestNewValidation(t *testing.T) {
	t.Run("net above list", func(t *testing.T) {
		_, err := New(nil, []RateEntry{{Channel: "A", Region: "R", ListPrice: 100, NetPrice: 150, StandardSpots: 10}})
		assert.ErrorContains(t, err, "exceeds list price")
	})

	t.Run("zero standard spots", func(t *testing.T) {
		_, err := New(nil, []RateEntry{{Channel: "A", Region: "R", ListPrice: 100, NetPrice: 80}})
		assert.ErrorContains(t, err, "standard spots")
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := New(nil, []RateEntry{{Channel: "A", Region: "R", ListPrice: -1, NetPrice: -2, StandardSpots: 10}})
		assert.ErrorContains(t, err, "negative")
	})

	t.Run("duplicate entry", func(t *testing.T) {
		entries := []RateEntry{
			{Channel: "A", Region: "R", ListPrice: 100, NetPrice: 80, StandardSpots: 10},
			{Channel: "A", Region: "R", ListPrice: 200, NetPrice: 160, StandardSpots: 10},
		}
		_, err := New(nil, entries)
		assert.ErrorContains(t, err, "duplicate")
	})
}

func TestDiscountMultiplier(t *testing.T) {
	table, err := NewDiscountTable([]DiscountEntry{
		{DurationSec: 20, Multiplier: decimal.NewFromInt(1)},
		{DurationSec: 10, Multiplier: decimal.NewFromFloat(0.75)},
		{DurationSec: 30, Multiplier: decimal.NewFromFloat(1.5)},
	})
	require.NoError(t, err)

	tests := []struct {
		name        string
		durationSec int
		want        string
	}{
		{"exact match", 20, "1"},
		{"exact match smallest", 10, "0.75"},
		{"falls back to next larger", 15, "1"},
		{"below smallest falls to it", 5, "0.75"},
		{"above largest defaults to 1", 60, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Multiplier(tt.durationSec)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"Multiplier(%d) = %s, want %s", tt.durationSec, got, tt.want)
		})
	}
}

func TestDiscountValidation(t *testing.T) {
	_, err := NewDiscountTable([]DiscountEntry{{DurationSec: 20, Multiplier: decimal.Zero}})
	assert.ErrorContains(t, err, "positive")

	_, err = NewDiscountTable([]DiscountEntry{
		{DurationSec: 20, Multiplier: decimal.NewFromInt(1)},
		{DurationSec: 20, Multiplier: decimal.NewFromInt(2)},
	})
	assert.ErrorContains(t, err, "duplicate")
}

func TestEmptyDiscountTableDefaultsToOne(t *testing.T) {
	table, err := NewDiscountTable(nil)
	require.NoError(t, err)
	assert.True(t, table.Multiplier(20).Equal(decimal.NewFromInt(1)))
}

func TestLoad(t *testing.T) {
	yamlDoc := `
channels:
  - name: FamilyMart Radio
    national: true
    regions: [North, Central]
rates:
  - channel: FamilyMart Radio
    region: North
    program: 1,649 stores
    day_part: 00:00-24:00
    list_price: 499333
    net_price: 416111
    standard_spots: 480
  - channel: FamilyMart Radio
    region: Central
    program: 839 stores
    day_part: 00:00-24:00
    list_price: 299600
    net_price: 249667
    standard_spots: 480
discounts:
  - duration_sec: 20
    multiplier: 1.0
  - duration_sec: 5
    multiplier: 0.6
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o644))

	cat, discounts, err := Load(path)
	require.NoError(t, err)

	entry, ok := cat.Rate("FamilyMart Radio", "North")
	require.True(t, ok)
	assert.Equal(t, int64(499333), entry.ListPrice)
	assert.Equal(t, "1,649 stores", entry.Program)

	assert.True(t, discounts.Multiplier(5).Equal(decimal.NewFromFloat(0.6)))
	assert.True(t, discounts.Multiplier(20).Equal(decimal.NewFromInt(1)))
}

func TestLoadRejectsBadCatalog(t *testing.T) {
	yamlDoc := `
rates:
  - channel: A
    region: R
    list_price: 100
    net_price: 200
    standard_spots: 480
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o644))

	_, _, err := Load(path)
	assert.ErrorContains(t, err, "exceeds list price")
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
