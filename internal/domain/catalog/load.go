package catalog

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk YAML shape of a rate card.
type catalogFile struct {
	Channels []struct {
		Name     string   `yaml:"name"`
		National bool     `yaml:"national"`
		Regions  []string `yaml:"regions"`
	} `yaml:"channels"`
	Rates []struct {
		Channel       string `yaml:"channel"`
		Region        string `yaml:"region"`
		Program       string `yaml:"program"`
		DayPart       string `yaml:"day_part"`
		ListPrice     int64  `yaml:"list_price"`
		NetPrice      int64  `yaml:"net_price"`
		StandardSpots int    `yaml:"standard_spots"`
	} `yaml:"rates"`
	Discounts []struct {
		DurationSec int     `yaml:"duration_sec"`
		Multiplier  float64 `yaml:"multiplier"`
	} `yaml:"discounts"`
}

// Load reads a rate-card YAML file and returns the validated catalog and
// discount table.
func Load(path string) (*Catalog, DiscountTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, DiscountTable{}, fmt.Errorf("read catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, DiscountTable{}, fmt.Errorf("parse catalog: %w", err)
	}

	channels := make([]ChannelSpec, 0, len(file.Channels))
	for _, ch := range file.Channels {
		channels = append(channels, ChannelSpec{
			Name:     ch.Name,
			National: ch.National,
			Regions:  ch.Regions,
		})
	}

	entries := make([]RateEntry, 0, len(file.Rates))
	for _, r := range file.Rates {
		entries = append(entries, RateEntry{
			Channel:       r.Channel,
			Region:        r.Region,
			Program:       r.Program,
			DayPart:       r.DayPart,
			ListPrice:     r.ListPrice,
			NetPrice:      r.NetPrice,
			StandardSpots: r.StandardSpots,
		})
	}

	cat, err := New(channels, entries)
	if err != nil {
		return nil, DiscountTable{}, fmt.Errorf("catalog %s: %w", path, err)
	}

	discountEntries := make([]DiscountEntry, 0, len(file.Discounts))
	for _, d := range file.Discounts {
		discountEntries = append(discountEntries, DiscountEntry{
			DurationSec: d.DurationSec,
			Multiplier:  decimal.NewFromFloat(d.Multiplier),
		})
	}
	discounts, err := NewDiscountTable(discountEntries)
	if err != nil {
		return nil, DiscountTable{}, fmt.Errorf("catalog %s: %w", path, err)
	}

	return cat, discounts, nil
}
