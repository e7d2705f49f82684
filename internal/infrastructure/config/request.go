package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mediacue/cuesheet/internal/domain/quote"
	"github.com/mediacue/cuesheet/internal/domain/schedule"
)

// requestFile is the on-disk YAML shape of a quote request.
type requestFile struct {
	Client    string `yaml:"client"`
	Budget    int64  `yaml:"budget"`
	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date"`
	Channels  []struct {
		Channel   string   `yaml:"channel"`
		Percent   int      `yaml:"percent"`
		Auto      bool     `yaml:"auto"`
		Regions   []string `yaml:"regions"`
		Durations []struct {
			DurationSec int `yaml:"duration_sec"`
			Percent     int `yaml:"percent"`
		} `yaml:"durations"`
	} `yaml:"channels"`
}

const dateLayout = "2006-01-02"

// LoadRequest reads a quote request YAML file. Date validation happens here so
// an inverted campaign range never reaches the engine.
func LoadRequest(path string) (*quote.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}

	var file requestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse request %s: %w", path, err)
	}

	start, err := time.Parse(dateLayout, file.StartDate)
	if err != nil {
		return nil, fmt.Errorf("request %s: bad start_date %q: %w", path, file.StartDate, err)
	}
	end, err := time.Parse(dateLayout, file.EndDate)
	if err != nil {
		return nil, fmt.Errorf("request %s: bad end_date %q: %w", path, file.EndDate, err)
	}
	window, err := schedule.NewWindow(start, end)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", path, err)
	}

	req := &quote.Request{
		Client: file.Client,
		Budget: file.Budget,
		Window: window,
	}
	for _, ch := range file.Channels {
		sel := quote.ChannelSelection{
			Channel: ch.Channel,
			Percent: ch.Percent,
			Auto:    ch.Auto,
			Regions: ch.Regions,
		}
		for _, d := range ch.Durations {
			sel.Durations = append(sel.Durations, quote.DurationSelection{
				DurationSec: d.DurationSec,
				Percent:     d.Percent,
			})
		}
		req.Channels = append(req.Channels, sel)
	}
	return req, nil
}
