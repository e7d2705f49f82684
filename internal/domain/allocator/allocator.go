// Package allocator distributes a campaign budget across channels and spot durations.
//
// Channels are processed in priority order. An explicit share takes its literal
// percentage of the total budget; an auto share consumes whatever percentage is
// still unallocated when it is reached:
//
//	channel_budget = share% * total
//	auto_share     = clamp(100 - consumed_so_far, 0, 100)
//
// Within a channel the duration shares split the channel budget the same way. A
// single selected duration implicitly takes 100% regardless of its stated share.
// Explicit shares summing past 100 are computed literally and flagged, never
// silently clamped.
package allocator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNegativeBudget is returned when the total budget is below zero.
var ErrNegativeBudget = errors.New("total budget cannot be negative")

var hundred = decimal.NewFromInt(100)

// DurationShare is one duration's percentage of a channel budget.
type DurationShare struct {
	DurationSec int
	Percent     int
}

// ChannelShare is one channel's claim on the total budget, in priority order.
type ChannelShare struct {
	Channel   string
	Percent   int  // ignored when Auto is set
	Auto      bool // consume the unallocated remainder
	Durations []DurationShare
}

// DurationBudget is the slice of a channel budget assigned to one duration.
type DurationBudget struct {
	DurationSec int
	Percent     int
	Budget      decimal.Decimal
}

// ChannelBudget is the resolved allocation for one channel.
type ChannelBudget struct {
	Channel   string
	Percent   int // effective share; resolved for auto channels
	Budget    decimal.Decimal
	Durations []DurationBudget
}

// Result is the full budget distribution.
type Result struct {
	Channels      []ChannelBudget
	Allocated     decimal.Decimal
	Unallocated   decimal.Decimal // remainder left unspent; never negative
	OverAllocated bool            // explicit shares exceeded 100%
	Warnings      []string
}

// Allocate distributes total across shares in order.
//
// All-zero shares produce an empty allocation with a warning rather than an
// error: the caller decides whether an unspent budget is a problem.
func Allocate(total int64, shares []ChannelShare) (*Result, error) {
	if total < 0 {
		return nil, ErrNegativeBudget
	}

	totalDec := decimal.NewFromInt(total)
	result := &Result{
		Channels:  make([]ChannelBudget, 0, len(shares)),
		Allocated: decimal.Zero,
	}

	consumed := 0    // percent points handed out so far, auto included
	explicitSum := 0 // literal explicit percents, for over-allocation detection

	for _, share := range shares {
		pct := share.Percent
		if share.Auto {
			pct = 100 - consumed
			if pct < 0 {
				pct = 0
			}
			if pct > 100 {
				pct = 100
			}
		} else {
			if share.Percent < 0 {
				return nil, fmt.Errorf("channel %s: share percent cannot be negative", share.Channel)
			}
			explicitSum += share.Percent
		}
		consumed += pct

		channelBudget := totalDec.Mul(decimal.NewFromInt(int64(pct))).Div(hundred)
		cb := ChannelBudget{
			Channel: share.Channel,
			Percent: pct,
			Budget:  channelBudget,
		}

		durations, warnings, err := splitDurations(share, channelBudget)
		if err != nil {
			return nil, err
		}
		cb.Durations = durations
		result.Warnings = append(result.Warnings, warnings...)

		result.Channels = append(result.Channels, cb)
		result.Allocated = result.Allocated.Add(channelBudget)
	}

	if explicitSum > 100 {
		result.OverAllocated = true
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("explicit channel shares sum to %d%%; allocation exceeds the nominal budget", explicitSum))
	}

	result.Unallocated = totalDec.Sub(result.Allocated)
	if result.Unallocated.IsNegative() {
		result.Unallocated = decimal.Zero
	}

	if total > 0 && len(shares) > 0 && result.Allocated.IsZero() {
		result.Warnings = append(result.Warnings, "no channel received budget: all shares are zero")
	}

	return result, nil
}

func splitDurations(share ChannelShare, channelBudget decimal.Decimal) ([]DurationBudget, []string, error) {
	if len(share.Durations) == 0 {
		return nil, nil, nil
	}

	// A lone duration takes the whole channel budget no matter what it claims.
	if len(share.Durations) == 1 {
		d := share.Durations[0]
		return []DurationBudget{{
			DurationSec: d.DurationSec,
			Percent:     100,
			Budget:      channelBudget,
		}}, nil, nil
	}

	var warnings []string
	durationSum := 0
	out := make([]DurationBudget, 0, len(share.Durations))
	for _, d := range share.Durations {
		if d.Percent < 0 {
			return nil, nil, fmt.Errorf("channel %s, duration %ds: share percent cannot be negative", share.Channel, d.DurationSec)
		}
		durationSum += d.Percent
		out = append(out, DurationBudget{
			DurationSec: d.DurationSec,
			Percent:     d.Percent,
			Budget:      channelBudget.Mul(decimal.NewFromInt(int64(d.Percent))).Div(hundred),
		})
	}
	if durationSum != 100 {
		warnings = append(warnings,
			fmt.Sprintf("channel %s: duration shares sum to %d%%, not 100%%", share.Channel, durationSum))
	}
	return out, warnings, nil
}
