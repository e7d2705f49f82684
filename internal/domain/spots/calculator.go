// Package spots converts an allocated budget slice into a purchased spot count.
//
// The count is a ceiling against the combined per-spot net cost, so the realized
// cost never falls short of the budget slice:
//
//	unit_net = net_price / standard_spots * discount
//	count    = ceil(slice / unit_net)
//
// A purchase below the monthly baseline pays an under-delivery surcharge and the
// count is recomputed once against the surcharged unit cost. Odd counts are
// bumped up to even, and a funded line never ends up with zero spots.
//
// Every purchase carries two unit costs: the list-based one shown on the cue
// sheet and the net-based one that drives the grand total.
package spots

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Pricing tunes the rounding behavior of the calculator.
type Pricing struct {
	SurchargePercent int  // under-delivery surcharge on the unit cost
	EvenParity       bool // bump odd counts up to the next even number
}

// SurchargeFactor returns the unit-cost multiplier applied to under-delivered
// purchases, e.g. 1.1 for a 10% surcharge.
func (p Pricing) SurchargeFactor() decimal.Decimal {
	return hundred.Add(decimal.NewFromInt(int64(p.SurchargePercent))).Div(hundred)
}

// Line is one budget slice to convert: the purchased scope's combined per-spot
// costs plus the baseline the rate card prices against. For a national bundle
// the unit costs are sums over every region in the bundle.
type Line struct {
	Budget        decimal.Decimal
	UnitNet       decimal.Decimal
	UnitList      decimal.Decimal
	StandardSpots int
}

// Purchase is the resolved spot buy for one line.
type Purchase struct {
	Spots      int
	Surcharged bool
	UnitNet    decimal.Decimal // effective, surcharge included
	UnitList   decimal.Decimal
	NetCost    decimal.Decimal
	ListCost   decimal.Decimal
}

// UnitCost returns the per-spot cost of one region at the given duration
// discount. A non-positive baseline yields zero, which the caller treats as
// unpriceable.
func UnitCost(price int64, standardSpots int, discount decimal.Decimal) decimal.Decimal {
	if standardSpots <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(price).
		Div(decimal.NewFromInt(int64(standardSpots))).
		Mul(discount)
}

// Calculate converts a budget slice into a spot purchase. The second return is
// false when the line cannot be priced: zero or negative slice, zero unit cost,
// or a missing baseline. Callers skip such lines instead of emitting them.
func Calculate(line Line, pricing Pricing) (Purchase, bool) {
	if !line.Budget.IsPositive() || !line.UnitNet.IsPositive() || line.StandardSpots <= 0 {
		return Purchase{}, false
	}

	unitNet := line.UnitNet
	unitList := line.UnitList
	count := line.Budget.Div(unitNet).Ceil().IntPart()

	surcharged := false
	if count < int64(line.StandardSpots) {
		// One pass only: the surcharge raises cost and can only lower the
		// count further below the baseline, never flip the branch back.
		factor := pricing.SurchargeFactor()
		unitNet = unitNet.Mul(factor)
		unitList = unitList.Mul(factor)
		count = line.Budget.Div(unitNet).Ceil().IntPart()
		surcharged = true
	}

	if count < 1 {
		count = 1
	}
	if pricing.EvenParity && count%2 != 0 {
		count++
	}

	countDec := decimal.NewFromInt(count)
	return Purchase{
		Spots:      int(count),
		Surcharged: surcharged,
		UnitNet:    unitNet,
		UnitList:   unitList,
		NetCost:    unitNet.Mul(countDec),
		ListCost:   unitList.Mul(countDec),
	}, true
}
