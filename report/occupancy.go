/*
occupancy.go - Occupancy, ADR and RevPAR derivation

PURPOSE:
  Derives the three standard rental KPIs from primitive sums:

    occupancyPct = nights / (daysInPeriod * units) * 100
    adr          = bookingRevenue / nights     (undefined if no nights)
    revpar       = adr * occupancyPct / 100    (undefined if no ADR)

DEGENERACY RULES:
  - daysInPeriod <= 0 or units <= 0: occupancy fails closed to 0. These
    describe a degenerate period, not a condition the caller can act on.
  - nights == 0: ADR is undefined, never zero. A zero ADR would imply a
    free stay occurred; NullDecimal keeps "no stays" distinct from
    "stays at $0". RevPAR follows ADR.
  - Nothing here ever produces NaN or an infinity.
*/
package report

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ComputeOccupancy returns the occupancy percentage for the given
// nights over daysInPeriod * units available room-nights.
func ComputeOccupancy(nights, daysInPeriod, units int) decimal.Decimal {
	if daysInPeriod <= 0 || units <= 0 {
		return decimal.Zero
	}
	available := decimal.NewFromInt(int64(daysInPeriod) * int64(units))
	return decimal.NewFromInt(int64(nights)).Div(available).Mul(hundred)
}

// DeriveRates fills in the occupancy-dependent KPIs of a booking
// aggregate from its primitive sums (nights, revenue). It never
// averages child percentages; callers re-derive from summed primitives
// at every roll-up level.
func DeriveRates(agg BookingAggregate, daysInPeriod, units int) BookingAggregate {
	agg.OccupancyPct = ComputeOccupancy(agg.Nights, daysInPeriod, units)

	if agg.Nights > 0 {
		adr := agg.BookingRevenue.Div(decimal.NewFromInt(int64(agg.Nights)))
		agg.ADR = decimal.NewNullDecimal(adr)
		agg.RevPAR = decimal.NewNullDecimal(adr.Mul(agg.OccupancyPct).Div(hundred))
	} else {
		agg.ADR = decimal.NullDecimal{}
		agg.RevPAR = decimal.NullDecimal{}
	}
	return agg
}
