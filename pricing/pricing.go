package pricing

import (
	"cmp"
	"slices"
	"time"
)

// PriceTriple holds per-category unit prices in whole currency units.
type PriceTriple struct {
	Adult  int64 `json:"adult" bson:"adult"`
	Child  int64 `json:"child" bson:"child"`
	Infant int64 `json:"infant" bson:"infant"`
}

// PricingPeriod overrides a channel's default prices for a date range.
// Start and End are inclusive "yyyy-MM-dd" strings.
type PricingPeriod struct {
	PeriodID string      `json:"periodid" bson:"periodid"`
	Start    string      `json:"start" bson:"start"`
	End      string      `json:"end" bson:"end"`
	Pricing  PriceTriple `json:"pricing" bson:"pricing"`
}

// SalesChannel is a named pricing profile a booking is attributed to.
type SalesChannel struct {
	ChannelID  string          `json:"channelid" bson:"channelid"`
	Name       string          `json:"name" bson:"name"`
	Category   string          `json:"category,omitempty" bson:"category,omitempty"`
	Pricing    PriceTriple     `json:"pricing" bson:"pricing"`
	Commission *PriceTriple    `json:"commission,omitempty" bson:"commission,omitempty"`
	Periods    []PricingPeriod `json:"periods" bson:"periods"`
	CreatedAt  int64           `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64           `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

const dateLayout = "2006-01-02"

// spanDays is the inclusive length of a period in days. Unparseable
// bounds sort last so a well-formed period always wins.
func spanDays(p PricingPeriod) int {
	start, err1 := time.Parse(dateLayout, p.Start)
	end, err2 := time.Parse(dateLayout, p.End)
	if err1 != nil || err2 != nil {
		return 1 << 30
	}
	return int(end.Sub(start).Hours()/24) + 1
}

func covers(p PricingPeriod, date string) bool {
	return p.Start <= date && date <= p.End
}

// ResolvePrice returns the effective per-category prices for a channel on
// a date. Matching periods are ranked by span ascending, then start date
// ascending, so the narrowest period wins on overlap and ties resolve
// deterministically. With no matching period the channel default applies;
// this never fails.
func ResolvePrice(ch SalesChannel, date string) PriceTriple {
	var matches []PricingPeriod
	for _, p := range ch.Periods {
		if covers(p, date) {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 {
		return ch.Pricing
	}

	slices.SortStableFunc(matches, func(a, b PricingPeriod) int {
		if c := cmp.Compare(spanDays(a), spanDays(b)); c != 0 {
			return c
		}
		return cmp.Compare(a.Start, b.Start)
	})
	return matches[0].Pricing
}

// CommissionFor returns the per-head commission prices, zero-valued when
// the channel carries none.
func CommissionFor(ch SalesChannel) PriceTriple {
	if ch.Commission == nil {
		return PriceTriple{}
	}
	return *ch.Commission
}

// OverlappingPeriods lists every pair of periods that cover at least one
// common date. Surfaced to the operator as a warning; overlap is allowed.
func OverlappingPeriods(ch SalesChannel) [][2]PricingPeriod {
	var pairs [][2]PricingPeriod
	for i := 0; i < len(ch.Periods); i++ {
		for j := i + 1; j < len(ch.Periods); j++ {
			a, b := ch.Periods[i], ch.Periods[j]
			if a.Start <= b.End && b.Start <= a.End {
				pairs = append(pairs, [2]PricingPeriod{a, b})
			}
		}
	}
	return pairs
}
