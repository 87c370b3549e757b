package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func channelWithPeriods(periods ...PricingPeriod) SalesChannel {
	return SalesChannel{
		ChannelID: "ch1",
		Name:      "Harbor Desk",
		Pricing:   PriceTriple{Adult: 5000, Child: 2500, Infant: 0},
		Periods:   periods,
	}
}

func TestResolvePriceDefaultWhenNoPeriodMatches(t *testing.T) {
	ch := channelWithPeriods(PricingPeriod{
		PeriodID: "p1", Start: "2025-07-01", End: "2025-07-31",
		Pricing: PriceTriple{Adult: 6000, Child: 3000},
	})

	got := ResolvePrice(ch, "2025-08-15")
	assert.Equal(t, ch.Pricing, got)
}

func TestResolvePriceNarrowestPeriodWins(t *testing.T) {
	ch := channelWithPeriods(
		PricingPeriod{PeriodID: "wide", Start: "2025-01-01", End: "2025-01-10",
			Pricing: PriceTriple{Adult: 1000}},
		PricingPeriod{PeriodID: "narrow", Start: "2025-01-05", End: "2025-01-06",
			Pricing: PriceTriple{Adult: 2000}},
	)

	got := ResolvePrice(ch, "2025-01-05")
	assert.Equal(t, int64(2000), got.Adult)

	// outside the narrow window the wide period still applies
	got = ResolvePrice(ch, "2025-01-08")
	assert.Equal(t, int64(1000), got.Adult)
}

func TestResolvePriceTieBreaksByStartThenStoredOrder(t *testing.T) {
	// equal spans, different starts: earlier start wins
	ch := channelWithPeriods(
		PricingPeriod{PeriodID: "b", Start: "2025-03-03", End: "2025-03-07",
			Pricing: PriceTriple{Adult: 300}},
		PricingPeriod{PeriodID: "a", Start: "2025-03-01", End: "2025-03-05",
			Pricing: PriceTriple{Adult: 100}},
	)
	assert.Equal(t, int64(100), ResolvePrice(ch, "2025-03-04").Adult)

	// identical spans and starts: first in stored order wins
	ch = channelWithPeriods(
		PricingPeriod{PeriodID: "first", Start: "2025-03-01", End: "2025-03-05",
			Pricing: PriceTriple{Adult: 111}},
		PricingPeriod{PeriodID: "second", Start: "2025-03-01", End: "2025-03-05",
			Pricing: PriceTriple{Adult: 222}},
	)
	assert.Equal(t, int64(111), ResolvePrice(ch, "2025-03-03").Adult)
}

func TestResolvePriceIsDeterministic(t *testing.T) {
	ch := channelWithPeriods(
		PricingPeriod{PeriodID: "p1", Start: "2025-05-01", End: "2025-05-20",
			Pricing: PriceTriple{Adult: 700, Child: 350}},
		PricingPeriod{PeriodID: "p2", Start: "2025-05-10", End: "2025-05-12",
			Pricing: PriceTriple{Adult: 900, Child: 450}},
	)

	first := ResolvePrice(ch, "2025-05-11")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ResolvePrice(ch, "2025-05-11"))
	}
}

func TestOverlappingPeriods(t *testing.T) {
	ch := channelWithPeriods(
		PricingPeriod{PeriodID: "p1", Start: "2025-01-01", End: "2025-01-10"},
		PricingPeriod{PeriodID: "p2", Start: "2025-01-05", End: "2025-01-06"},
		PricingPeriod{PeriodID: "p3", Start: "2025-02-01", End: "2025-02-05"},
	)

	pairs := OverlappingPeriods(ch)
	assert.Len(t, pairs, 1)
	assert.Equal(t, "p1", pairs[0][0].PeriodID)
	assert.Equal(t, "p2", pairs[0][1].PeriodID)
}

func TestCommissionFor(t *testing.T) {
	ch := channelWithPeriods()
	assert.Equal(t, PriceTriple{}, CommissionFor(ch))

	ch.Commission = &PriceTriple{Adult: 500, Child: 250}
	assert.Equal(t, int64(500), CommissionFor(ch).Adult)
}
