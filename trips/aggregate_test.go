package trips

import (
	"encoding/json"
	"testing"

	"seaops/capacity"
	"seaops/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleChannel() pricing.SalesChannel {
	return pricing.SalesChannel{
		ChannelID:  "ch1",
		Name:       "Harbor Desk",
		Pricing:    pricing.PriceTriple{Adult: 5000, Child: 2500, Infant: 0},
		Commission: &pricing.PriceTriple{Adult: 500, Child: 250},
	}
}

func TestRecomputeDerived(t *testing.T) {
	e := TripEntry{Adult: 2, Child: 1, Infant: 1, Attendant: "Harbor Desk"}
	got := RecomputeDerived(e, sampleChannel(), "2025-07-01")

	assert.Equal(t, int64(12500), got.Revenue) // 2*5000 + 1*2500
	assert.Equal(t, int64(1250), got.Commission)
	assert.Equal(t, int64(11250), got.Profit)

	// headcounts unchanged
	assert.Equal(t, 2, got.Adult)
}

func TestRecomputeDerivedUsesPeriodPrice(t *testing.T) {
	ch := sampleChannel()
	ch.Periods = []pricing.PricingPeriod{{
		PeriodID: "peak", Start: "2025-08-10", End: "2025-08-20",
		Pricing: pricing.PriceTriple{Adult: 8000, Child: 4000},
	}}

	e := RecomputeDerived(TripEntry{Adult: 1, Child: 1}, ch, "2025-08-15")
	assert.Equal(t, int64(12000), e.Revenue)

	e = RecomputeDerived(TripEntry{Adult: 1, Child: 1}, ch, "2025-08-25")
	assert.Equal(t, int64(7500), e.Revenue)
}

func tripWith(vessel string, mode capacity.Mode, entries ...TripEntry) Trip {
	return Trip{TripID: "t1", Vessel: vessel, Date: "2025-07-01", Time: "10:00",
		CapacityMode: mode, Entries: entries}
}

func TestSummarizeTrip(t *testing.T) {
	trip := tripWith("Albatross", capacity.ModeB,
		TripEntry{Adult: 4, Child: 2, Infant: 1, Revenue: 25000, Commission: 2500, Profit: 22500},
		TripEntry{Adult: 3, Child: 0, Infant: 0, Revenue: 15000, Commission: 0, Profit: 15000},
	)

	s := Summarize(trip)
	assert.Equal(t, 7, s.Adults)
	assert.Equal(t, 2, s.Children)
	assert.Equal(t, 1, s.Infants)
	assert.Equal(t, 2, s.Groups)
	assert.Equal(t, int64(40000), s.Revenue)
	assert.Equal(t, int64(2500), s.Commission)
	assert.Equal(t, int64(37500), s.Profit)

	// 7 adults + 2 children * 0.75 on a reduced-eligible vessel
	assert.Equal(t, 8.5, s.CalculatedCapacity)
	assert.Equal(t, 71, s.UtilizationRate) // 8.5/12 -> 70.83 -> 71
	assert.Equal(t, 3.5, s.RemainingCapacity)
	assert.False(t, s.OverCapacity)
}

func TestSummarizeOverbookedTripClampsRemaining(t *testing.T) {
	trip := tripWith("Kingfisher", capacity.ModeA,
		TripEntry{Adult: 15},
	)

	s := Summarize(trip)
	assert.True(t, s.OverCapacity)
	assert.Equal(t, 0.0, s.RemainingCapacity)
	assert.Equal(t, 150, s.UtilizationRate)
}

func TestVesselSummaryIsSumOfTripSummaries(t *testing.T) {
	dayTrips := []Trip{
		tripWith("Pelican", capacity.ModeA, TripEntry{Adult: 8, Revenue: 40000, Profit: 40000}),
		tripWith("Pelican", capacity.ModeA, TripEntry{Adult: 5, Child: 2, Revenue: 30000, Profit: 29000, Commission: 1000}),
	}

	vs := SummarizeVessel(dayTrips, "Pelican")

	var wantRevenue int64
	var wantUsed float64
	for _, tr := range dayTrips {
		ts := Summarize(tr)
		wantRevenue += ts.Revenue
		wantUsed += ts.CalculatedCapacity
	}
	assert.Equal(t, wantRevenue, vs.Revenue)
	assert.Equal(t, wantUsed, vs.UsedCapacity)
	assert.Equal(t, 2, vs.TripCount)

	// 14 seat-equivalents over 2 trips of 20 seats
	assert.Equal(t, 35, vs.UtilizationRate)
}

func TestFleetSummaryWeightedUtilization(t *testing.T) {
	vesselTrips := map[string][]Trip{
		"Pelican":    {tripWith("Pelican", capacity.ModeA, TripEntry{Adult: 10})},
		"Kingfisher": {tripWith("Kingfisher", capacity.ModeA, TripEntry{Adult: 5})},
	}

	fs := SummarizeFleet(vesselTrips)
	require.Len(t, fs.Vessels, 2)

	assert.Equal(t, 2, fs.TripCount)
	assert.Equal(t, 15.0, fs.UsedCapacity)
	// 15 used / (20 + 10) possible = 50%
	assert.Equal(t, 50, fs.UtilizationRate)

	assert.Equal(t, fs.Revenue, fs.Vessels["Pelican"].Revenue+fs.Vessels["Kingfisher"].Revenue)
}

func TestFleetSummaryIdempotent(t *testing.T) {
	vesselTrips := map[string][]Trip{
		"Albatross": {tripWith("Albatross", capacity.ModeB,
			TripEntry{Adult: 4, Child: 3, Infant: 2, Revenue: 27500, Commission: 2750, Profit: 24750})},
		"Blue Heron": {},
	}

	first, err := json.Marshal(SummarizeFleet(vesselTrips))
	require.NoError(t, err)
	second, err := json.Marshal(SummarizeFleet(vesselTrips))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEmptyTripsProduceZeroSummaries(t *testing.T) {
	assert.Equal(t, 0, SummarizeVessel(nil, "Pelican").TripCount)

	fs := SummarizeFleet(map[string][]Trip{})
	assert.Equal(t, int64(0), fs.Revenue)
	assert.Equal(t, 0, fs.UtilizationRate)
}
