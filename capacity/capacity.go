package capacity

import "math"

// Mode selects which child-weight formula applies to a trip.
type Mode string

const (
	ModeA Mode = "A"
	ModeB Mode = "B"
)

// The fleet is a fixed set of vessels; seat counts are configuration,
// not user-editable documents.
var SeatCapacity = map[string]int{
	"Pelican":    20,
	"Blue Heron": 16,
	"Kingfisher": 10,
	"Albatross":  12,
}

// Vessels where a child counts 0.75 of a seat under mode B.
var reducedEligible = map[string]bool{
	"Kingfisher": true,
	"Albatross":  true,
}

// VesselNames returns the fleet in a fixed display order.
func VesselNames() []string {
	return []string{"Pelican", "Blue Heron", "Kingfisher", "Albatross"}
}

// SeatsOf returns the seat capacity of a vessel, 0 for unknown names.
func SeatsOf(vessel string) int {
	return SeatCapacity[vessel]
}

// ChildWeight returns the seat-equivalent of one child. Mode A is a flat
// 0.5; mode B raises it to 0.75 on the reduced-capacity-eligible vessels.
func ChildWeight(mode Mode, vessel string) float64 {
	if mode == ModeB && reducedEligible[vessel] {
		return 0.75
	}
	return 0.5
}

// EntryCapacity converts one passenger group into seat-equivalents.
// Adults count 1.0, infants 0.
func EntryCapacity(adult, child, infant int, mode Mode, vessel string) float64 {
	_ = infant
	return float64(adult) + float64(child)*ChildWeight(mode, vessel)
}

// UtilizationRate is the integer percent of seats used.
func UtilizationRate(used float64, seats int) int {
	if seats <= 0 {
		return 0
	}
	return int(math.Round(used / float64(seats) * 100))
}

// Remaining is the unclaimed seat capacity, clamped non-negative.
// Overbooking is reported through IsOverCapacity, never as a negative
// remainder.
func Remaining(used float64, seats int) float64 {
	if rem := float64(seats) - used; rem > 0 {
		return rem
	}
	return 0
}

// IsOverCapacity reports whether a trip is overbooked. Observational
// only; nothing here rejects the booking.
func IsOverCapacity(used float64, seats int) bool {
	return used > float64(seats)
}
