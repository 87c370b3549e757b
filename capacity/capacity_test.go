package capacity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryCapacityModeA(t *testing.T) {
	// 2 adults + 2 children at 0.5 + infant at 0
	got := EntryCapacity(2, 2, 1, ModeA, "Pelican")
	assert.Equal(t, 3.0, got)

	// mode A ignores vessel identity
	assert.Equal(t, got, EntryCapacity(2, 2, 1, ModeA, "Kingfisher"))
}

func TestEntryCapacityModeB(t *testing.T) {
	// reduced-capacity-eligible vessel: child weighs 0.75
	assert.Equal(t, 3.5, EntryCapacity(2, 2, 0, ModeB, "Kingfisher"))
	assert.Equal(t, 3.5, EntryCapacity(2, 2, 0, ModeB, "Albatross"))

	// other vessels keep 0.5 even in mode B
	assert.Equal(t, 3.0, EntryCapacity(2, 2, 0, ModeB, "Pelican"))
}

func TestInfantsNeverConsumeSeats(t *testing.T) {
	assert.Equal(t, 0.0, EntryCapacity(0, 0, 5, ModeA, "Pelican"))
	assert.Equal(t, 0.0, EntryCapacity(0, 0, 5, ModeB, "Kingfisher"))
}

func TestUtilizationRateRounds(t *testing.T) {
	assert.Equal(t, 50, UtilizationRate(6, 12))
	assert.Equal(t, 63, UtilizationRate(7.5, 12)) // 62.5 rounds up
	assert.Equal(t, 0, UtilizationRate(3, 0))
}

func TestRemainingClampsAtZero(t *testing.T) {
	assert.Equal(t, 0.0, Remaining(15, 12))
	assert.True(t, IsOverCapacity(15, 12))

	assert.Equal(t, 4.5, Remaining(7.5, 12))
	assert.False(t, IsOverCapacity(7.5, 12))
	assert.False(t, IsOverCapacity(12, 12))
}

func TestSeatsOfUnknownVessel(t *testing.T) {
	assert.Equal(t, 0, SeatsOf("Nautilus"))
	assert.Equal(t, 20, SeatsOf("Pelican"))
}
