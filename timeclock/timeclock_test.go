package timeclock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinutes(t *testing.T) {
	assert.Equal(t, 510, Minutes(Punch{In: "08:30", Out: "17:00"}))
	assert.Equal(t, 0, Minutes(Punch{In: "08:30"}))          // still clocked in
	assert.Equal(t, 0, Minutes(Punch{In: "17:00", Out: "08:30"})) // inverted pair
	assert.Equal(t, 0, Minutes(Punch{In: "8 am", Out: "5 pm"}))
}

func TestMonthlyTotals(t *testing.T) {
	punches := []Punch{
		{StaffID: "s1", Date: "2025-06-01", In: "09:00", Out: "17:00"},
		{StaffID: "s1", Date: "2025-06-02", In: "09:00", Out: "12:00"},
		{StaffID: "s1", Date: "2025-06-02", In: "13:00", Out: "17:00"}, // split shift, same day
		{StaffID: "s2", Date: "2025-06-01", In: "10:00", Out: "15:00"},
		{StaffID: "s2", Date: "2025-06-03", In: "10:00"}, // open punch
	}

	totals := MonthlyTotals(punches)

	assert.Equal(t, 2, totals["s1"].Days)
	assert.Equal(t, 480+180+240, totals["s1"].Minutes)

	assert.Equal(t, 2, totals["s2"].Days)
	assert.Equal(t, 300, totals["s2"].Minutes)
}

func TestMonthlyTotalsEmpty(t *testing.T) {
	assert.Empty(t, MonthlyTotals(nil))
}

func TestMonthOf(t *testing.T) {
	assert.Equal(t, "2025-06", MonthOf("2025-06-15"))
	assert.Equal(t, "bad", MonthOf("bad"))
}

func TestValidClock(t *testing.T) {
	assert.True(t, ValidClock("08:30"))
	assert.False(t, ValidClock("25:00"))
	assert.False(t, ValidClock(""))
}
