package timeclock

import (
	"strings"
	"time"
)

// Punch is one staff member's clock-in/clock-out pair for a day. Out is
// empty while the punch is still open.
type Punch struct {
	PunchID   string `json:"punchid" bson:"punchid"`
	StaffID   string `json:"staffid" bson:"staffid"`
	Date      string `json:"date" bson:"date"` // yyyy-MM-dd
	In        string `json:"in" bson:"in"`     // HH:MM
	Out       string `json:"out,omitempty" bson:"out,omitempty"`
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`
}

// Minutes returns the worked minutes of a closed punch; open or
// malformed punches count zero.
func Minutes(p Punch) int {
	if p.In == "" || p.Out == "" {
		return 0
	}
	in, err1 := time.Parse("15:04", p.In)
	out, err2 := time.Parse("15:04", p.Out)
	if err1 != nil || err2 != nil {
		return 0
	}
	mins := int(out.Sub(in).Minutes())
	if mins < 0 {
		return 0
	}
	return mins
}

// TimesheetTotal is one staff member's monthly roll-up.
type TimesheetTotal struct {
	StaffID string `json:"staffid"`
	Days    int    `json:"days"`
	Minutes int    `json:"minutes"`
}

// MonthlyTotals reduces a month's punches per staff member. Pure
// summation; open punches contribute a day but no minutes.
func MonthlyTotals(punches []Punch) map[string]TimesheetTotal {
	totals := make(map[string]TimesheetTotal)
	seen := make(map[string]map[string]bool)

	for _, p := range punches {
		t := totals[p.StaffID]
		t.StaffID = p.StaffID
		t.Minutes += Minutes(p)

		if seen[p.StaffID] == nil {
			seen[p.StaffID] = make(map[string]bool)
		}
		if !seen[p.StaffID][p.Date] {
			seen[p.StaffID][p.Date] = true
			t.Days++
		}
		totals[p.StaffID] = t
	}
	return totals
}

// MonthOf extracts "yyyy-MM" from a punch date.
func MonthOf(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// ValidClock reports whether s is a well-formed HH:MM string.
func ValidClock(s string) bool {
	s = strings.TrimSpace(s)
	_, err := time.Parse("15:04", s)
	return err == nil
}
