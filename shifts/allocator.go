package shifts

import (
	"cmp"
	"slices"
	"time"

	"seaops/utils"
)

// Role is an explicit staff role. Roles are exact enum values; the
// console validates them at staff entry.
type Role string

const (
	RoleCaptain   Role = "captain"
	RoleBeach     Role = "beach"
	RoleReception Role = "reception"
)

func Roles() []Role {
	return []Role{RoleCaptain, RoleBeach, RoleReception}
}

// StaffMember is one schedulable person.
type StaffMember struct {
	StaffID   string `json:"staffid" bson:"staffid"`
	Name      string `json:"name" bson:"name"`
	Role      Role   `json:"role" bson:"role"`
	CreatedAt int64  `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}

// RoleCounts is the number of staff wanted per role on a normal day.
type RoleCounts map[Role]int

// DefaultRoleCounts covers a normal operating day.
var DefaultRoleCounts = RoleCounts{RoleCaptain: 2, RoleBeach: 3, RoleReception: 2}

// Mark is a day's schedule entry for one person.
type Mark string

const (
	MarkWorking Mark = "working"
	MarkRest    Mark = "rest"
)

const (
	maxConsecutiveDays = 5
	targetRatio        = 0.7
	targetSlack        = 3
)

// MonthPlan is the allocator's output: one mark per staff member per day
// plus final workday totals. Each generation run owns its own plan; no
// state survives between runs.
type MonthPlan struct {
	Month         string                  `json:"month" bson:"month"` // yyyy-MM
	Schedule      map[string]map[int]Mark `json:"schedule" bson:"schedule"`
	WorkDaysCount map[string]int          `json:"workDaysCount" bson:"workDaysCount"`
	TargetDays    int                     `json:"targetDays" bson:"targetDays"`
	GeneratedAt   int64                   `json:"generatedAt,omitempty" bson:"generatedAt,omitempty"`
}

// GenerateSchedule greedily staffs every day of a month. Days with a
// cruise ship in port put everyone to work and bypass the consecutive-day
// and target caps. On normal days each role is filled independently from
// eligible staff, fewest workdays first; when a role runs out of eligible
// people the day is simply left short (ShortfallReport surfaces it).
func GenerateSchedule(month string, staff []StaffMember, cruiseDays map[int]bool, required RoleCounts) (MonthPlan, error) {
	days, err := utils.DaysInMonth(month)
	if err != nil {
		return MonthPlan{}, err
	}
	if required == nil {
		required = DefaultRoleCounts
	}

	plan := MonthPlan{
		Month:         month,
		Schedule:      make(map[string]map[int]Mark, len(staff)),
		WorkDaysCount: make(map[string]int, len(staff)),
		TargetDays:    int(float64(days) * targetRatio),
		GeneratedAt:   time.Now().Unix(),
	}
	consecutive := make(map[string]int, len(staff))
	for _, s := range staff {
		plan.Schedule[s.StaffID] = make(map[int]Mark, days)
	}

	for day := 1; day <= days; day++ {
		if cruiseDays[day] {
			// all hands on deck
			for _, s := range staff {
				plan.Schedule[s.StaffID][day] = MarkWorking
				plan.WorkDaysCount[s.StaffID]++
				consecutive[s.StaffID]++
			}
			continue
		}

		working := make(map[string]bool, len(staff))
		for _, role := range Roles() {
			var eligible []StaffMember
			for _, s := range staff {
				if s.Role != role {
					continue
				}
				if consecutive[s.StaffID] >= maxConsecutiveDays {
					continue
				}
				if plan.WorkDaysCount[s.StaffID] > plan.TargetDays+targetSlack {
					continue
				}
				eligible = append(eligible, s)
			}

			slices.SortStableFunc(eligible, func(a, b StaffMember) int {
				if c := cmp.Compare(plan.WorkDaysCount[a.StaffID], plan.WorkDaysCount[b.StaffID]); c != 0 {
					return c
				}
				return cmp.Compare(consecutive[a.StaffID], consecutive[b.StaffID])
			})

			for i := 0; i < len(eligible) && i < required[role]; i++ {
				working[eligible[i].StaffID] = true
			}
		}

		for _, s := range staff {
			if working[s.StaffID] {
				plan.Schedule[s.StaffID][day] = MarkWorking
				plan.WorkDaysCount[s.StaffID]++
				consecutive[s.StaffID]++
			} else {
				plan.Schedule[s.StaffID][day] = MarkRest
				consecutive[s.StaffID] = 0
			}
		}
	}

	return plan, nil
}
