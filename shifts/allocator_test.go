package shifts

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeStaff(n int, role Role) []StaffMember {
	staff := make([]StaffMember, n)
	for i := range staff {
		staff[i] = StaffMember{
			StaffID: fmt.Sprintf("%s-%d", role, i+1),
			Name:    fmt.Sprintf("%s %d", role, i+1),
			Role:    role,
		}
	}
	return staff
}

func TestGenerateScheduleRejectsBadMonth(t *testing.T) {
	_, err := GenerateSchedule("not-a-month", nil, nil, nil)
	assert.Error(t, err)
}

func TestConsecutiveDayCap(t *testing.T) {
	// one captain asked for every day: after 5 straight working days the
	// 6th must be rest
	staff := makeStaff(1, RoleCaptain)
	plan, err := GenerateSchedule("2025-06", staff, nil, RoleCounts{RoleCaptain: 1})
	require.NoError(t, err)

	marks := plan.Schedule["captain-1"]
	streak := 0
	for day := 1; day <= 30; day++ {
		if marks[day] == MarkWorking {
			streak++
			assert.LessOrEqual(t, streak, 5, "day %d extends a streak past 5", day)
		} else {
			streak = 0
		}
	}

	// days 1-5 working, day 6 rest
	for day := 1; day <= 5; day++ {
		assert.Equal(t, MarkWorking, marks[day])
	}
	assert.Equal(t, MarkRest, marks[6])
}

func TestCruiseDayOverridesAllCaps(t *testing.T) {
	staff := makeStaff(1, RoleCaptain)
	// day 6 would normally be forced rest after a 5-day streak
	cruise := map[int]bool{6: true}

	plan, err := GenerateSchedule("2025-06", staff, cruise, RoleCounts{RoleCaptain: 1})
	require.NoError(t, err)

	marks := plan.Schedule["captain-1"]
	for day := 1; day <= 5; day++ {
		assert.Equal(t, MarkWorking, marks[day])
	}
	assert.Equal(t, MarkWorking, marks[6], "cruise day forces working past the streak cap")
	assert.Equal(t, MarkRest, marks[7], "streak of 6 forces rest on the next normal day")
}

func TestCruiseDayAssignsEveryone(t *testing.T) {
	staff := append(makeStaff(3, RoleCaptain), makeStaff(4, RoleBeach)...)
	staff = append(staff, makeStaff(3, RoleReception)...)

	plan, err := GenerateSchedule("2025-06", staff, map[int]bool{15: true}, RoleCounts{
		RoleCaptain: 1, RoleBeach: 1, RoleReception: 1,
	})
	require.NoError(t, err)

	for _, s := range staff {
		assert.Equal(t, MarkWorking, plan.Schedule[s.StaffID][15], "staff %s on cruise day", s.StaffID)
	}
}

func TestTargetBalancing(t *testing.T) {
	// two captains, one needed per day: workdays should split roughly evenly
	staff := makeStaff(2, RoleCaptain)
	plan, err := GenerateSchedule("2025-06", staff, nil, RoleCounts{RoleCaptain: 1})
	require.NoError(t, err)

	a := plan.WorkDaysCount["captain-1"]
	b := plan.WorkDaysCount["captain-2"]
	assert.Equal(t, 30, a+b, "exactly one captain per day")
	assert.LessOrEqual(t, a-b, 2)
	assert.LessOrEqual(t, b-a, 2)
}

func TestTargetCeilingLimitsWorkDays(t *testing.T) {
	staff := makeStaff(1, RoleReception)
	plan, err := GenerateSchedule("2025-06", staff, nil, RoleCounts{RoleReception: 1})
	require.NoError(t, err)

	// target is floor(30*0.7)=21; ceiling 24 plus the one day selected at
	// exactly the ceiling
	assert.Equal(t, 21, plan.TargetDays)
	assert.LessOrEqual(t, plan.WorkDaysCount["reception-1"], 25)
}

func TestEmptyStaffProducesEmptySchedule(t *testing.T) {
	plan, err := GenerateSchedule("2025-06", nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, plan.Schedule)
	assert.Empty(t, plan.WorkDaysCount)
}

func TestUnderstaffedDaysAreSilent(t *testing.T) {
	// required 2 captains but only 1 exists: generation succeeds, the
	// shortfall report flags every day
	staff := makeStaff(1, RoleCaptain)
	required := RoleCounts{RoleCaptain: 2}

	plan, err := GenerateSchedule("2025-06", staff, nil, required)
	require.NoError(t, err)

	shortfalls := ShortfallReport(plan, staff, required, 30)
	require.NotEmpty(t, shortfalls)
	for _, sf := range shortfalls {
		if sf.Role == RoleCaptain {
			assert.LessOrEqual(t, sf.Assigned, 1)
			assert.Equal(t, 2, sf.Required)
		}
	}
}

func TestShortfallReportCleanWhenFullyStaffed(t *testing.T) {
	staff := append(makeStaff(3, RoleCaptain), makeStaff(3, RoleBeach)...)
	staff = append(staff, makeStaff(3, RoleReception)...)
	required := RoleCounts{RoleCaptain: 1, RoleBeach: 1, RoleReception: 1}

	plan, err := GenerateSchedule("2025-06", staff, nil, required)
	require.NoError(t, err)

	shortfalls := ShortfallReport(plan, staff, required, 30)
	assert.Empty(t, shortfalls)
}

func TestDeterministicGeneration(t *testing.T) {
	staff := append(makeStaff(2, RoleCaptain), makeStaff(2, RoleBeach)...)
	required := RoleCounts{RoleCaptain: 1, RoleBeach: 1}
	cruise := map[int]bool{10: true, 20: true}

	first, err := GenerateSchedule("2025-07", staff, cruise, required)
	require.NoError(t, err)
	second, err := GenerateSchedule("2025-07", staff, cruise, required)
	require.NoError(t, err)

	assert.Equal(t, first.Schedule, second.Schedule)
	assert.Equal(t, first.WorkDaysCount, second.WorkDaysCount)
}
