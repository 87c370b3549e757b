package shifts

// Shortfall is one understaffed role on one day. The allocator never
// fails; this read-only check is how shortfalls surface.
type Shortfall struct {
	Day      int  `json:"day"`
	Role     Role `json:"role"`
	Assigned int  `json:"assigned"`
	Required int  `json:"required"`
}

// ShortfallReport recounts the plan's working marks per role per day and
// lists every day a role came up short of its required count.
func ShortfallReport(plan MonthPlan, staff []StaffMember, required RoleCounts, days int) []Shortfall {
	if required == nil {
		required = DefaultRoleCounts
	}
	roleOf := make(map[string]Role, len(staff))
	for _, s := range staff {
		roleOf[s.StaffID] = s.Role
	}

	shortfalls := []Shortfall{}
	for day := 1; day <= days; day++ {
		assigned := map[Role]int{}
		for staffID, marks := range plan.Schedule {
			if marks[day] == MarkWorking {
				assigned[roleOf[staffID]]++
			}
		}
		for _, role := range Roles() {
			if assigned[role] < required[role] {
				shortfalls = append(shortfalls, Shortfall{
					Day:      day,
					Role:     role,
					Assigned: assigned[role],
					Required: required[role],
				})
			}
		}
	}
	return shortfalls
}
