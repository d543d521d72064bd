package rewards

// CycleLength is the number of cells in the visual check-in calendar.
const CycleLength = 7

// Entry is one row of the reward calendar. Base rows use the cycle day;
// milestone rows use the absolute streak.
type Entry struct {
	Day       int
	Gems      int
	Milestone bool
	Label     string
}

var baseTable = [CycleLength]Entry{
	{Day: 1, Gems: 5},
	{Day: 2, Gems: 5},
	{Day: 3, Gems: 10},
	{Day: 4, Gems: 10},
	{Day: 5, Gems: 15},
	{Day: 6, Gems: 15},
	{Day: 7, Gems: 50, Milestone: true, Label: "Week"},
}

var milestones = []Entry{
	{Day: 7, Gems: 50, Milestone: true, Label: "Week"},
	{Day: 14, Gems: 75, Milestone: true, Label: "2 Weeks"},
	{Day: 21, Gems: 100, Milestone: true, Label: "3 Weeks"},
	{Day: 30, Gems: 150, Milestone: true, Label: "Month"},
	{Day: 100, Gems: 500, Milestone: true, Label: "100 Days!"},
}

// CycleDay maps a streak count onto the 1..7 calendar cell.
func CycleDay(n int) int {
	m := (n - 1) % CycleLength
	if m < 0 {
		m += CycleLength
	}
	return m + 1
}

// BaseReward returns the base row for a cycle day, falling back to day 1.
func BaseReward(cycleDay int) Entry {
	if cycleDay < 1 || cycleDay > CycleLength {
		return baseTable[0]
	}
	return baseTable[cycleDay-1]
}

// Table returns the seven base rows.
func Table() []Entry {
	out := make([]Entry, CycleLength)
	copy(out, baseTable[:])
	return out
}

// Milestones returns the absolute-streak milestone rows in ascending order.
func Milestones() []Entry {
	out := make([]Entry, len(milestones))
	copy(out, milestones)
	return out
}

// MilestoneAt returns the milestone for an exact streak value.
func MilestoneAt(streak int) (Entry, bool) {
	for _, m := range milestones {
		if m.Day == streak {
			return m, true
		}
	}
	return Entry{}, false
}

// NextMilestone returns the first milestone above streak.
func NextMilestone(streak int) (Entry, bool) {
	for _, m := range milestones {
		if m.Day > streak {
			return m, true
		}
	}
	return Entry{}, false
}
