package engine

import (
	"time"

	"github.com/lazypower/meetkeeper/internal/store"
)

// GridCells is the fixed size of a month view: 6 weeks of 7 days.
const GridCells = 42

// DayAction is what a click on a calendar day should do, based on how many
// meetings the day holds.
type DayAction string

const (
	ActionCreate  DayAction = "create"  // no meetings: create one on this date
	ActionDetail  DayAction = "detail"  // exactly one: show its detail
	ActionDayList DayAction = "daylist" // several: show the day's list
)

// Day is one calendar grid cell.
type Day struct {
	Date     string          `json:"date"` // YYYY-MM-DD
	Day      int             `json:"day"`
	InMonth  bool            `json:"inMonth"`
	Today    bool            `json:"today"`
	Meetings []store.Meeting `json:"meetings,omitempty"`
	Action   DayAction       `json:"action"`
}

// DispatchDay returns the click action for a day holding the given meetings.
func DispatchDay(meetings []store.Meeting) DayAction {
	switch {
	case len(meetings) == 0:
		return ActionCreate
	case len(meetings) == 1:
		return ActionDetail
	default:
		return ActionDayList
	}
}

// GridRange returns the first and last dates the month's grid displays.
// The grid opens on the Monday on or before the 1st and spans 42 days.
func GridRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)

	// Weeks start Monday: shift Sunday (0) to 7, then back up to Monday.
	weekday := int(first.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	start := first.AddDate(0, 0, -(weekday - 1))
	return start, start.AddDate(0, 0, GridCells-1)
}

// MonthGrid produces the 42-cell grid for one visible month: the trailing
// days of the previous month down to the Monday that starts the first week,
// every day of the month, and leading days of the next month to fill six
// weeks. Each cell carries the meetings dated on it.
func MonthGrid(year int, month time.Month, meetings []store.Meeting, today time.Time) []Day {
	byDate := make(map[string][]store.Meeting)
	for _, m := range meetings {
		byDate[m.Date] = append(byDate[m.Date], m)
	}

	start, _ := GridRange(year, month, today.Location())

	todayStr := Midnight(today).Format("2006-01-02")

	grid := make([]Day, 0, GridCells)
	for i := 0; i < GridCells; i++ {
		d := start.AddDate(0, 0, i)
		dateStr := d.Format("2006-01-02")
		dayMeetings := byDate[dateStr]
		grid = append(grid, Day{
			Date:     dateStr,
			Day:      d.Day(),
			InMonth:  d.Month() == month && d.Year() == year,
			Today:    dateStr == todayStr,
			Meetings: dayMeetings,
			Action:   DispatchDay(dayMeetings),
		})
	}
	return grid
}
