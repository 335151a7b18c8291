package engine

import (
	"testing"
	"time"

	"github.com/lazypower/meetkeeper/internal/store"
)

func TestMonthGridSize(t *testing.T) {
	cases := []struct {
		year        int
		month       time.Month
		daysInMonth int
	}{
		{2024, time.January, 31},
		{2024, time.February, 29}, // leap year
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, tc := range cases {
		grid := MonthGrid(tc.year, tc.month, nil, today)
		if len(grid) != GridCells {
			t.Errorf("%d-%d: %d cells, want %d", tc.year, tc.month, len(grid), GridCells)
		}
		inMonth := 0
		for _, d := range grid {
			if d.InMonth {
				inMonth++
			}
		}
		if inMonth != tc.daysInMonth {
			t.Errorf("%d-%d: %d in-month cells, want %d", tc.year, tc.month, inMonth, tc.daysInMonth)
		}
	}
}

func TestMonthGridStartsMonday(t *testing.T) {
	// April 2024 begins on a Monday: no leading cells from March
	grid := MonthGrid(2024, time.April, nil, today)
	if grid[0].Date != "2024-04-01" {
		t.Errorf("first cell = %s, want 2024-04-01", grid[0].Date)
	}

	// September 2024 begins on a Sunday: the week opens on Monday Aug 26
	grid = MonthGrid(2024, time.September, nil, today)
	if grid[0].Date != "2024-08-26" {
		t.Errorf("first cell = %s, want 2024-08-26", grid[0].Date)
	}
	if grid[6].Date != "2024-09-01" {
		t.Errorf("Sunday cell = %s, want 2024-09-01", grid[6].Date)
	}
}

func TestGridRange(t *testing.T) {
	start, end := GridRange(2024, time.September, time.UTC)
	if got := start.Format("2006-01-02"); got != "2024-08-26" {
		t.Errorf("start = %s, want 2024-08-26", got)
	}
	if got := end.Format("2006-01-02"); got != "2024-10-06" {
		t.Errorf("end = %s, want 2024-10-06", got)
	}
	if end.Sub(start) != time.Duration(GridCells-1)*24*time.Hour {
		t.Errorf("range spans %v", end.Sub(start))
	}
}

func TestMonthGridBucketsMeetings(t *testing.T) {
	meetings := []store.Meeting{
		{ID: 1, PersonID: 1, Type: store.TypeCoffee, Date: "2024-04-10"},
		{ID: 2, PersonID: 2, Type: store.TypeLunch, Date: "2024-04-10"},
		{ID: 3, PersonID: 1, Type: store.TypeCoffee, Date: "2024-04-15"},
		{ID: 4, PersonID: 1, Type: store.TypeCoffee, Date: "2024-03-31"}, // outside April's grid
	}
	grid := MonthGrid(2024, time.April, meetings, today)

	byDate := make(map[string]Day, len(grid))
	for _, d := range grid {
		byDate[d.Date] = d
	}

	if d := byDate["2024-04-10"]; len(d.Meetings) != 2 || d.Action != ActionDayList {
		t.Errorf("04-10: %d meetings, action %s; want 2, daylist", len(d.Meetings), d.Action)
	}
	if d := byDate["2024-04-15"]; len(d.Meetings) != 1 || d.Action != ActionDetail {
		t.Errorf("04-15: %d meetings, action %s; want 1, detail", len(d.Meetings), d.Action)
	}
	if d := byDate["2024-04-20"]; len(d.Meetings) != 0 || d.Action != ActionCreate {
		t.Errorf("04-20: %d meetings, action %s; want 0, create", len(d.Meetings), d.Action)
	}
	// March 31 is outside April's grid (April 2024 opens the month on Monday the 1st)
	if _, ok := byDate["2024-03-31"]; ok {
		t.Error("2024-03-31 should not appear in April's grid")
	}
}

func TestMonthGridToday(t *testing.T) {
	grid := MonthGrid(2024, time.April, nil, today)
	var marked []string
	for _, d := range grid {
		if d.Today {
			marked = append(marked, d.Date)
		}
	}
	if len(marked) != 1 || marked[0] != "2024-04-01" {
		t.Errorf("today cells = %v, want [2024-04-01]", marked)
	}

	// Other months never mark today
	grid = MonthGrid(2024, time.June, nil, today)
	for _, d := range grid {
		if d.Today {
			t.Errorf("unexpected today flag on %s", d.Date)
		}
	}
}

func TestDispatchDay(t *testing.T) {
	one := []store.Meeting{{ID: 1}}
	two := []store.Meeting{{ID: 1}, {ID: 2}}

	if got := DispatchDay(nil); got != ActionCreate {
		t.Errorf("empty day = %s, want create", got)
	}
	if got := DispatchDay(one); got != ActionDetail {
		t.Errorf("one meeting = %s, want detail", got)
	}
	if got := DispatchDay(two); got != ActionDayList {
		t.Errorf("two meetings = %s, want daylist", got)
	}
}
