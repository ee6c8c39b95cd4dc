package tariff

import (
	"sync"
	"time"
)

// HolidayCalendar answers whether a date is one of the six utility
// holidays (New Year's Day, Memorial Day, Independence Day, Labor Day,
// Thanksgiving, Christmas). The date table for a calendar year is
// computed once and memoized; construct a single calendar at startup
// and pass it to consumers.
type HolidayCalendar struct {
	mu    sync.RWMutex
	years map[int]map[time.Time]struct{}
}

func NewHolidayCalendar() *HolidayCalendar {
	return &HolidayCalendar{years: make(map[int]map[time.Time]struct{})}
}

// Contains reports whether t falls on a holiday. Only the calendar date
// matters; the time of day and location of t are ignored.
func (c *HolidayCalendar) Contains(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	c.mu.RLock()
	table, ok := c.years[t.Year()]
	c.mu.RUnlock()

	if !ok {
		c.mu.Lock()
		table, ok = c.years[t.Year()]
		if !ok {
			table = holidaysForYear(t.Year())
			c.years[t.Year()] = table
		}
		c.mu.Unlock()
	}

	_, ok = table[day]
	return ok
}

func holidaysForYear(year int) map[time.Time]struct{} {
	days := []time.Time{
		time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		lastWeekdayOf(year, time.May, time.Monday),       // Memorial Day
		time.Date(year, time.July, 4, 0, 0, 0, 0, time.UTC),
		nthWeekdayOf(year, time.September, time.Monday, 1), // Labor Day
		nthWeekdayOf(year, time.November, time.Thursday, 4), // Thanksgiving
		time.Date(year, time.December, 25, 0, 0, 0, 0, time.UTC),
	}

	table := make(map[time.Time]struct{}, len(days))
	for _, d := range days {
		table[d] = struct{}{}
	}
	return table
}

// nthWeekdayOf returns the nth occurrence (1-based) of a weekday in the
// given month.
func nthWeekdayOf(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset+(n-1)*7)
}

// lastWeekdayOf returns the final occurrence of a weekday in the given
// month.
func lastWeekdayOf(year int, month time.Month, weekday time.Weekday) time.Time {
	d := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	offset := (int(d.Weekday()) - int(weekday) + 7) % 7
	return d.AddDate(0, 0, -offset)
}
