package tariff

import (
	"testing"
	"time"
)

func TestFloatingHolidayDates(t *testing.T) {
	cases := []struct {
		name string
		date time.Time
	}{
		{"memorial day 2024", time.Date(2024, time.May, 27, 0, 0, 0, 0, time.UTC)},
		{"memorial day 2025", time.Date(2025, time.May, 26, 0, 0, 0, 0, time.UTC)},
		{"labor day 2024", time.Date(2024, time.September, 2, 0, 0, 0, 0, time.UTC)},
		{"labor day 2025", time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)},
		{"thanksgiving 2024", time.Date(2024, time.November, 28, 0, 0, 0, 0, time.UTC)},
		{"thanksgiving 2025", time.Date(2025, time.November, 27, 0, 0, 0, 0, time.UTC)},
	}

	cal := NewHolidayCalendar()
	for _, tc := range cases {
		if !cal.Contains(tc.date) {
			t.Errorf("%s: expected %s to be a holiday", tc.name, tc.date.Format("2006-01-02"))
		}
	}
}

func TestContainsIgnoresTimeOfDay(t *testing.T) {
	cal := NewHolidayCalendar()
	noon := time.Date(2024, time.July, 4, 12, 30, 0, 0, time.UTC)
	if !cal.Contains(noon) {
		t.Fatalf("expected July 4 noon to be a holiday")
	}
}

func TestOrdinaryDaysAreNotHolidays(t *testing.T) {
	cal := NewHolidayCalendar()
	for _, d := range []time.Time{
		time.Date(2024, time.July, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.November, 21, 0, 0, 0, 0, time.UTC),
	} {
		if cal.Contains(d) {
			t.Errorf("%s should not be a holiday", d.Format("2006-01-02"))
		}
	}
}
