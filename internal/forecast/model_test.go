package forecast

import (
	"testing"
	"time"
)

func TestPointsJoinsAndSorts(t *testing.T) {
	r := Result{
		Watts: map[string]float64{
			"2024-06-12 13:00:00": 5200,
			"2024-06-12 12:00:00": 4500,
			"2024-06-12 14:00:00": 4100, // no watt_hours entry
			"not a timestamp":     1,
		},
		WattHours: map[string]float64{
			"2024-06-12 12:00:00": 1125,
			"2024-06-12 13:00:00": 2425,
		},
	}

	points := r.Points()
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	if !points[0].Time.Before(points[1].Time) {
		t.Errorf("points not in chronological order: %v", points)
	}
	if points[0].Watts != 4500 || points[0].WattHours != 1125 {
		t.Errorf("first point: %+v", points[0])
	}
}

func TestDayTotalsAcceptsBothKeyForms(t *testing.T) {
	r := Result{
		WattHoursDay: map[string]float64{
			"2024-06-13 00:00:00": 29500,
			"2024-06-12":          31000,
		},
	}

	days := r.DayTotals()
	if len(days) != 2 {
		t.Fatalf("got %d days, want 2", len(days))
	}
	want := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)
	if !days[0].Date.Equal(want) {
		t.Errorf("first day: got %v, want %v", days[0].Date, want)
	}
	if days[0].WattHours != 31000 || days[1].WattHours != 29500 {
		t.Errorf("totals: %+v", days)
	}
}

func TestSolarDeclinationBounds(t *testing.T) {
	// Near the solstices the declination approaches its extremes.
	summer := SolarDeclination(time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC))
	winter := SolarDeclination(time.Date(2024, time.December, 21, 0, 0, 0, 0, time.UTC))
	if summer < 23 || summer > 23.5 {
		t.Errorf("summer solstice declination: %f", summer)
	}
	if winter > -23 || winter < -23.5 {
		t.Errorf("winter solstice declination: %f", winter)
	}
}
