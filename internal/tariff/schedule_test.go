package tariff

import (
	"testing"
	"time"
)

func TestClassifyWeekendIsAllOff(t *testing.T) {
	cal := NewHolidayCalendar()

	// A Saturday and a Sunday.
	for _, day := range []time.Time{
		time.Date(2024, time.June, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.June, 9, 0, 0, 0, 0, time.UTC),
	} {
		cls := Classify(day, cal)
		for i, b := range cls {
			if b != BucketOff {
				t.Fatalf("%s slot %d: got %s, want off", day.Weekday(), i, b)
			}
		}
	}
}

func TestClassifyHolidayIsAllOff(t *testing.T) {
	cal := NewHolidayCalendar()

	// All six 2024 holidays fall on weekdays, so the all-off result
	// exercises the holiday rule rather than the weekend rule.
	holidays := []time.Time{
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.May, 27, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.July, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.September, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.November, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.December, 25, 0, 0, 0, 0, time.UTC),
	}
	for _, day := range holidays {
		cls := Classify(day, cal)
		for i, b := range cls {
			if b != BucketOff {
				t.Fatalf("holiday %s slot %d: got %s, want off", day.Format("2006-01-02"), i, b)
			}
		}
	}
}

func TestClassifyWeekdayBoundaries(t *testing.T) {
	cal := NewHolidayCalendar()

	// An ordinary Wednesday.
	day := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)
	cls := Classify(day, cal)

	for i, b := range cls {
		var want Bucket
		switch {
		case i >= 52 && i < 60:
			want = BucketMid
		case i >= 60 && i < 76:
			want = BucketPeak
		default:
			want = BucketOff
		}
		if b != want {
			t.Errorf("slot %d: got %s, want %s", i, b, want)
		}
	}
}

func TestClassificationPartitionsAllSlots(t *testing.T) {
	cal := NewHolidayCalendar()
	day := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)
	cls := Classify(day, cal)

	seen := make(map[int]int)
	for _, b := range []Bucket{BucketOff, BucketMid, BucketPeak} {
		for _, i := range cls.Indices(b) {
			seen[i]++
		}
	}
	if len(seen) != SlotsPerDay {
		t.Fatalf("expected %d classified slots, got %d", SlotsPerDay, len(seen))
	}
	for i, n := range seen {
		if n != 1 {
			t.Errorf("slot %d classified %d times", i, n)
		}
	}

	if got := len(cls.Indices(BucketOff)); got != 72 {
		t.Errorf("off slot count: got %d, want 72", got)
	}
	if got := len(cls.Indices(BucketMid)); got != 8 {
		t.Errorf("mid slot count: got %d, want 8", got)
	}
	if got := len(cls.Indices(BucketPeak)); got != 16 {
		t.Errorf("peak slot count: got %d, want 16", got)
	}
}
