// Package tariff implements the time-of-use accounting rules for a
// single residential installation: the 96-slot off/mid/peak schedule,
// the utility holiday calendar, the seasonal rate table, and the cost
// calculator that turns classified watt-hour samples into dollars.
package tariff

import "time"

// Bucket is one of the three TOU price periods.
type Bucket int

const (
	BucketOff Bucket = iota
	BucketMid
	BucketPeak
)

func (b Bucket) String() string {
	switch b {
	case BucketMid:
		return "mid"
	case BucketPeak:
		return "peak"
	default:
		return "off"
	}
}

// SlotsPerDay is the number of fixed 15-minute intervals in a day.
// Slot i covers 00:00 + i*15min.
const SlotsPerDay = 96

// Weekday slot boundaries. These encode the utility's published rate
// periods (mid-peak 13:00-15:00, on-peak 15:00-19:00) and are asserted
// configuration constants, not derived from any formula.
const (
	midStart  = 52
	peakStart = 60
	peakEnd   = 76
)

// Classification assigns each of the day's 96 slots to a bucket.
type Classification [SlotsPerDay]Bucket

// Indices returns the slot indices assigned to bucket b, in ascending
// order.
func (c Classification) Indices(b Bucket) []int {
	var out []int
	for i, got := range c {
		if got == b {
			out = append(out, i)
		}
	}
	return out
}

// Classify partitions the day containing t into TOU buckets. Weekend
// days and holidays are entirely off-peak; this check takes precedence
// over the weekday split unconditionally. Ordinary weekdays use the
// fixed slot boundaries above.
func Classify(t time.Time, cal *HolidayCalendar) Classification {
	var c Classification // zero value is all BucketOff

	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return c
	}
	if cal != nil && cal.Contains(t) {
		return c
	}

	for i := midStart; i < peakStart; i++ {
		c[i] = BucketMid
	}
	for i := peakStart; i < peakEnd; i++ {
		c[i] = BucketPeak
	}
	return c
}
