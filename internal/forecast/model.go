// Package forecast fetches solar production estimates from
// forecast.solar with a layered fallback chain: authenticated endpoint,
// public endpoint, then the last-known-good cached payload.
package forecast

import (
	"sort"
	"time"
)

// Provenance records which source actually supplied the current
// forecast, so staleness is always attributable.
type Provenance string

const (
	ProvenancePersonal Provenance = "Personal"
	ProvenancePublic   Provenance = "Public"
	ProvenanceCached   Provenance = "Cached"
)

// Payload is the raw upstream response body.
type Payload struct {
	Result Result `json:"result"`
}

// Result carries two parallel per-slot maps plus a per-day total map,
// all keyed by "2006-01-02 15:04:05" timestamp strings.
type Result struct {
	Watts        map[string]float64 `json:"watts"`
	WattHours    map[string]float64 `json:"watt_hours"`
	WattHoursDay map[string]float64 `json:"watt_hours_day"`
}

// Point is one forecast slot with both instantaneous power and
// accumulated energy.
type Point struct {
	Time      time.Time `json:"time"`
	Watts     float64   `json:"watts"`
	WattHours float64   `json:"wattHours"`
}

// DayTotal is one day's forecast energy total.
type DayTotal struct {
	Date      time.Time `json:"date"`
	WattHours float64   `json:"wattHours"`
}

const timestampLayout = "2006-01-02 15:04:05"

// Points joins the watts and watt-hours maps on timestamps present in
// both, in chronological order. Keys that fail to parse or appear in
// only one map are skipped.
func (r Result) Points() []Point {
	points := make([]Point, 0, len(r.Watts))
	for key, watts := range r.Watts {
		wh, ok := r.WattHours[key]
		if !ok {
			continue
		}
		ts, err := time.Parse(timestampLayout, key)
		if err != nil {
			continue
		}
		points = append(points, Point{Time: ts, Watts: watts, WattHours: wh})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })
	return points
}

// DayTotals returns the per-day energy totals in chronological order.
func (r Result) DayTotals() []DayTotal {
	days := make([]DayTotal, 0, len(r.WattHoursDay))
	for key, wh := range r.WattHoursDay {
		ts, err := time.Parse("2006-01-02", key)
		if err != nil {
			// Some responses key days with a full timestamp.
			ts, err = time.Parse(timestampLayout, key)
			if err != nil {
				continue
			}
		}
		days = append(days, DayTotal{Date: ts, WattHours: wh})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}
