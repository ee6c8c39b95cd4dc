package tariff

// Totals holds the per-bucket usage and cost for one day of samples.
type Totals struct {
	OffUsage  WattHours `json:"offUsage"`
	MidUsage  WattHours `json:"midUsage"`
	PeakUsage WattHours `json:"peakUsage"`

	OffCost  Dollars `json:"offTotal"`
	MidCost  Dollars `json:"midTotal"`
	PeakCost Dollars `json:"peakTotal"`

	// Usage is the total watt-hours across all buckets; Total is the
	// total dollar value. Both always equal the sum of their bucket
	// components.
	Usage WattHours `json:"productionNum"`
	Total Dollars   `json:"total"`
}

// Calculate sums classified samples into bucket usage and applies the
// seasonal rates. Samples are watt-hours per 15-minute slot; a nil
// sample is a missing reading and counts as zero. Rounding is left to
// the display layer; all values keep full floating precision.
func Calculate(samples []*float64, cls Classification, rates RateSchedule, season Season) Totals {
	var t Totals

	for i, s := range samples {
		if s == nil || i >= SlotsPerDay {
			continue
		}
		v := WattHours(*s)
		switch cls[i] {
		case BucketMid:
			t.MidUsage += v
		case BucketPeak:
			t.PeakUsage += v
		default:
			t.OffUsage += v
		}
	}

	t.OffCost = cost(t.OffUsage, rates.Rate(BucketOff, season))
	t.MidCost = cost(t.MidUsage, rates.Rate(BucketMid, season))
	t.PeakCost = cost(t.PeakUsage, rates.Rate(BucketPeak, season))

	t.Usage = t.OffUsage + t.MidUsage + t.PeakUsage
	t.Total = t.OffCost + t.MidCost + t.PeakCost
	return t
}

// cost converts a bucket's watt-hour usage to dollars. This is the only
// place watt-hours and cents leave their native units.
func cost(usage WattHours, rate CentsPerKWh) Dollars {
	return Dollars(float64(usage) / 1000 * float64(rate) / 100)
}
