package tariff

import "time"

// Unit types carried through the accounting pipeline. Usage stays in
// watt-hours and rates stay in cents per kWh until a bucket total is
// finalized, so values from different unit systems cannot be summed by
// accident.
type (
	WattHours   float64
	Dollars     float64
	CentsPerKWh float64
)

// Season selects which half of the rate schedule applies. It is a
// function of the calendar month only; every month belongs to exactly
// one season.
type Season int

const (
	SeasonSummer Season = iota
	SeasonWinter
)

func (s Season) String() string {
	if s == SeasonSummer {
		return "summer"
	}
	return "winter"
}

// SeasonFor returns the season for the month of t. May through October
// is summer; November through April is winter.
func SeasonFor(t time.Time) Season {
	m := t.Month()
	if m >= time.May && m <= time.October {
		return SeasonSummer
	}
	return SeasonWinter
}

// RateSchedule holds the six published TOU rates in cents per kWh.
// It is immutable process-wide configuration.
type RateSchedule struct {
	SummerOff  CentsPerKWh `json:"summer_off"`
	SummerMid  CentsPerKWh `json:"summer_mid"`
	SummerPeak CentsPerKWh `json:"summer_peak"`
	WinterOff  CentsPerKWh `json:"winter_off"`
	WinterMid  CentsPerKWh `json:"winter_mid"`
	WinterPeak CentsPerKWh `json:"winter_peak"`
}

// DefaultRates returns the utility's published residential TOU rates.
func DefaultRates() RateSchedule {
	return RateSchedule{
		SummerOff:  10,
		SummerMid:  19,
		SummerPeak: 28,
		WinterOff:  9,
		WinterMid:  18,
		WinterPeak: 26,
	}
}

// Rate returns the cents-per-kWh rate for a bucket in a season.
func (r RateSchedule) Rate(b Bucket, s Season) CentsPerKWh {
	if s == SeasonSummer {
		switch b {
		case BucketMid:
			return r.SummerMid
		case BucketPeak:
			return r.SummerPeak
		default:
			return r.SummerOff
		}
	}
	switch b {
	case BucketMid:
		return r.WinterMid
	case BucketPeak:
		return r.WinterPeak
	default:
		return r.WinterOff
	}
}
