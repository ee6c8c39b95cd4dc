// Package production consumes the Enlighten daily-energy feed for one
// installation and turns raw 15-minute samples into cost-classified
// production records.
package production

import (
	"errors"

	"solartally/internal/tariff"
)

// ErrInvalidRecordShape reports a raw record whose sample sequence is
// not exactly one day of 15-minute slots. This is a caller contract
// violation, not a recoverable condition.
var ErrInvalidRecordShape = errors.New("production: record must carry 96 samples")

// RawDailyRecord is one calendar day of production as returned by the
// upstream daily_energy endpoint. Production holds 96 watt-hour values;
// a null entry is a missing reading and must be preserved as such.
type RawDailyRecord struct {
	StartTime  int64      `json:"start_time"` // epoch seconds, UTC start of day
	Production []*float64 `json:"production"`
}

// HasData reports whether any slot carries a numeric sample. Records
// without data are pruned from the persisted dataset.
func (r RawDailyRecord) HasData() bool {
	for _, s := range r.Production {
		if s != nil {
			return true
		}
	}
	return false
}

// ProductionStat is the derived, cost-classified view of one day. It is
// recomputed on every read and never mutated in place.
type ProductionStat struct {
	StartTime      int64      `json:"startTime"` // epoch milliseconds
	ProductionData []*float64 `json:"productionData"`
	tariff.Totals
}
