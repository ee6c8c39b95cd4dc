package production

import (
	"time"

	"solartally/internal/tariff"
)

// Builder derives ProductionStats from raw daily records using a fixed
// rate schedule and holiday calendar. Construct one at startup and share
// it; it is safe for concurrent use.
type Builder struct {
	rates    tariff.RateSchedule
	calendar *tariff.HolidayCalendar
}

func NewBuilder(rates tariff.RateSchedule, calendar *tariff.HolidayCalendar) *Builder {
	return &Builder{rates: rates, calendar: calendar}
}

// Build classifies one raw record and prices it. It fails fast with
// ErrInvalidRecordShape when the sample sequence is malformed.
func (b *Builder) Build(raw RawDailyRecord) (ProductionStat, error) {
	if len(raw.Production) != tariff.SlotsPerDay {
		return ProductionStat{}, ErrInvalidRecordShape
	}

	day := time.Unix(raw.StartTime, 0).UTC()
	cls := tariff.Classify(day, b.calendar)
	totals := tariff.Calculate(raw.Production, cls, b.rates, tariff.SeasonFor(day))

	data := make([]*float64, len(raw.Production))
	copy(data, raw.Production)

	return ProductionStat{
		StartTime:      raw.StartTime * 1000,
		ProductionData: data,
		Totals:         totals,
	}, nil
}

// BuildAll derives stats for a batch of records, preserving order.
func (b *Builder) BuildAll(raws []RawDailyRecord) ([]ProductionStat, error) {
	stats := make([]ProductionStat, 0, len(raws))
	for _, raw := range raws {
		stat, err := b.Build(raw)
		if err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, nil
}
