package dataset

import "solartally/internal/production"

// Merge upserts incoming records into the dataset keyed by start time.
// Existing records are replaced in place when a fresher record for the
// same start time arrives; genuinely new start times are appended in
// incoming order. Records with no numeric sample anywhere -- whether
// already persisted or newly fetched -- are dropped so dead entries
// never accumulate. Merging the same incoming set twice leaves the
// result unchanged.
func Merge(d Dataset, incoming []production.RawDailyRecord) Dataset {
	replacements := make(map[int64]production.RawDailyRecord, len(incoming))
	order := make([]int64, 0, len(incoming))
	for _, rec := range incoming {
		if _, seen := replacements[rec.StartTime]; !seen {
			order = append(order, rec.StartTime)
		}
		replacements[rec.StartTime] = rec
	}

	merged := make([]production.RawDailyRecord, 0, len(d.Stats)+len(incoming))
	for _, existing := range d.Stats {
		rec := existing
		if upstream, ok := replacements[existing.StartTime]; ok {
			rec = upstream
			delete(replacements, existing.StartTime)
		}
		if rec.HasData() {
			merged = append(merged, rec)
		}
	}

	// Append the genuinely new start times in their upstream order.
	for _, key := range order {
		rec, ok := replacements[key]
		if !ok || !rec.HasData() {
			continue
		}
		merged = append(merged, rec)
	}

	return Dataset{Stats: merged}
}
