// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

import "time"

// binDateLayout is the date format the service expects for the
// mindate/maxdate parameters.
const binDateLayout = "2006/01/02"

// DateBin is one sub-range of a partitioned date axis. Both bounds are
// inclusive and Min never falls after Max. Adjacent bins produced for
// one range share their boundary day.
type DateBin struct {
	Min time.Time
	Max time.Time
}

// Span returns the bin length in whole days.
func (b DateBin) Span() int {
	return int(b.Max.Sub(b.Min) / (24 * time.Hour))
}

// MakeDateBins splits [start, end] into sub-ranges, stepping backward
// from end toward start. The step size is tiered by the span so that
// long ranges produce few, coarse bins and short ranges produce daily
// ones:
//
//	span > 366 days  → ~365-day bins
//	span > 31 days   → ~28-day bins
//	span > 7 days    → ~7-day bins
//	span > 1 day     → 1-day bins
//	span <= 1 day    → a single one-day bin ending at end
//
// The first backward offset is skipped, so no bin reaches the literal
// end day except in the single-bin case; the most-recent day of a
// multi-bin range is intentionally left to that quirk rather than
// papered over. The earliest bin is clamped at start.
func MakeDateBins(start, end time.Time) ([]DateBin, error) {
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}

	span := int(end.Sub(start) / (24 * time.Hour))

	var step int
	switch {
	case span > 366:
		step = 365
	case span > 31:
		step = 28
	case span > 7:
		step = 7
	case span > 1:
		step = 1
	default:
		return []DateBin{{Min: end.AddDate(0, 0, -1), Max: end}}, nil
	}

	var bins []DateBin
	// Offsets run 1, 1+step, 1+2*step, ... with the first one dropped,
	// so bin k covers [end-(1+k*step), end-(1+(k-1)*step)].
	for i := 1 + step; ; i += step {
		upper := end.AddDate(0, 0, -(i - step))
		if !upper.After(start) {
			break
		}
		lower := end.AddDate(0, 0, -i)
		if lower.Before(start) {
			lower = start
		}
		bins = append(bins, DateBin{Min: lower, Max: upper})
	}
	return bins, nil
}
