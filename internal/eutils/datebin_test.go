// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

import (
	"errors"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMakeDateBinsInvalidRange(t *testing.T) {
	_, err := MakeDateBins(day(2024, 5, 2), day(2024, 5, 1))
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("MakeDateBins() error = %v, want ErrInvalidDateRange", err)
	}
}

func TestMakeDateBinsSingleDay(t *testing.T) {
	end := day(2024, 5, 1)

	for _, start := range []time.Time{end, end.AddDate(0, 0, -1)} {
		bins, err := MakeDateBins(start, end)
		if err != nil {
			t.Fatalf("MakeDateBins() error = %v", err)
		}
		if len(bins) != 1 {
			t.Fatalf("len(bins) = %d, want 1", len(bins))
		}
		if !bins[0].Max.Equal(end) || !bins[0].Min.Equal(end.AddDate(0, 0, -1)) {
			t.Errorf("bin = [%v, %v], want the one-day bin ending at %v",
				bins[0].Min, bins[0].Max, end)
		}
	}
}

func TestMakeDateBinsTiering(t *testing.T) {
	end := day(2024, 6, 30)

	tests := []struct {
		name     string
		spanDays int
		wantStep int
		wantBins int
	}{
		{"year tier", 400, 365, 2},
		{"month tier", 100, 28, 4},
		{"week tier", 20, 7, 3},
		{"day tier", 5, 1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := end.AddDate(0, 0, -tt.spanDays)
			bins, err := MakeDateBins(start, end)
			if err != nil {
				t.Fatalf("MakeDateBins() error = %v", err)
			}
			if len(bins) != tt.wantBins {
				t.Fatalf("len(bins) = %d, want %d", len(bins), tt.wantBins)
			}

			// The first offset is skipped: the newest bin stops one day
			// short of end.
			if !bins[0].Max.Equal(end.AddDate(0, 0, -1)) {
				t.Errorf("newest bin Max = %v, want %v", bins[0].Max, end.AddDate(0, 0, -1))
			}

			// All interior bins carry the tier's step width.
			for i, bin := range bins[:len(bins)-1] {
				if got := bin.Span(); got != tt.wantStep {
					t.Errorf("bins[%d].Span() = %d, want %d", i, got, tt.wantStep)
				}
			}

			// The earliest bin is clamped at start.
			last := bins[len(bins)-1]
			if !last.Min.Equal(start) {
				t.Errorf("earliest bin Min = %v, want %v", last.Min, start)
			}
		})
	}
}

func TestMakeDateBinsOrderAndSeams(t *testing.T) {
	end := day(2024, 6, 30)
	start := end.AddDate(0, 0, -100)

	bins, err := MakeDateBins(start, end)
	if err != nil {
		t.Fatalf("MakeDateBins() error = %v", err)
	}

	for i, bin := range bins {
		if bin.Min.After(bin.Max) {
			t.Errorf("bins[%d]: Min %v after Max %v", i, bin.Min, bin.Max)
		}
		if bin.Min.Before(start) || bin.Max.After(end) {
			t.Errorf("bins[%d] = [%v, %v] outside [%v, %v]", i, bin.Min, bin.Max, start, end)
		}
		// Reverse chronological: each bin ends where the previous began.
		if i > 0 && !bin.Max.Equal(bins[i-1].Min) {
			t.Errorf("bins[%d].Max = %v, want seam at bins[%d].Min = %v",
				i, bin.Max, i-1, bins[i-1].Min)
		}
	}
}

func TestMakeDateBinsNonEmptyAcrossSpans(t *testing.T) {
	end := day(2024, 6, 30)
	for _, span := range []int{0, 1, 2, 7, 8, 31, 32, 366, 367, 366 * 3, 365 * 50} {
		start := end.AddDate(0, 0, -span)
		bins, err := MakeDateBins(start, end)
		if err != nil {
			t.Fatalf("span %d: MakeDateBins() error = %v", span, err)
		}
		if len(bins) == 0 {
			t.Errorf("span %d: no bins produced", span)
		}
	}
}
