package phenology

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestNormalizeYear(t *testing.T) {
	nan := math.NaN()
	start := day(2021, time.January, 1)

	tests := []struct {
		name     string
		values   []float64
		expected []float64
		wantErr  error
	}{
		{
			name:    "empty year",
			values:  []float64{nan, nan},
			wantErr: ErrNoData,
		},
		{
			name:    "constant year",
			values:  []float64{5, 5, 5, 5},
			wantErr: ErrFlatSeason,
		},
		{
			name:     "simple rescale",
			values:   []float64{2, 4, 6},
			expected: []float64{0, 0.5, 1},
		},
		{
			name:     "negative values",
			values:   []float64{-1, 0, 3},
			expected: []float64{0, 0.25, 1},
		},
		{
			name:     "missing days preserved",
			values:   []float64{1, nan, 3},
			expected: []float64{0, nan, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeYear(denseSeries(start, tt.values))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for i, want := range tt.expected {
				v := got.Values[i]
				if math.IsNaN(want) {
					if !math.IsNaN(v) {
						t.Errorf("day %d: expected missing, got %.3f", i, v)
					}
					continue
				}
				if math.Abs(v-want) > 1e-9 {
					t.Errorf("day %d: expected %.3f, got %.3f", i, want, v)
				}
			}
		})
	}
}

func TestNormalizeYearBounds(t *testing.T) {
	// For any non-degenerate year, output is within [0,1], the minimum
	// maps to exactly 0, and the maximum to exactly 1.
	values := []float64{0.31, 0.18, 0.52, 0.74, 0.69, 0.22}

	got, err := NormalizeYear(denseSeries(day(2022, time.January, 1), values))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	minIdx, maxIdx := 1, 3 // indices of 0.18 and 0.74
	if got.Values[minIdx] != 0 {
		t.Errorf("minimum should map to exactly 0, got %.9f", got.Values[minIdx])
	}
	if got.Values[maxIdx] != 1 {
		t.Errorf("maximum should map to exactly 1, got %.9f", got.Values[maxIdx])
	}
	for i, v := range got.Values {
		if v < 0 || v > 1 {
			t.Errorf("day %d: value %.6f outside [0,1]", i, v)
		}
	}
}

func TestSplitYearsIndependence(t *testing.T) {
	// Two years with very different ranges: normalizing each year must
	// use only that year's min/max.
	var samples []Sample
	for i := 0; i < 50; i++ {
		samples = append(samples, Sample{Date: day(2020, time.January, 1).AddDate(0, 0, i*9), Value: 0.1 + 0.01*float64(i%23)})
	}

	series, err := ResampleDaily(samples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	years := series.SplitYears()
	if len(years) != 2 {
		t.Fatalf("expected 2 years, got %d", len(years))
	}
	for year, ys := range years {
		if ys.Day(0).Year() != year || ys.Day(ys.Len()-1).Year() != year {
			t.Errorf("year %d slice leaks outside its calendar year", year)
		}
	}
}
