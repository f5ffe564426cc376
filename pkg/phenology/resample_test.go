package phenology

import (
	"math"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResampleDaily(t *testing.T) {
	tests := []struct {
		name      string
		samples   []Sample
		wantStart time.Time
		wantLen   int
		wantAt    map[int]float64 // day index -> value
		wantErr   error
	}{
		{
			name:    "empty input",
			samples: nil,
			wantErr: ErrNoSamples,
		},
		{
			name: "single sample",
			samples: []Sample{
				{Date: day(2021, time.March, 5), Value: 0.4},
			},
			wantStart: day(2021, time.March, 5),
			wantLen:   1,
			wantAt:    map[int]float64{0: 0.4},
		},
		{
			name: "eight day spacing",
			samples: []Sample{
				{Date: day(2021, time.January, 1), Value: 0.1},
				{Date: day(2021, time.January, 9), Value: 0.3},
				{Date: day(2021, time.January, 17), Value: 0.5},
			},
			wantStart: day(2021, time.January, 1),
			wantLen:   17,
			wantAt:    map[int]float64{0: 0.1, 8: 0.3, 16: 0.5},
		},
		{
			name: "unsorted input",
			samples: []Sample{
				{Date: day(2021, time.January, 9), Value: 0.3},
				{Date: day(2021, time.January, 1), Value: 0.1},
			},
			wantStart: day(2021, time.January, 1),
			wantLen:   9,
			wantAt:    map[int]float64{0: 0.1, 8: 0.3},
		},
		{
			name: "duplicate date keeps first",
			samples: []Sample{
				{Date: day(2021, time.June, 1), Value: 0.7},
				{Date: day(2021, time.June, 1), Value: 0.2},
				{Date: day(2021, time.June, 3), Value: 0.5},
			},
			wantStart: day(2021, time.June, 1),
			wantLen:   3,
			wantAt:    map[int]float64{0: 0.7, 2: 0.5},
		},
		{
			name: "intraday timestamp truncated",
			samples: []Sample{
				{Date: time.Date(2021, time.May, 2, 13, 45, 0, 0, time.UTC), Value: 0.9},
			},
			wantStart: day(2021, time.May, 2),
			wantLen:   1,
			wantAt:    map[int]float64{0: 0.9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResampleDaily(tt.samples)
			if tt.wantErr != nil {
				if err == nil || err != tt.wantErr {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Start.Equal(tt.wantStart) {
				t.Errorf("start: expected %s, got %s", tt.wantStart, got.Start)
			}
			if got.Len() != tt.wantLen {
				t.Fatalf("length: expected %d, got %d", tt.wantLen, got.Len())
			}
			for i, v := range got.Values {
				want, present := tt.wantAt[i]
				if present {
					if math.Abs(v-want) > 1e-9 {
						t.Errorf("day %d: expected %.3f, got %.3f", i, want, v)
					}
				} else if !math.IsNaN(v) {
					t.Errorf("day %d: expected missing, got %.3f", i, v)
				}
			}
		})
	}
}

func TestResampleFidelity(t *testing.T) {
	// Every input date must survive resampling with its value intact.
	samples := []Sample{
		{Date: day(2022, time.April, 1), Value: 0.12},
		{Date: day(2022, time.April, 6), Value: 0.34},
		{Date: day(2022, time.April, 14), Value: 0.56},
		{Date: day(2022, time.April, 30), Value: 0.78},
	}

	series, err := ResampleDaily(samples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, s := range samples {
		idx := int(s.Date.Sub(series.Start).Hours() / 24)
		if math.Abs(series.Values[idx]-s.Value) > 1e-12 {
			t.Errorf("date %s: expected %.3f, got %.3f", s.Date.Format("2006-01-02"), s.Value, series.Values[idx])
		}
	}

	if got := series.ValidCount(); got != len(samples) {
		t.Errorf("expected %d valid entries, got %d", len(samples), got)
	}
}

func TestFilterQuality(t *testing.T) {
	samples := []Sample{
		{Date: day(2021, time.January, 1), Value: 0.1, Quality: QualityGood},
		{Date: day(2021, time.January, 9), Value: 0.2, Quality: QualityMarginal},
		{Date: day(2021, time.January, 17), Value: 0.3, Quality: QualitySnowIce},
		{Date: day(2021, time.January, 25), Value: 0.4, Quality: QualityCloudy},
	}

	tests := []struct {
		name    string
		maxFlag QualityFlag
		want    int
	}{
		{"good only", QualityGood, 1},
		{"good and marginal", QualityMarginal, 2},
		{"everything", QualityCloudy, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FilterQuality(samples, tt.maxFlag); len(got) != tt.want {
				t.Errorf("expected %d samples, got %d", tt.want, len(got))
			}
		})
	}
}
