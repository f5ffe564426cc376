package phenology

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"
)

// seasonSamples generates one year of 8-day composited samples with a
// smooth mid-year bump: base outside the growing season, base+amplitude
// at the peak.
func seasonSamples(year int, base, amplitude float64) []Sample {
	var samples []Sample
	start := day(year, time.January, 1)
	for doy := 0; doy < 365; doy += 8 {
		v := base
		if doy >= 100 && doy <= 260 {
			phase := float64(doy-100) / 160.0
			s := math.Sin(math.Pi * phase)
			v = base + amplitude*s*s
		}
		samples = append(samples, Sample{Date: start.AddDate(0, 0, doy), Value: v})
	}
	return samples
}

func TestNewPipelineValidation(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"no transitions", Params{Window: 7, PolyOrder: 3}},
		{"even window", Params{Window: 8, PolyOrder: 3, Transitions: DefaultTransitions()}},
		{"order too high", Params{Window: 5, PolyOrder: 5, Transitions: DefaultTransitions()}},
		{"threshold out of range", Params{Window: 7, PolyOrder: 3, Transitions: []Transition{{Name: "bad", Threshold: 1.5}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPipeline(tt.params); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestPipelineSeasonOrdering(t *testing.T) {
	pipe, err := NewPipeline(DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := pipe.Run(seasonSamples(2021, 0.2, 0.6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, ok := records[2021]
	if !ok {
		t.Fatal("expected a record for 2021")
	}
	if rec.Err != nil {
		t.Fatalf("unexpected year error: %v", rec.Err)
	}

	greenup := rec.Transitions["greenup"]
	maturity := rec.Transitions["maturity"]
	senescence := rec.Transitions["senescence"]
	dormancy := rec.Transitions["dormancy"]

	for name, c := range rec.Transitions {
		if !c.Defined {
			t.Fatalf("transition %q should be defined for a full season", name)
		}
	}

	if !(greenup.DOY < maturity.DOY) {
		t.Errorf("greenup (%d) should precede maturity (%d)", greenup.DOY, maturity.DOY)
	}
	if !(maturity.DOY <= senescence.DOY) {
		t.Errorf("maturity (%d) should not follow senescence (%d)", maturity.DOY, senescence.DOY)
	}
	if !(senescence.DOY < dormancy.DOY) {
		t.Errorf("senescence (%d) should precede dormancy (%d)", senescence.DOY, dormancy.DOY)
	}

	// The bump spans DOY 100-260; crossings have to land inside it.
	if greenup.DOY < 100 || dormancy.DOY > 261 {
		t.Errorf("season [%d, %d] outside the generated growing window", greenup.DOY, dormancy.DOY)
	}
}

func TestPipelineDegenerateYear(t *testing.T) {
	// A constant series must surface ErrFlatSeason for the year instead
	// of dividing by zero or returning fabricated crossings.
	var samples []Sample
	start := day(2021, time.January, 1)
	for doy := 0; doy < 365; doy += 8 {
		samples = append(samples, Sample{Date: start.AddDate(0, 0, doy), Value: 5.0})
	}

	pipe, err := NewPipeline(DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := pipe.Run(samples)
	if err != nil {
		t.Fatalf("unexpected pipeline error: %v", err)
	}

	rec := records[2021]
	if !errors.Is(rec.Err, ErrFlatSeason) {
		t.Fatalf("expected ErrFlatSeason, got %v", rec.Err)
	}
	if rec.Transitions != nil {
		t.Error("failed year should not carry transitions")
	}
}

func TestPipelineYearIsolation(t *testing.T) {
	// A degenerate second year must not abort the first one.
	samples := seasonSamples(2020, 5.0, 3.0)
	start := day(2021, time.January, 1)
	for doy := 0; doy < 365; doy += 8 {
		samples = append(samples, Sample{Date: start.AddDate(0, 0, doy), Value: 5.0})
	}

	pipe, err := NewPipeline(DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := pipe.Run(samples)
	if err != nil {
		t.Fatalf("unexpected pipeline error: %v", err)
	}

	if rec := records[2020]; rec.Err != nil {
		t.Errorf("2020 should succeed, got error: %v", rec.Err)
	}
	if rec := records[2021]; !errors.Is(rec.Err, ErrFlatSeason) {
		t.Errorf("2021 should report ErrFlatSeason, got %v", rec.Err)
	}
}

func TestPipelineIdempotent(t *testing.T) {
	samples := seasonSamples(2021, 0.15, 0.55)

	pipe, err := NewPipeline(DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := pipe.Run(samples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := pipe.Run(samples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("identical input and params should produce identical output")
	}
}

func TestPipelineEmptyInput(t *testing.T) {
	pipe, err := NewPipeline(DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := pipe.Run(nil); !errors.Is(err, ErrNoSamples) {
		t.Fatalf("expected ErrNoSamples, got %v", err)
	}
}

func TestYearsSorted(t *testing.T) {
	records := map[int]YearRecord{
		2022: {Year: 2022},
		2019: {Year: 2019},
		2021: {Year: 2021},
	}
	got := Years(records)
	want := []int{2019, 2021, 2022}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
