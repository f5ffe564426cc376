package phenology

import (
	"fmt"
	"sort"
)

// Params configures the extraction pipeline.
type Params struct {
	// Window is the Savitzky-Golay filter length in valid samples.
	// Must be odd and greater than PolyOrder.
	Window int

	// PolyOrder is the degree of the fitted polynomial (e.g., 3).
	PolyOrder int

	// MaxQuality is the worst quality flag still accepted before
	// resampling.
	MaxQuality QualityFlag

	// Transitions are the named threshold crossings to extract.
	Transitions []Transition
}

// DefaultParams returns parameters suitable for 8-day composited NDVI:
// a 7-sample cubic filter, marginal-quality samples accepted, and the
// standard four-phase transition set.
func DefaultParams() Params {
	return Params{
		Window:      7,
		PolyOrder:   3,
		MaxQuality:  QualityMarginal,
		Transitions: DefaultTransitions(),
	}
}

// YearRecord holds the extraction outcome for one calendar year. Exactly
// one of the following holds: Err is non-nil and the year failed, or
// Transitions maps every configured transition to a Crossing (whose
// Defined flag separates a computed date from a never-crossed threshold).
type YearRecord struct {
	Year        int
	Transitions map[string]Crossing
	Err         error
}

// Pipeline composes resampling, smoothing, interpolation, normalization
// and threshold extraction. A Pipeline is immutable and safe for
// concurrent use; the filter weights are validated once at construction.
type Pipeline struct {
	params Params
}

// NewPipeline validates params and returns a ready pipeline.
func NewPipeline(params Params) (*Pipeline, error) {
	if len(params.Transitions) == 0 {
		return nil, fmt.Errorf("phenology: at least one transition is required")
	}
	for _, tr := range params.Transitions {
		if tr.Threshold < 0 || tr.Threshold > 1 {
			return nil, fmt.Errorf("phenology: transition %q threshold %.3f outside [0,1]", tr.Name, tr.Threshold)
		}
	}
	// Reject bad window/order up front rather than on first Run.
	if _, err := savGolWeights(params.Window, params.PolyOrder); err != nil {
		return nil, err
	}
	return &Pipeline{params: params}, nil
}

// Params returns the pipeline configuration.
func (p *Pipeline) Params() Params {
	return p.params
}

// Run executes the full pipeline on one sample series and returns one
// record per calendar year. Series-wide failures (no samples, fewer valid
// samples than the filter window) are returned as an error; per-year
// failures such as a flat season are isolated in their YearRecord.
//
// Run is deterministic: identical input and params always produce
// identical output.
func (p *Pipeline) Run(samples []Sample) (map[int]YearRecord, error) {
	kept := FilterQuality(samples, p.params.MaxQuality)

	daily, err := ResampleDaily(kept)
	if err != nil {
		return nil, err
	}

	smoothed, err := Smooth(daily, p.params.Window, p.params.PolyOrder)
	if err != nil {
		return nil, err
	}

	dense, err := Interpolate(smoothed)
	if err != nil {
		return nil, err
	}

	records := make(map[int]YearRecord)
	for year, ys := range dense.SplitYears() {
		normalized, err := NormalizeYear(ys)
		if err != nil {
			records[year] = YearRecord{Year: year, Err: err}
			continue
		}
		records[year] = YearRecord{
			Year:        year,
			Transitions: ExtractTransitions(normalized, p.params.Transitions),
		}
	}
	return records, nil
}

// Years returns the sorted list of years present in a record map.
func Years(records map[int]YearRecord) []int {
	years := make([]int, 0, len(records))
	for y := range records {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
