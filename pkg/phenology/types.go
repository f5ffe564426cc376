// Package phenology extracts vegetation phenology transition dates from
// vegetation index time series. The pipeline resamples irregular samples
// onto a daily grid, smooths them with a Savitzky-Golay filter, fills the
// gaps by linear interpolation, rescales each calendar year to [0,1], and
// scans the normalized curve for threshold crossings.
//
// All transforms are pure functions over in-memory series; the package
// holds no state and performs no I/O.
package phenology

import (
	"errors"
	"math"
	"time"
)

// Sentinel errors for the pipeline stages. Per-year failures are reported
// through YearRecord.Err so one bad year never aborts the others.
var (
	// ErrNoSamples indicates an empty input series.
	ErrNoSamples = errors.New("phenology: no input samples")

	// ErrInsufficientData indicates fewer valid samples than the filter
	// window requires.
	ErrInsufficientData = errors.New("phenology: insufficient valid samples for filter window")

	// ErrFlatSeason indicates a year whose range is zero, making min-max
	// normalization undefined.
	ErrFlatSeason = errors.New("phenology: flat season, normalization undefined")

	// ErrNoData indicates a year (or series) with no valid values at all.
	ErrNoData = errors.New("phenology: no valid data")
)

// QualityFlag classifies the reliability of a sample, modeled on the
// MODIS pixel reliability ranks (0 = good through 3 = cloudy).
type QualityFlag uint8

const (
	QualityGood QualityFlag = iota
	QualityMarginal
	QualitySnowIce
	QualityCloudy
)

// Sample is a single vegetation index observation.
type Sample struct {
	Date    time.Time
	Value   float64
	Quality QualityFlag
}

// Series is a uniform daily time series. Values holds one entry per
// calendar day starting at Start; NaN marks a missing day.
type Series struct {
	Start  time.Time
	Values []float64
}

// Len returns the number of days spanned by the series.
func (s Series) Len() int {
	return len(s.Values)
}

// Day returns the calendar day for index i.
func (s Series) Day(i int) time.Time {
	return s.Start.AddDate(0, 0, i)
}

// Clone returns a deep copy of the series.
func (s Series) Clone() Series {
	vals := make([]float64, len(s.Values))
	copy(vals, s.Values)
	return Series{Start: s.Start, Values: vals}
}

// ValidCount returns the number of non-missing values.
func (s Series) ValidCount() int {
	n := 0
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

// SplitYears partitions the series by calendar year. Each returned series
// starts at the first day of that year present in the parent, so values
// are never shared across a year boundary.
func (s Series) SplitYears() map[int]Series {
	years := make(map[int]Series)
	if len(s.Values) == 0 {
		return years
	}

	start := 0
	currentYear := s.Start.Year()
	for i := 1; i <= len(s.Values); i++ {
		if i == len(s.Values) || s.Day(i).Year() != currentYear {
			vals := make([]float64, i-start)
			copy(vals, s.Values[start:i])
			years[currentYear] = Series{Start: s.Day(start), Values: vals}
			if i < len(s.Values) {
				start = i
				currentYear = s.Day(i).Year()
			}
		}
	}
	return years
}

// midnightUTC truncates a timestamp to its calendar day in UTC.
func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
