package phenology

import (
	"math"
	"sort"
)

// FilterQuality drops samples whose quality flag is worse than maxFlag.
// Pass QualityCloudy to keep everything.
func FilterQuality(samples []Sample, maxFlag QualityFlag) []Sample {
	kept := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if s.Quality <= maxFlag {
			kept = append(kept, s)
		}
	}
	return kept
}

// ResampleDaily expands an irregular series onto a uniform daily grid
// spanning [min(date), max(date)]. Days without an input sample are NaN;
// no values are invented at this stage. Timestamps are truncated to their
// UTC calendar day. When two samples fall on the same day, the first one
// in input order wins.
func ResampleDaily(samples []Sample) (Series, error) {
	if len(samples) == 0 {
		return Series{}, ErrNoSamples
	}

	daily := make([]Sample, len(samples))
	for i, s := range samples {
		daily[i] = Sample{Date: midnightUTC(s.Date), Value: s.Value, Quality: s.Quality}
	}

	// Stable sort keeps input order within a day, so "keep first" holds
	// even for unsorted input.
	sort.SliceStable(daily, func(i, j int) bool {
		return daily[i].Date.Before(daily[j].Date)
	})

	first := daily[0].Date
	last := daily[len(daily)-1].Date
	n := int(last.Sub(first).Hours()/24) + 1

	values := make([]float64, n)
	for i := range values {
		values[i] = math.NaN()
	}

	for _, s := range daily {
		idx := int(s.Date.Sub(first).Hours() / 24)
		if !math.IsNaN(values[idx]) {
			continue // duplicate date, keep first
		}
		values[idx] = s.Value
	}

	return Series{Start: first, Values: values}, nil
}
