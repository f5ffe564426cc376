package phenology

import "math"

// flatSeasonEpsilon is the smallest yearly range considered normalizable.
const flatSeasonEpsilon = 1e-12

// NormalizeYear rescales one year of a series so that its minimum maps to
// 0 and its maximum to 1. Rescaling uses only the year's own values, so
// there is no cross-year leakage. A year without valid values returns
// ErrNoData; a constant year returns ErrFlatSeason rather than dividing
// by zero.
func NormalizeYear(s Series) (Series, error) {
	min := math.Inf(1)
	max := math.Inf(-1)
	for _, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if math.IsInf(min, 1) {
		return Series{}, ErrNoData
	}
	if max-min < flatSeasonEpsilon {
		return Series{}, ErrFlatSeason
	}

	out := s.Clone()
	span := max - min
	for i, v := range out.Values {
		if math.IsNaN(v) {
			continue
		}
		out.Values[i] = (v - min) / span
	}
	return out, nil
}
