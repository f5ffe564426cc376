package phenology

import "math"

// Interpolate fills the missing days of a series by piecewise-linear
// interpolation between consecutive valid points. The series is never
// extrapolated: days before the first valid point and after the last one
// are held at the edge value. Returns ErrNoData when no valid values
// exist.
func Interpolate(s Series) (Series, error) {
	out := s.Clone()

	first, last := -1, -1
	for i, v := range out.Values {
		if !math.IsNaN(v) {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return Series{}, ErrNoData
	}

	// Hold edges constant outside the known range.
	for i := 0; i < first; i++ {
		out.Values[i] = out.Values[first]
	}
	for i := last + 1; i < len(out.Values); i++ {
		out.Values[i] = out.Values[last]
	}

	// Linear fill between consecutive valid points.
	prev := first
	for i := first + 1; i <= last; i++ {
		if math.IsNaN(out.Values[i]) {
			continue
		}
		if i-prev > 1 {
			v0 := out.Values[prev]
			v1 := out.Values[i]
			span := float64(i - prev)
			for j := prev + 1; j < i; j++ {
				frac := float64(j-prev) / span
				out.Values[j] = v0 + (v1-v0)*frac
			}
		}
		prev = i
	}

	return out, nil
}
