package phenology

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// savGolWeights computes the Savitzky-Golay convolution weights for the
// center of a window: a degree-order polynomial is least-squares fitted to
// the window and evaluated at its midpoint. The weights are the first row
// of the design matrix pseudo-inverse, (AᵀA)⁻¹Aᵀ.
func savGolWeights(window, order int) ([]float64, error) {
	if window < 1 || window%2 == 0 {
		return nil, fmt.Errorf("phenology: window must be a positive odd integer, got %d", window)
	}
	if order < 1 || order >= window {
		return nil, fmt.Errorf("phenology: polynomial order must satisfy 1 <= order < window, got order=%d window=%d", order, window)
	}

	half := window / 2
	a := mat.NewDense(window, order+1, nil)
	for i := 0; i < window; i++ {
		z := float64(i - half)
		p := 1.0
		for j := 0; j <= order; j++ {
			a.Set(i, j, p)
			p *= z
		}
	}

	var ata mat.Dense
	ata.Mul(a.T(), a)

	var inv mat.Dense
	if err := inv.Inverse(&ata); err != nil {
		return nil, fmt.Errorf("phenology: singular design matrix for window=%d order=%d: %w", window, order, err)
	}

	weights := make([]float64, window)
	for i := 0; i < window; i++ {
		var w float64
		for j := 0; j <= order; j++ {
			w += inv.At(0, j) * a.At(i, j)
		}
		weights[i] = w
	}
	return weights, nil
}

// Smooth applies a Savitzky-Golay filter to the valid samples of a daily
// series. Filtering runs over the compacted sequence of non-missing
// values, so sampling gaps do not stretch the window. Missing days stay
// missing; Interpolate fills them afterwards.
//
// Boundary policy: if fewer than window valid samples exist the filter
// cannot run and ErrInsufficientData is returned. Valid samples within
// half a window of either end of the sequence are passed through
// unfiltered rather than fitted against a truncated window.
func Smooth(s Series, window, order int) (Series, error) {
	weights, err := savGolWeights(window, order)
	if err != nil {
		return Series{}, err
	}

	// Compact the valid samples, remembering their day indices.
	idx := make([]int, 0, len(s.Values))
	vals := make([]float64, 0, len(s.Values))
	for i, v := range s.Values {
		if !math.IsNaN(v) {
			idx = append(idx, i)
			vals = append(vals, v)
		}
	}

	if len(vals) < window {
		return Series{}, fmt.Errorf("%w: have %d, need %d", ErrInsufficientData, len(vals), window)
	}

	half := window / 2
	out := s.Clone()
	for k := half; k < len(vals)-half; k++ {
		var acc float64
		for m := 0; m < window; m++ {
			acc += weights[m] * vals[k-half+m]
		}
		out.Values[idx[k]] = acc
	}
	return out, nil
}
