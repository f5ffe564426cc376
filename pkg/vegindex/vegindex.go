// Package vegindex provides functions for calculating spectral vegetation
// indices from surface reflectance bands. Reflectance inputs are expected
// as unitless values in [0,1]; an index is NaN where its denominator
// vanishes.
package vegindex

import "math"

// NormalizedDifference computes (a - b) / (a + b), the generic form
// behind NDVI-family indices. Returns NaN when a+b is zero.
func NormalizedDifference(a, b float64) float64 {
	denom := a + b
	if denom == 0 {
		return math.NaN()
	}
	return (a - b) / denom
}

// NDVI calculates the Normalized Difference Vegetation Index from
// near-infrared and red reflectance.
func NDVI(nir, red float64) float64 {
	return NormalizedDifference(nir, red)
}

// NDWI calculates the Normalized Difference Water Index from
// near-infrared and shortwave-infrared reflectance (Gao 1996).
func NDWI(nir, swir float64) float64 {
	return NormalizedDifference(nir, swir)
}

// EVI calculates the Enhanced Vegetation Index using the standard MODIS
// coefficients (G=2.5, C1=6, C2=7.5, L=1).
func EVI(nir, red, blue float64) float64 {
	denom := nir + 6.0*red - 7.5*blue + 1.0
	if denom == 0 {
		return math.NaN()
	}
	return 2.5 * (nir - red) / denom
}

// SAVI calculates the Soil-Adjusted Vegetation Index with soil brightness
// correction factor l (0.5 for intermediate vegetation cover).
func SAVI(nir, red, l float64) float64 {
	denom := nir + red + l
	if denom == 0 {
		return math.NaN()
	}
	return (nir - red) / denom * (1.0 + l)
}

// NormalizedDifferenceGrid applies NormalizedDifference cell-wise to two
// equally shaped band rasters. Rows may be ragged-checked: every row of b
// must match the corresponding row of a.
func NormalizedDifferenceGrid(a, b [][]float64) [][]float64 {
	out := make([][]float64, len(a))
	for i := range a {
		out[i] = make([]float64, len(a[i]))
		for j := range a[i] {
			if i >= len(b) || j >= len(b[i]) {
				out[i][j] = math.NaN()
				continue
			}
			out[i][j] = NormalizedDifference(a[i][j], b[i][j])
		}
	}
	return out
}

// NDVIGrid computes NDVI cell-wise from near-infrared and red band
// rasters.
func NDVIGrid(nir, red [][]float64) [][]float64 {
	return NormalizedDifferenceGrid(nir, red)
}
