package cluster

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/mthurman/greenwave/internal/raster"
)

// CellFeatures is one cell's seasonal statistics feature vector:
// minimum, maximum, mean, standard deviation and amplitude of its valid
// observations.
type CellFeatures struct {
	Row, Col int
	Vector   []float64
}

// SeasonalFeatures derives a feature vector per cell from the raw cube.
// Cells without any valid observation are skipped, so the returned slice
// indexes only classifiable cells.
func SeasonalFeatures(cube *raster.Cube) []CellFeatures {
	var features []CellFeatures
	for row := 0; row < cube.Rows; row++ {
		for col := 0; col < cube.Cols; col++ {
			var values []float64
			for layer := range cube.Dates {
				v := cube.At(row, col, layer)
				if !math.IsNaN(v) {
					values = append(values, v)
				}
			}
			if len(values) == 0 {
				continue
			}

			min, max := values[0], values[0]
			for _, v := range values[1:] {
				if v < min {
					min = v
				}
				if v > max {
					max = v
				}
			}
			mean := stat.Mean(values, nil)
			sd := 0.0
			if len(values) > 1 {
				sd = stat.StdDev(values, nil)
			}

			features = append(features, CellFeatures{
				Row:    row,
				Col:    col,
				Vector: []float64{min, max, mean, sd, max - min},
			})
		}
	}
	return features
}

// Vectors extracts the bare feature matrix for KMeans.
func Vectors(features []CellFeatures) [][]float64 {
	out := make([][]float64, len(features))
	for i, f := range features {
		out[i] = f.Vector
	}
	return out
}
