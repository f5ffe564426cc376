// Package raster applies the phenology pipeline to every cell of a
// raster cube, producing per-year day-of-year layers for each configured
// transition.
package raster

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/mthurman/greenwave/pkg/phenology"
)

// Cube is a dense 3-D raster indexed by (row, col, time layer). All cells
// share one date axis; NaN marks a missing observation. The zero value is
// not usable, construct with NewCube.
type Cube struct {
	Rows  int
	Cols  int
	Dates []time.Time

	values []float64
}

// NewCube allocates a cube with every cell missing.
func NewCube(rows, cols int, dates []time.Time) (*Cube, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("raster: cube dimensions must be positive, got %dx%d", rows, cols)
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("raster: cube needs at least one time layer")
	}

	values := make([]float64, rows*cols*len(dates))
	for i := range values {
		values[i] = math.NaN()
	}
	return &Cube{Rows: rows, Cols: cols, Dates: dates, values: values}, nil
}

func (c *Cube) index(row, col, layer int) int {
	return (row*c.Cols+col)*len(c.Dates) + layer
}

// Set stores one observation. Indices out of range panic, as with any
// slice access.
func (c *Cube) Set(row, col, layer int, v float64) {
	c.values[c.index(row, col, layer)] = v
}

// At returns the observation at (row, col, layer); NaN means missing.
func (c *Cube) At(row, col, layer int) float64 {
	return c.values[c.index(row, col, layer)]
}

// CellSamples returns the non-missing samples of one cell, in date-axis
// order, ready for the phenology pipeline.
func (c *Cube) CellSamples(row, col int) []phenology.Sample {
	samples := make([]phenology.Sample, 0, len(c.Dates))
	base := c.index(row, col, 0)
	for t := range c.Dates {
		v := c.values[base+t]
		if math.IsNaN(v) {
			continue
		}
		samples = append(samples, phenology.Sample{Date: c.Dates[t], Value: v})
	}
	return samples
}

// Years returns the distinct calendar years covered by the date axis,
// sorted ascending.
func (c *Cube) Years() []int {
	seen := make(map[int]struct{})
	for _, d := range c.Dates {
		seen[d.UTC().Year()] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
