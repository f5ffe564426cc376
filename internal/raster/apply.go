package raster

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/mthurman/greenwave/pkg/phenology"
)

// Apply runs the phenology pipeline independently over every cell of the
// cube. Cells are processed in parallel by at most workers goroutines
// (NumCPU when workers <= 0); each one writes only to its own output
// slots, so no shared accumulator exists.
//
// Per-cell failure is isolated: a cell with no data or a failing pipeline
// is marked in the status layer and the remaining cells still complete.
// Apply only returns an error for invalid arguments or a canceled
// context.
func Apply(ctx context.Context, cube *Cube, pipe *phenology.Pipeline, workers int) (*GridResult, error) {
	if cube == nil || pipe == nil {
		return nil, errors.New("raster: cube and pipeline are required")
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	transitions := pipe.Params().Transitions
	names := make([]string, len(transitions))
	for i, tr := range transitions {
		names[i] = tr.Name
	}

	result := newGridResult(cube.Rows, cube.Cols, cube.Years(), names)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for row := 0; row < cube.Rows; row++ {
		for col := 0; col < cube.Cols; col++ {
			row, col := row, col
			g.Go(func() error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				applyCell(cube, pipe, result, row, col)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// applyCell runs the pipeline for one cell and records its outcome in
// the disjoint output slots belonging to (row, col).
func applyCell(cube *Cube, pipe *phenology.Pipeline, result *GridResult, row, col int) {
	cell := row*cube.Cols + col

	markAll := func(status CellStatus) {
		for _, y := range result.Years {
			result.status[y][cell] = status
		}
	}

	samples := cube.CellSamples(row, col)
	if len(samples) == 0 {
		markAll(CellNoData)
		return
	}

	records, err := pipe.Run(samples)
	if err != nil {
		if errors.Is(err, phenology.ErrNoSamples) {
			markAll(CellNoData)
		} else {
			markAll(CellFailed)
		}
		return
	}

	for _, year := range result.Years {
		rec, ok := records[year]
		if !ok {
			result.status[year][cell] = CellNoData
			continue
		}
		if rec.Err != nil {
			result.status[year][cell] = CellFailed
			continue
		}
		result.status[year][cell] = CellOK
		for name, crossing := range rec.Transitions {
			layer, ok := result.layers[year][name]
			if !ok {
				continue
			}
			if crossing.Defined {
				layer[cell] = crossing.DOY
			}
		}
	}
}
