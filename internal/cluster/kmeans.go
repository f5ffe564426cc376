// Package cluster groups per-cell seasonal statistics into land-cover
// classes with k-means. Randomness is confined to an explicit seed so a
// classification can always be reproduced.
package cluster

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// ErrEmptyInput indicates no feature vectors were supplied.
var ErrEmptyInput = errors.New("cluster: no feature vectors")

// Options tunes the k-means run. The zero value is completed by
// defaults: 100 iterations, tolerance 1e-6, seed 0.
type Options struct {
	MaxIterations int
	Tolerance     float64
	Seed          int64
}

// Result is a completed clustering.
type Result struct {
	Labels     []int
	Centroids  [][]float64
	Inertia    float64
	Iterations int
}

// KMeans partitions points into k clusters using k-means++ seeding and
// Lloyd iterations. For a fixed seed the result is deterministic.
func KMeans(points [][]float64, k int, opts Options) (*Result, error) {
	if len(points) == 0 {
		return nil, ErrEmptyInput
	}
	if k < 1 || k > len(points) {
		return nil, fmt.Errorf("cluster: k must be in [1, %d], got %d", len(points), k)
	}
	dim := len(points[0])
	for i, p := range points {
		if len(p) != dim {
			return nil, fmt.Errorf("cluster: point %d has %d features, expected %d", i, len(p), dim)
		}
	}

	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 100
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = 1e-6
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	centroids := seedCentroids(points, k, rng)

	labels := make([]int, len(points))
	counts := make([]int, k)
	sums := make([][]float64, k)
	for i := range sums {
		sums[i] = make([]float64, dim)
	}

	var inertia float64
	iterations := 0
	for iter := 0; iter < opts.MaxIterations; iter++ {
		iterations = iter + 1

		// Assignment step.
		inertia = 0
		for i, p := range points {
			best, bestDist := 0, math.Inf(1)
			for c, centroid := range centroids {
				d := floats.Distance(p, centroid, 2)
				if d < bestDist {
					best, bestDist = c, d
				}
			}
			labels[i] = best
			inertia += bestDist * bestDist
		}

		// Update step.
		for c := range counts {
			counts[c] = 0
			for j := range sums[c] {
				sums[c][j] = 0
			}
		}
		for i, p := range points {
			counts[labels[i]]++
			floats.Add(sums[labels[i]], p)
		}

		shift := 0.0
		for c := range centroids {
			if counts[c] == 0 {
				// Reseed an empty cluster to the point farthest from
				// its centroid.
				centroids[c] = append([]float64(nil), farthestPoint(points, centroids, labels)...)
				shift = math.Inf(1)
				continue
			}
			next := make([]float64, dim)
			copy(next, sums[c])
			floats.Scale(1/float64(counts[c]), next)
			shift += floats.Distance(centroids[c], next, 2)
			centroids[c] = next
		}

		if shift < opts.Tolerance {
			break
		}
	}

	return &Result{
		Labels:     labels,
		Centroids:  centroids,
		Inertia:    inertia,
		Iterations: iterations,
	}, nil
}

// seedCentroids implements k-means++ initialization: the first centroid
// is uniform, each further one is drawn proportional to squared distance
// from the nearest chosen centroid.
func seedCentroids(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, append([]float64(nil), points[rng.Intn(len(points))]...))

	dists := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			nearest := math.Inf(1)
			for _, c := range centroids {
				d := floats.Distance(p, c, 2)
				if d < nearest {
					nearest = d
				}
			}
			dists[i] = nearest * nearest
			total += dists[i]
		}

		if total == 0 {
			// All remaining points coincide with a centroid.
			centroids = append(centroids, append([]float64(nil), points[rng.Intn(len(points))]...))
			continue
		}

		target := rng.Float64() * total
		acc := 0.0
		chosen := len(points) - 1
		for i, d := range dists {
			acc += d
			if acc >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, append([]float64(nil), points[chosen]...))
	}
	return centroids
}

// farthestPoint returns the point with the largest distance to its
// assigned centroid.
func farthestPoint(points [][]float64, centroids [][]float64, labels []int) []float64 {
	worst := 0
	worstDist := -1.0
	for i, p := range points {
		d := floats.Distance(p, centroids[labels[i]], 2)
		if d > worstDist {
			worst, worstDist = i, d
		}
	}
	return points[worst]
}
