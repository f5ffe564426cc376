// season-simulator generates synthetic vegetation index seasons as CSV
// for testing and demos. The seasonal curve is a double logistic with
// additive Gaussian noise and optional cloud-contaminated samples, all
// driven by an explicit seed so output is reproducible.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"
)

func main() {
	var (
		years         = flag.Int("years", 2, "Number of calendar years to generate")
		startYear     = flag.Int("start-year", 2020, "First calendar year")
		step          = flag.Int("step", 8, "Days between samples (compositing period)")
		base          = flag.Float64("base", 0.2, "Dormant-season index value")
		amplitude     = flag.Float64("amplitude", 0.55, "Seasonal amplitude above base")
		sos           = flag.Float64("sos", 120, "Green-up inflection day of year")
		eos           = flag.Float64("eos", 280, "Senescence inflection day of year")
		noise         = flag.Float64("noise", 0.02, "Gaussian noise sigma")
		cloudFraction = flag.Float64("cloud-fraction", 0.1, "Fraction of samples flagged cloudy")
		seed          = flag.Int64("seed", 42, "Random seed")
		output        = flag.String("output", "", "Output CSV path (default stdout)")
	)
	flag.Parse()

	if *step < 1 {
		fmt.Fprintln(os.Stderr, "Error: -step must be at least 1")
		os.Exit(1)
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", *output, err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	rng := rand.New(rand.NewSource(*seed))
	w := csv.NewWriter(out)
	defer w.Flush()

	w.Write([]string{"date", "value", "quality"})

	for y := 0; y < *years; y++ {
		year := *startYear + y
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		for doy := 0; doy < 365; doy += *step {
			v := doubleLogistic(float64(doy+1), *base, *amplitude, *sos, *eos)
			v += rng.NormFloat64() * *noise

			quality := 0
			if rng.Float64() < *cloudFraction {
				// Cloud contamination depresses the index.
				v -= 0.1 + 0.3*rng.Float64()
				quality = 3
			}

			w.Write([]string{
				start.AddDate(0, 0, doy).Format("2006-01-02"),
				strconv.FormatFloat(v, 'f', 4, 64),
				strconv.Itoa(quality),
			})
		}
	}

	if err := w.Error(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
		os.Exit(1)
	}
}

// doubleLogistic evaluates the standard two-sigmoid seasonal curve:
// a rise centered on sos and a decline centered on eos.
func doubleLogistic(doy, base, amplitude, sos, eos float64) float64 {
	rise := 1.0 / (1.0 + math.Exp(-0.09*(doy-sos)))
	fall := 1.0 / (1.0 + math.Exp(-0.08*(doy-eos)))
	return base + amplitude*(rise-fall)
}
