// greenwave extracts phenology transition dates from a vegetation index
// time series. Input is a CSV of date,value[,quality] rows; output is a
// per-year transition table, optionally written to CSV and/or persisted
// to a SQLite results database.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/mthurman/greenwave/internal/config"
	"github.com/mthurman/greenwave/internal/database"
	"github.com/mthurman/greenwave/internal/log"
	"github.com/mthurman/greenwave/pkg/phenology"
	"github.com/mthurman/greenwave/pkg/photoperiod"
)

const unsetLatitude = -999.0

func main() {
	var (
		input      = flag.String("input", "", "Input CSV file with date,value[,quality] rows")
		configPath = flag.String("config", "", "Optional YAML config file")
		window     = flag.Int("window", 0, "Savitzky-Golay window length (overrides config)")
		polyOrder  = flag.Int("order", 0, "Savitzky-Golay polynomial order (overrides config)")
		quality    = flag.String("quality", "", "Worst accepted quality flag: good, marginal, snow-ice, cloudy")
		latitude   = flag.Float64("latitude", unsetLatitude, "Site latitude in degrees, adds day length to the report")
		csvOutput  = flag.String("csv", "", "Optional CSV output file path")
		dbPath     = flag.String("db", "", "Optional SQLite database to persist results")
		debug      = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: -input is required")
		flag.Usage()
		os.Exit(1)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
	}
	if *window > 0 {
		cfg.Smoothing.Window = *window
	}
	if *polyOrder > 0 {
		cfg.Smoothing.PolyOrder = *polyOrder
	}
	if *quality != "" {
		cfg.Quality = *quality
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	params, err := cfg.Params()
	if err != nil {
		log.Fatalf("Error in configuration: %v", err)
	}

	pipe, err := phenology.NewPipeline(params)
	if err != nil {
		log.Fatalf("Error building pipeline: %v", err)
	}

	samples, err := readSamples(*input)
	if err != nil {
		log.Fatalf("Error reading %s: %v", *input, err)
	}
	log.Debugf("read %d samples from %s", len(samples), *input)

	records, err := pipe.Run(samples)
	if err != nil {
		log.Fatalf("Error extracting phenology: %v", err)
	}

	printReport(records, params, *latitude)

	if *csvOutput != "" {
		if err := writeCSV(*csvOutput, records, params); err != nil {
			log.Fatalf("Error writing CSV: %v", err)
		}
		fmt.Printf("\nResults written to %s\n", *csvOutput)
	}

	if cfg.Database.Path != "" {
		client, err := database.NewClient(cfg.Database.Path, log.GetSugaredLogger())
		if err != nil {
			log.Fatalf("Error opening results database: %v", err)
		}
		defer client.Close()

		runID, err := client.NewRun(*input, params, 1, 1)
		if err != nil {
			log.Fatalf("Error storing run: %v", err)
		}
		if err := client.SaveSeriesRecords(runID, records); err != nil {
			log.Fatalf("Error storing records: %v", err)
		}
		fmt.Printf("\nResults stored as run %s in %s\n", runID, cfg.Database.Path)
	}
}

// readSamples parses date,value[,quality] rows. A header row is skipped
// when its first field is not a date.
func readSamples(path string) ([]phenology.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var samples []phenology.Sample
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		if len(record) < 2 {
			return nil, fmt.Errorf("line %d: expected at least 2 fields, got %d", line, len(record))
		}

		date, err := time.Parse("2006-01-02", record[0])
		if err != nil {
			if line == 1 {
				continue // header row
			}
			return nil, fmt.Errorf("line %d: bad date %q: %v", line, record[0], err)
		}

		value, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad value %q: %v", line, record[1], err)
		}

		sample := phenology.Sample{Date: date, Value: value}
		if len(record) > 2 && record[2] != "" {
			q, err := strconv.Atoi(record[2])
			if err != nil || q < 0 || q > 3 {
				return nil, fmt.Errorf("line %d: bad quality flag %q", line, record[2])
			}
			sample.Quality = phenology.QualityFlag(q)
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

func printReport(records map[int]phenology.YearRecord, params phenology.Params, latitude float64) {
	fmt.Printf("Phenology Transition Report\n")
	fmt.Printf("===========================\n\n")
	fmt.Printf("Filter: window=%d order=%d\n\n", params.Window, params.PolyOrder)

	for _, year := range phenology.Years(records) {
		rec := records[year]
		fmt.Printf("%d:\n", year)
		if rec.Err != nil {
			fmt.Printf("  failed: %v\n", rec.Err)
			continue
		}
		for _, tr := range params.Transitions {
			crossing := rec.Transitions[tr.Name]
			if !crossing.Defined {
				fmt.Printf("  %-12s  not crossed (threshold %.2f)\n", tr.Name, tr.Threshold)
				continue
			}
			date := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, crossing.DOY-1)
			if latitude != unsetLatitude {
				hours := photoperiod.DayLength(crossing.DOY, latitude)
				fmt.Printf("  %-12s  DOY %3d  (%s, %.1fh daylight)\n",
					tr.Name, crossing.DOY, date.Format("Jan 02"), hours)
			} else {
				fmt.Printf("  %-12s  DOY %3d  (%s)\n", tr.Name, crossing.DOY, date.Format("Jan 02"))
			}
		}
	}
}

func writeCSV(path string, records map[int]phenology.YearRecord, params phenology.Params) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"year", "transition", "doy", "status"}); err != nil {
		return err
	}

	for _, year := range phenology.Years(records) {
		rec := records[year]
		if rec.Err != nil {
			if err := w.Write([]string{strconv.Itoa(year), "*", "", "failed"}); err != nil {
				return err
			}
			continue
		}
		for _, tr := range params.Transitions {
			crossing := rec.Transitions[tr.Name]
			row := []string{strconv.Itoa(year), tr.Name, "", "ok"}
			if crossing.Defined {
				row[2] = strconv.Itoa(crossing.DOY)
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return w.Error()
}
