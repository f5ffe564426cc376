// Package database persists extraction results to a local SQLite file
// through GORM. The pipeline itself never touches storage; callers opt
// in from the command-line tools.
package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mthurman/greenwave/internal/log"
	"github.com/mthurman/greenwave/internal/raster"
	"github.com/mthurman/greenwave/pkg/phenology"
)

// Client holds the connection to the results database
type Client struct {
	DB     *gorm.DB
	logger *zap.SugaredLogger
}

// NewClient opens (or creates) the SQLite results database at path and
// migrates the schema.
func NewClient(path string, sugar *zap.SugaredLogger) (*Client, error) {
	// Route gorm logging through zap
	dbLogger := logger.New(
		zap.NewStdLog(log.GetZapLogger()),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, fmt.Errorf("unable to open results database %s: %w", path, err)
	}

	if err := db.AutoMigrate(&ExtractionRun{}, &TransitionRecord{}); err != nil {
		return nil, fmt.Errorf("unable to migrate results schema: %w", err)
	}

	return &Client{DB: db, logger: sugar}, nil
}

// NewRun creates and persists a run header for the given source and
// pipeline parameters, returning its generated ID.
func (c *Client) NewRun(source string, params phenology.Params, rows, cols int) (string, error) {
	run := ExtractionRun{
		ID:        uuid.New().String(),
		Source:    source,
		Window:    params.Window,
		PolyOrder: params.PolyOrder,
		Rows:      rows,
		Cols:      cols,
	}
	if err := c.DB.Create(&run).Error; err != nil {
		return "", fmt.Errorf("unable to store run: %w", err)
	}
	return run.ID, nil
}

// SaveSeriesRecords persists the per-year outcome of a single-series
// run as cell (0,0).
func (c *Client) SaveSeriesRecords(runID string, records map[int]phenology.YearRecord) error {
	var rows []TransitionRecord
	for _, year := range phenology.Years(records) {
		rec := records[year]
		if rec.Err != nil {
			rows = append(rows, TransitionRecord{
				RunID: runID, Year: year, Transition: "*", Status: "failed",
			})
			continue
		}
		for name, crossing := range rec.Transitions {
			row := TransitionRecord{
				RunID: runID, Year: year, Transition: name, Status: "ok",
			}
			if crossing.Defined {
				row.DayOfYear = crossing.DOY
			}
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	if err := c.DB.Create(&rows).Error; err != nil {
		return fmt.Errorf("unable to store transition records: %w", err)
	}
	if c.logger != nil {
		c.logger.Debugf("stored %d transition records for run %s", len(rows), runID)
	}
	return nil
}

// SaveGridRecords persists every cell/year outcome of a grid run. Cells
// without data or with failed pipelines get a single row with transition
// "*" so their state survives alongside computed dates.
func (c *Client) SaveGridRecords(runID string, params phenology.Params, result *raster.GridResult) error {
	var rows []TransitionRecord
	for _, year := range result.Years {
		for row := 0; row < result.Rows; row++ {
			for col := 0; col < result.Cols; col++ {
				status := result.Status(year, row, col)
				if status != raster.CellOK {
					rows = append(rows, TransitionRecord{
						RunID: runID, Row: row, Col: col, Year: year,
						Transition: "*", Status: status.String(),
					})
					continue
				}
				for _, tr := range params.Transitions {
					rec := TransitionRecord{
						RunID: runID, Row: row, Col: col, Year: year,
						Transition: tr.Name, Status: status.String(),
					}
					if doy, ok := result.DOY(year, tr.Name, row, col); ok {
						rec.DayOfYear = doy
					}
					rows = append(rows, rec)
				}
			}
		}
	}
	if len(rows) == 0 {
		return nil
	}
	if err := c.DB.CreateInBatches(&rows, 500).Error; err != nil {
		return fmt.Errorf("unable to store grid records: %w", err)
	}
	if c.logger != nil {
		c.logger.Debugf("stored %d grid records for run %s", len(rows), runID)
	}
	return nil
}

// RunRecords returns all persisted records of a run ordered by year and
// transition name.
func (c *Client) RunRecords(runID string) ([]TransitionRecord, error) {
	var rows []TransitionRecord
	if err := c.DB.Where("run_id = ?", runID).Order("year, transition").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("unable to query run %s: %w", runID, err)
	}
	return rows, nil
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
