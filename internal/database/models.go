package database

import "time"

// ExtractionRun records one invocation of the pipeline over a series or
// grid, so persisted transition rows can be traced back to the exact
// parameters that produced them.
type ExtractionRun struct {
	ID        string    `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	Source    string    `gorm:"not null"`
	Window    int       `gorm:"not null"`
	PolyOrder int       `gorm:"not null"`
	Rows      int
	Cols      int
}

// TransitionRecord is one extracted crossing (or its absence) for one
// cell and year. Status is "ok", "nodata" or "failed"; DayOfYear is 0
// unless Status is "ok" and the threshold was crossed.
type TransitionRecord struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	RunID      string `gorm:"index;not null"`
	Row        int    `gorm:"not null"`
	Col        int    `gorm:"not null"`
	Year       int    `gorm:"index;not null"`
	Transition string `gorm:"not null"`
	DayOfYear  int
	Status     string `gorm:"not null"`
}
