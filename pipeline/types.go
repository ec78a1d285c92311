package pipeline

import (
	"io"
	"time"

	ftracker "fit-tracker"
	"fit-tracker/sensor"
)

// Options configures a batch run.
type Options struct {
	Inputs    []string // sample files read in order; empty means the demo packages
	OutDir    string   // artifacts are only written when set
	Format    string   // parquet|csv|json
	Overwrite bool
	Athlete   sensor.Athlete
	Stdout    io.Writer
}

// Result describes one processed batch.
type Result struct {
	RunID        string    `json:"run_id"`
	Outcomes     []Outcome `json:"outcomes"`
	Resolved     int       `json:"resolved"`
	NotFound     int       `json:"not_found"`
	OutputDir    string    `json:"output_dir,omitempty"`
	ReportsPath  string    `json:"reports_path,omitempty"`
	ManifestPath string    `json:"manifest_path,omitempty"`
}

// Outcome is what the driver did with one sample.
type Outcome struct {
	Index    int              `json:"index"`
	Sample   ftracker.Sample  `json:"sample"`
	Report   *ftracker.Report `json:"report,omitempty"`
	NotFound bool             `json:"not_found"`
	Line     string           `json:"line"`
}

// ReportRow is one row of the reports artifact.
type ReportRow struct {
	Index        int     `json:"index"`
	Code         string  `json:"code"`
	Kind         string  `json:"kind"`
	DurationH    float64 `json:"duration_h"`
	DistanceKM   float64 `json:"distance_km"`
	SpeedKMH     float64 `json:"speed_kmh"`
	CaloriesKcal float64 `json:"calories_kcal"`
	Message      string  `json:"message"`
}

// Manifest captures run metadata and points at the reports artifact.
type Manifest struct {
	RunID         string    `json:"run_id"`
	GeneratedAt   time.Time `json:"generated_at"`
	Inputs        []string  `json:"inputs"`
	Format        string    `json:"format"`
	SampleCount   int       `json:"sample_count"`
	ResolvedCount int       `json:"resolved_count"`
	NotFoundCount int       `json:"not_found_count"`
	Artifacts     []string  `json:"artifacts"`
}
