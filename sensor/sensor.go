// Package sensor reads workout sample packages from the sources a tracker
// receives them from: delimited text, JSON lines and FIT activity files.
package sensor

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	ftracker "fit-tracker"
)

// Athlete holds the body metrics that device files do not carry.
type Athlete struct {
	WeightKG float64
	HeightCM float64
}

// DefaultAthlete is the profile applied to FIT sessions when the caller
// provides no body metrics.
func DefaultAthlete() Athlete {
	return Athlete{WeightKG: 75, HeightCM: 180}
}

// Validate rejects profiles that would make the calorie formulas meaningless.
func (a Athlete) Validate() error {
	if !validMetric(a.WeightKG) {
		return fmt.Errorf("weight must be positive, got %v", a.WeightKG)
	}
	if !validMetric(a.HeightCM) {
		return fmt.Errorf("height must be positive, got %v", a.HeightCM)
	}
	return nil
}

func validMetric(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// DefaultPackages returns the demo batch: one swim, one run and one walk.
func DefaultPackages() []ftracker.Sample {
	return []ftracker.Sample{
		{Code: "SWM", Params: []float64{720, 1, 80, 25, 40}},
		{Code: "RUN", Params: []float64{15000, 1, 75}},
		{Code: "WLK", Params: []float64{9000, 1, 75, 180}},
	}
}

// ReadFile reads samples from path, choosing the decoder by extension:
// .csv, .jsonl/.ndjson or .fit.
func ReadFile(path string, athlete Athlete) ([]ftracker.Sample, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("input path is required")
	}

	var decode func(io.Reader) ([]ftracker.Sample, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".fit":
		return ReadFITFile(path, athlete)
	case ".csv":
		decode = ReadCSV
	case ".jsonl", ".ndjson":
		decode = ReadJSONL
	default:
		return nil, fmt.Errorf("unsupported input format %q (expected .csv|.jsonl|.fit)", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	return decode(f)
}
