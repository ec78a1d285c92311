package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	ftracker "fit-tracker"
	"fit-tracker/sensor"
	"github.com/google/uuid"
)

const manifestFileName = "manifest.json"

// Run reads the configured inputs, prints one report line per sample and,
// when OutDir is set, writes the reports artifact and manifest.json.
func Run(ctx context.Context, opts Options) (*Result, error) {
	format, err := normalizeFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	samples, err := loadSamples(opts.Inputs, opts.Athlete)
	if err != nil {
		return nil, err
	}

	if opts.OutDir != "" {
		if err := ensureOutputDir(opts.OutDir, opts.Overwrite); err != nil {
			return nil, err
		}
	}

	outcomes, err := Process(ctx, samples, stdout)
	if err != nil {
		return nil, err
	}

	res := &Result{
		RunID:    uuid.NewString(),
		Outcomes: outcomes,
	}
	for _, o := range outcomes {
		if o.NotFound {
			res.NotFound++
		} else {
			res.Resolved++
		}
	}
	if opts.OutDir == "" {
		return res, nil
	}

	reportsName := "reports." + format
	reportsPath := filepath.Join(opts.OutDir, reportsName)
	rows := BuildReportRows(outcomes)
	switch format {
	case "csv":
		err = writeReportsCSV(reportsPath, rows)
	case "json":
		err = writeReportsJSON(reportsPath, rows)
	case "parquet":
		err = writeReportsParquet(reportsPath, rows)
	}
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", reportsName, err)
	}

	inputs := opts.Inputs
	if len(inputs) == 0 {
		inputs = []string{}
	}
	manifest := Manifest{
		RunID:         res.RunID,
		GeneratedAt:   time.Now().UTC(),
		Inputs:        inputs,
		Format:        format,
		SampleCount:   len(outcomes),
		ResolvedCount: res.Resolved,
		NotFoundCount: res.NotFound,
		Artifacts:     []string{reportsName, manifestFileName},
	}
	manifestPath := filepath.Join(opts.OutDir, manifestFileName)
	if err := writeJSON(manifestPath, manifest); err != nil {
		return nil, fmt.Errorf("write %s: %w", manifestFileName, err)
	}

	res.OutputDir = opts.OutDir
	res.ReportsPath = reportsPath
	res.ManifestPath = manifestPath
	return res, nil
}

// BuildReportRows flattens resolved outcomes into export rows. Not-found
// samples carry no report and are left out.
func BuildReportRows(outcomes []Outcome) []ReportRow {
	rows := make([]ReportRow, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Report == nil {
			continue
		}
		rows = append(rows, ReportRow{
			Index:        o.Index,
			Code:         o.Sample.Code,
			Kind:         o.Report.Kind.String(),
			DurationH:    o.Report.Duration,
			DistanceKM:   o.Report.Distance,
			SpeedKMH:     o.Report.Speed,
			CaloriesKcal: o.Report.Calories,
			Message:      o.Line,
		})
	}
	return rows
}

func normalizeFormat(format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "parquet"
	}
	switch format {
	case "parquet", "csv", "json":
		return format, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected parquet|csv|json)", format)
	}
}

func loadSamples(inputs []string, athlete sensor.Athlete) ([]ftracker.Sample, error) {
	if len(inputs) == 0 {
		return sensor.DefaultPackages(), nil
	}
	var samples []ftracker.Sample
	for _, path := range inputs {
		got, err := sensor.ReadFile(path, athlete)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		samples = append(samples, got...)
	}
	return samples, nil
}

func ensureOutputDir(path string, overwrite bool) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("read output directory: %w", err)
	}
	if len(entries) > 0 && !overwrite {
		return fmt.Errorf("output directory is not empty: %s (set overwrite=true to allow)", path)
	}
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return encodeJSON(f, v)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
