// Package config parses ftracker command-line flags, falling back to
// FTRACKER_* environment variables for defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"fit-tracker/sensor"
)

// Config captures runtime configuration for the ftracker CLI.
type Config struct {
	OutDir    string
	Format    string
	Overwrite bool
	WeightKG  float64 // athlete weight applied to FIT sessions
	HeightCM  float64 // athlete height applied to FIT walking sessions
	LogLevel  string
	Inputs    []string
}

// Load parses args (without the program name). Flags win over the
// environment; unparsable environment values fall back to the built-in default.
func Load(args []string, output io.Writer) (Config, error) {
	var cfg Config
	athlete := sensor.DefaultAthlete()

	fs := flag.NewFlagSet("ftracker", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: ftracker [flags] [input.csv|input.jsonl|input.fit ...]")
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.OutDir, "out", getEnv("FTRACKER_OUT_DIR", ""), "directory for reports and manifest.json (empty: print only)")
	fs.StringVar(&cfg.Format, "format", getEnv("FTRACKER_FORMAT", "parquet"), "reports format: parquet|csv|json")
	fs.BoolVar(&cfg.Overwrite, "overwrite", getBoolEnv("FTRACKER_OVERWRITE", false), "allow writing into a non-empty output directory")
	fs.Float64Var(&cfg.WeightKG, "weight", getFloatEnv("FTRACKER_WEIGHT_KG", athlete.WeightKG), "athlete weight in kg for FIT input")
	fs.Float64Var(&cfg.HeightCM, "height", getFloatEnv("FTRACKER_HEIGHT_CM", athlete.HeightCM), "athlete height in cm for FIT input")
	fs.StringVar(&cfg.LogLevel, "log-level", getEnv("FTRACKER_LOG_LEVEL", "info"), "log level: debug|info|warn|error")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Inputs = fs.Args()

	if err := cfg.Athlete().Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Athlete is the body profile applied to FIT input.
func (c Config) Athlete() sensor.Athlete {
	return sensor.Athlete{WeightKG: c.WeightKG, HeightCM: c.HeightCM}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
