// Package config holds runtime configuration: defaults, environment
// overrides, CLI flag parsing, and validation.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultReportName is the CSV artifact written inside the analyzed folder
// unless --output overrides it.
const DefaultReportName = "video_quality_report.csv"

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overlaid with environment variables by [LoadEnv], and finally mutated by
// [ParseFlags] before being passed (by pointer) to packages that need it.
type Config struct {
	// Path (set from the positional arg).
	InputDir string

	// Report output.
	ReportName string `env:"RANKMASTER_REPORT_NAME"` // Default: video_quality_report.csv.

	// Behavior flags.
	Jobs   int  `env:"RANKMASTER_JOBS"` // Concurrent analyses. Default: 1 (sequential).
	Strict bool // Abort the whole run on the first extraction failure.
	DryRun bool // Rank and print, but do not write the CSV.

	// Display and logging.
	Verbose       bool
	ShowFileStats bool      // Default: true. Cleared by --no-stats.
	ColorMode     ColorMode `env:"RANKMASTER_COLOR"`    // Default: "auto".
	LogFile       string    `env:"RANKMASTER_LOG_FILE"` // Optional log file path.
	CheckOnly     bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// [LoadEnv] and [ParseFlags] apply overrides.
func DefaultConfig() Config {
	return Config{
		ReportName:    DefaultReportName,
		Jobs:          1,
		Strict:        false,
		DryRun:        false,
		Verbose:       false,
		ShowFileStats: true,
		ColorMode:     ColorAuto,
		CheckOnly:     false,
	}
}

// LoadEnv overlays RANKMASTER_* environment variables onto cfg. Flags parsed
// afterwards still win, giving the precedence flags > env > defaults.
func (c *Config) LoadEnv() error {
	if err := cleanenv.ReadEnv(c); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	return nil
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum and range fields. When not in CheckOnly mode it also
// requires the input directory argument.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1 (got %d)", c.Jobs)
	}

	if c.ReportName == "" {
		return errors.New("report name must not be empty")
	}
	if strings.ContainsAny(c.ReportName, `/\`) {
		return fmt.Errorf("report name must be a bare file name (got %q)", c.ReportName)
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputDir == "" {
		return errors.New("need exactly one input directory")
	}
	return nil
}
