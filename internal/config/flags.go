package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into report, behavior, display, and utility.
// Negated flags (e.g. --no-stats) are applied after Parse so Config defaults
// (and env overrides) hold unless the flag is actually set.

import (
	"flag"
	"fmt"
	"os"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and
// exits. On error it returns non-nil (e.g. unknown flag, missing positional arg).
func ParseFlags(cfg *Config, version string) error {
	fs := flag.NewFlagSet("rankmaster", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	// Negated/override flags: we capture bools then apply to cfg after Parse,
	// so that defaults from DefaultConfig() hold unless the user passes the flag.
	var negated negatedFlags

	defineReportFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, &negated)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(fs)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "rankmaster v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
// These either invert a default (e.g. noStats -> ShowFileStats=false) or
// trigger exit (showHelp, showVersion).
type negatedFlags struct {
	noStats     bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineReportFlags registers -o/--output.
func defineReportFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.ReportName, "output", cfg.ReportName, "Report file name (written inside the input directory)")
	fs.StringVar(&cfg.ReportName, "o", cfg.ReportName, "Same as --output")
}

// defineBehaviorFlags registers --jobs, --strict, --dry-run.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.Jobs, "jobs", cfg.Jobs, "Number of files to analyze concurrently")
	fs.IntVar(&cfg.Jobs, "j", cfg.Jobs, "Same as --jobs")
	fs.BoolVar(&cfg.Strict, "strict", false, "Abort the whole run on the first extraction failure")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Rank and print only; do not write the CSV report")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
}

// defineDisplayFlags registers --color, --no-color, --no-stats, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&n.noStats, "no-stats", false, "Hide per-file source stats")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated flag values into cfg (e.g. noStats -> ShowFileStats=false).
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noStats {
		cfg.ShowFileStats = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets InputDir from the single positional arg when not
// in CheckOnly mode.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("need exactly one input directory")
	}
	cfg.InputDir = NormalizeDirArg(args[0])
	return nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprint(os.Stdout, `Usage: rankmaster [flags] <input_dir>

Score the video files directly inside <input_dir> by technical quality
(resolution, bitrate, codec, audio, source tag) and write a ranked CSV
report into the same directory.

Report:
  -o, --output NAME     Report file name (default: `+DefaultReportName+`)

Behavior:
  -j, --jobs N          Analyze up to N files concurrently (default: 1)
      --strict          Abort the whole run on the first extraction failure
  -d, --dry-run         Rank and print only; do not write the CSV report

Display:
      --color           Force colored logs
      --no-color        Disable colored logs
      --no-stats        Hide per-file source stats
  -v, --verbose         Verbose output
  -l, --log FILE        Append logs to FILE

Utility:
  -c, --check           Run system diagnostics and exit
  -V, --version         Print version and exit
  -h, --help            Show this help and exit

Environment:
  RANKMASTER_REPORT_NAME, RANKMASTER_JOBS, RANKMASTER_COLOR,
  RANKMASTER_LOG_FILE (flags take precedence)
`)
}
