// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for the MediaInfo CLI.
package check

import (
	"errors"
	"os/exec"
	"strings"
)

// ErrMediaInfoNotFound is returned by CheckDeps when the MediaInfo CLI is
// missing from PATH.
var ErrMediaInfoNotFound = errors.New("mediainfo not found on PATH")

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the informational --check flow: it reports whether the
// MediaInfo CLI is available, its version, and whether JSON output works.
// It does not stop on failure.
func RunCheck(log Logger) {
	log.Info("=== System Check ===")

	checkMediaInfo(log)
	checkJSONOutput(log)
}

// checkMediaInfo verifies mediainfo is on PATH and logs its version string.
func checkMediaInfo(log Logger) {
	if _, err := exec.LookPath("mediainfo"); err != nil {
		log.Error("mediainfo not found")
		return
	}
	out, err := exec.Command("mediainfo", "--Version").Output()
	if err != nil {
		log.Warn("mediainfo found but --Version failed: %v", err)
		return
	}
	version := strings.TrimSpace(string(out))
	if idx := strings.Index(version, "\n"); idx > 0 {
		version = version[:idx]
	}
	log.Success("mediainfo: %s", version)
}

// checkJSONOutput verifies the installed build accepts --Output=JSON, which
// older MediaInfo releases lack.
func checkJSONOutput(log Logger) {
	log.Info("Testing JSON output support...")
	out, err := exec.Command("mediainfo", "--Output=JSON", "--Version").CombinedOutput()
	if err != nil {
		log.Warn("Could not probe JSON support: %v", err)
		return
	}
	if strings.Contains(string(out), "{") {
		log.Success("JSON output supported")
	} else {
		log.Error("This mediainfo build does not support --Output=JSON")
	}
}

// CheckDeps is the pre-pipeline validation: the MediaInfo CLI must be on
// PATH. Returns a sentinel error on failure.
func CheckDeps() error {
	if _, err := exec.LookPath("mediainfo"); err != nil {
		return ErrMediaInfoNotFound
	}
	return nil
}
