// Command rankmaster is the entrypoint for the RankMaster video quality
// ranking CLI. It parses config, and either runs system check (--check) or
// the score/rank/report pipeline over one directory of video files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/rankmaster/internal/check"
	"github.com/backmassage/rankmaster/internal/config"
	"github.com/backmassage/rankmaster/internal/display"
	"github.com/backmassage/rankmaster/internal/logging"
	"github.com/backmassage/rankmaster/internal/mediainfo"
	"github.com/backmassage/rankmaster/internal/pipeline"
)

// version and commit are set at build time via -ldflags (e.g. Makefile).
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 1. Layered config: defaults, then environment, then CLI flags.
	cfg := config.DefaultConfig()
	if err := cfg.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "rankmaster: %v\n", err)
		return 1
	}
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "rankmaster: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "rankmaster: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rankmaster: %v\n", err)
		return 1
	}
	defer log.Close()

	display.PrintBanner()

	// 2. If the user asked for a system check, run it and exit successfully.
	if cfg.CheckOnly {
		check.RunCheck(log)
		return 0
	}

	// 3. The input must be an existing directory; anything else is a hard
	// error before any extraction starts.
	fi, err := os.Stat(cfg.InputDir)
	if err != nil {
		log.Error("Input not found: %s", cfg.InputDir)
		return 1
	}
	if !fi.IsDir() {
		log.Error("Input is not a directory: %s", cfg.InputDir)
		return 1
	}

	log.Info("=== RankMaster v%s ===", version)
	log.Info("Folder: %s", cfg.InputDir)
	if cfg.DryRun {
		log.Warn("DRY RUN")
	}
	log.Info("")

	// 4. The MediaInfo CLI must be on PATH; fail fast otherwise.
	if err := check.CheckDeps(); err != nil {
		log.Error("%v", err)
		return 1
	}

	// 5. Cancel the batch on SIGINT/SIGTERM; workers stop at the next file
	// boundary and no report is written.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Warn("Received %s, stopping...", sig)
		cancel()
	}()

	stats := pipeline.Run(ctx, &cfg, log, mediainfo.CommandExtractor{})
	if stats.Failed > 0 {
		return 1
	}
	return 0
}
