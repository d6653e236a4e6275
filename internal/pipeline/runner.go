package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/backmassage/rankmaster/internal/config"
	"github.com/backmassage/rankmaster/internal/display"
	"github.com/backmassage/rankmaster/internal/logging"
	"github.com/backmassage/rankmaster/internal/mediainfo"
	"github.com/backmassage/rankmaster/internal/report"
	"github.com/backmassage/rankmaster/internal/scoring"
)

// Files smaller than this are treated as corrupt without invoking the
// extractor; no real video container fits in under a kilobyte.
const minFileSize = 1000

// Run is the top-level batch entry point. It discovers files, analyzes each
// one through the injected extractor, ranks the results, writes the CSV
// report, prints the console ranking, and returns aggregate stats.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, ext mediainfo.Extractor) RunStats {
	var stats RunStats

	files, err := Discover(cfg.InputDir)
	if err != nil {
		log.Error("File discovery failed: %v", err)
		stats.Failed++
		return stats
	}

	stats.Total = len(files)
	if stats.Total == 0 {
		log.Warn("No video files found in %s", cfg.InputDir)
		return stats
	}

	logBatchHeader(cfg, log, &stats)

	rows := analyzeAll(ctx, cfg, log, ext, files, &stats)

	if ctx.Err() != nil {
		log.Warn("Interrupted; no report written")
		return stats
	}

	if cfg.Strict && stats.Failed > 0 {
		log.Error("Extraction failed in strict mode; aborting without a report")
		return stats
	}

	sortByScore(rows)

	if cfg.DryRun {
		log.Warn("DRY RUN - report not written")
	} else {
		dest := filepath.Join(cfg.InputDir, cfg.ReportName)
		if err := report.Write(rows, dest); err != nil {
			log.Error("Cannot write report: %v", err)
			stats.Failed++
			return stats
		}
		stats.ReportWritten = true
		log.Success("Report saved as: %s", dest)
	}

	fmt.Println()
	display.PrintRanking(rows)
	logSummary(log, &stats)
	return stats
}

// analyzeAll runs stat+extract+score for every discovered file, up to
// cfg.Jobs at a time. Results land in an index-addressed slice so the
// returned row order is the enumeration order regardless of which worker
// finished first; the score sort later is stable on top of that.
func analyzeAll(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	ext mediainfo.Extractor,
	files []string,
	stats *RunStats,
) []report.Row {
	results := make([]*report.Row, len(files))
	sizes := make([]int64, len(files))
	failed := make([]bool, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Jobs)

	for i, name := range files {
		i, name := i, name
		g.Go(func() error {
			if gctx.Err() != nil {
				failed[i] = true
				return nil
			}

			log.Info("[%d/%d] %s", i+1, len(files), name)

			row, size, err := analyzeFile(gctx, cfg, log, ext, name)
			if err != nil {
				failed[i] = true
				if cfg.Strict {
					// Cancels gctx; remaining workers bail out above.
					return err
				}
				log.Warn("Skip %s: %v", name, err)
				return nil
			}

			results[i] = &row
			sizes[i] = size
			return nil
		})
	}

	// In strict mode Wait returns the first failure; it is already counted
	// below, so the error itself needs no further handling here.
	_ = g.Wait()

	rows := make([]report.Row, 0, len(files))
	for i := range files {
		switch {
		case results[i] != nil:
			rows = append(rows, *results[i])
			stats.Ranked++
			stats.TotalBytes += sizes[i]
		case failed[i]:
			stats.Failed++
		}
	}
	return rows
}

// analyzeFile handles one video file: validate -> extract -> score.
func analyzeFile(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	ext mediainfo.Extractor,
	name string,
) (report.Row, int64, error) {
	path := filepath.Join(cfg.InputDir, name)

	fi, err := os.Stat(path)
	if err != nil {
		return report.Row{}, 0, fmt.Errorf("stat: %w", err)
	}
	if fi.Size() < minFileSize {
		return report.Row{}, 0, fmt.Errorf("file too small (possibly corrupt): %d bytes", fi.Size())
	}

	tracks, err := ext.Extract(ctx, path)
	if err != nil {
		return report.Row{}, 0, fmt.Errorf("extract: %w", err)
	}

	b := scoring.Score(tracks)

	if cfg.ShowFileStats {
		logFileStats(log, &b)
	}
	if b.Total == 0 {
		log.Outlier("  Nothing scorable in %s", name)
	}

	return report.Row{Name: name, Modified: fi.ModTime(), Breakdown: b}, fi.Size(), nil
}

// sortByScore orders rows by total score descending. The sort is stable:
// equal totals keep their enumeration order, which is the documented
// tie-break.
func sortByScore(rows []report.Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total > rows[j].Total
	})
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("Found %d video files", stats.Total)
	log.Info("Report: %s", cfg.ReportName)
	if cfg.Jobs > 1 {
		log.Info("Concurrency: %d jobs", cfg.Jobs)
	}
	if cfg.Strict {
		log.Info("Failure policy: strict (abort batch on first extraction failure)")
	} else {
		log.Info("Failure policy: skip failed files and continue")
	}
	fmt.Println()
}

func logFileStats(log *logging.Logger, b *scoring.Breakdown) {
	log.Info("  Video: %s | %s | %s",
		b.Resolution, display.FormatBitrateLabel(b.VideoBitRate/1000), b.VideoCodec)
	if b.AudioChannels > 0 || b.AudioBitRate > 0 {
		log.Info("  Audio: %dch | %s",
			b.AudioChannels, display.FormatBitrateLabel(b.AudioBitRate/1000))
	}
}

func logSummary(log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d ranked, %d failed", stats.Ranked, stats.Failed)
	log.Info("  Total scanned: %s", display.FormatBytes(stats.TotalBytes))
}
