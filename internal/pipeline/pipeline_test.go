package pipeline

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/rankmaster/internal/config"
	"github.com/backmassage/rankmaster/internal/logging"
	"github.com/backmassage/rankmaster/internal/mediainfo"
	"github.com/backmassage/rankmaster/internal/report"
)

// --- Discover tests ---

func TestDiscover_FiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "movie.mkv")
	touch(t, dir, "show.mp4")
	touch(t, dir, "clip.webm")
	touch(t, dir, "music.mp3")
	touch(t, dir, "readme.txt")
	touch(t, dir, "video_quality_report.csv")

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	want := []string{"clip.webm", "movie.mkv", "show.mp4"}
	if !sliceEqual(files, want) {
		t.Errorf("got %v, want %v", files, want)
	}
}

func TestDiscover_AllVideoExtensions(t *testing.T) {
	dir := t.TempDir()
	exts := []string{".mp4", ".mkv", ".avi", ".mov", ".flv", ".webm"}
	for _, ext := range exts {
		touch(t, dir, "file"+ext)
	}
	touch(t, dir, "file.m4v") // Not on the allow-list.
	touch(t, dir, "file.jpg")

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != len(exts) {
		t.Errorf("got %d files (%v), want %d", len(files), files, len(exts))
	}
}

func TestDiscover_CaseInsensitiveExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "UPPER.MKV")
	touch(t, dir, "Mixed.Mp4")

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("got %v, want both files", files)
	}
}

func TestDiscover_NonRecursive(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "top.mkv")
	sub := filepath.Join(dir, "season1")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	touch(t, sub, "nested.mkv")

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 1 || files[0] != "top.mkv" {
		t.Errorf("got %v, want [top.mkv] (subdirectories must be ignored)", files)
	}
}

func TestDiscover_MissingDir(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

// --- Run tests ---

// fakeExtractor serves canned track lists keyed by base file name and can
// be told to fail specific files.
type fakeExtractor struct {
	tracks map[string][]mediainfo.Track
	fail   map[string]bool
}

func (f *fakeExtractor) Extract(_ context.Context, path string) ([]mediainfo.Track, error) {
	name := filepath.Base(path)
	if f.fail[name] {
		return nil, errors.New("unreadable container")
	}
	return f.tracks[name], nil
}

// Reference fixtures: a.mp4 scores 8, b.mkv scores 13.
func referenceTracks() map[string][]mediainfo.Track {
	return map[string][]mediainfo.Track{
		"a.mp4": {
			{Type: mediainfo.TrackGeneral, InternetMediaType: "video/mp4"},
			{Type: mediainfo.TrackVideo, Width: 1920, Height: 1080, BitRate: 6_000_000, CodecID: "avc1"},
			{Type: mediainfo.TrackAudio, Channels: 2, BitRate: 256_000},
		},
		"b.mkv": {
			{Type: mediainfo.TrackGeneral, InternetMediaType: "video/x-bluray"},
			{Type: mediainfo.TrackVideo, Width: 3840, Height: 2160, BitRate: 10_000_000, CodecID: "V_MPEGH/ISO/HEVC"},
			{Type: mediainfo.TrackAudio, Channels: 6, BitRate: 640_000},
		},
	}
}

func testConfig(dir string) config.Config {
	cfg := config.DefaultConfig()
	cfg.InputDir = dir
	cfg.ColorMode = config.ColorNever
	cfg.ShowFileStats = false
	return cfg
}

func testLogger(t *testing.T, cfg *config.Config) *logging.Logger {
	t.Helper()
	log, err := logging.NewLogger(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}

func TestRun_EndToEndRanking(t *testing.T) {
	dir := t.TempDir()
	writeVideo(t, dir, "a.mp4")
	writeVideo(t, dir, "b.mkv")

	aTime := time.Date(2025, 12, 1, 8, 0, 0, 0, time.Local)
	bTime := time.Date(2026, 3, 14, 21, 30, 5, 0, time.Local)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "a.mp4"), aTime, aTime))
	require.NoError(t, os.Chtimes(filepath.Join(dir, "b.mkv"), bTime, bTime))

	cfg := testConfig(dir)
	log := testLogger(t, &cfg)
	ext := &fakeExtractor{tracks: referenceTracks()}

	stats := Run(context.Background(), &cfg, log, ext)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 2, stats.Ranked)
	assert.Equal(t, 0, stats.Failed)
	assert.True(t, stats.ReportWritten)

	records := readReport(t, filepath.Join(dir, config.DefaultReportName))
	require.Len(t, records, 3)
	assert.Equal(t, report.Header, records[0])

	// b.mkv (13) outranks a.mp4 (8).
	assert.Equal(t, "b.mkv", records[1][0])
	assert.Equal(t, "13", records[1][15])
	assert.Equal(t, bTime.Format(report.TimeLayout), records[1][16])

	assert.Equal(t, "a.mp4", records[2][0])
	assert.Equal(t, "8", records[2][15])
	assert.Equal(t, aTime.Format(report.TimeLayout), records[2][16])
}

func TestRun_StableTieBreak(t *testing.T) {
	dir := t.TempDir()
	names := []string{"alpha.mkv", "bravo.mkv", "charlie.mkv"}
	tracks := map[string][]mediainfo.Track{}
	for _, n := range names {
		writeVideo(t, dir, n)
		tracks[n] = referenceTracks()["a.mp4"] // Identical scores.
	}

	cfg := testConfig(dir)
	log := testLogger(t, &cfg)

	stats := Run(context.Background(), &cfg, log, &fakeExtractor{tracks: tracks})
	require.Equal(t, 3, stats.Ranked)

	records := readReport(t, filepath.Join(dir, config.DefaultReportName))
	require.Len(t, records, 4)
	// Equal totals keep enumeration (lexical) order.
	assert.Equal(t, "alpha.mkv", records[1][0])
	assert.Equal(t, "bravo.mkv", records[2][0])
	assert.Equal(t, "charlie.mkv", records[3][0])
}

func TestRun_ParallelMatchesSequential(t *testing.T) {
	dir := t.TempDir()
	names := []string{"one.mkv", "two.mkv", "three.mkv", "four.mkv", "five.mkv"}
	tracks := map[string][]mediainfo.Track{}
	for i, n := range names {
		writeVideo(t, dir, n)
		// Vary heights so scores differ but include ties.
		h := []int{2160, 1080, 1080, 720, 480}[i]
		tracks[n] = []mediainfo.Track{{Type: mediainfo.TrackVideo, Width: 1920, Height: h}}
	}

	order := func(jobs int) []string {
		cfg := testConfig(dir)
		cfg.Jobs = jobs
		cfg.ReportName = "report.csv"
		log := testLogger(t, &cfg)
		stats := Run(context.Background(), &cfg, log, &fakeExtractor{tracks: tracks})
		require.Equal(t, len(names), stats.Ranked)

		records := readReport(t, filepath.Join(dir, "report.csv"))
		var got []string
		for _, rec := range records[1:] {
			got = append(got, rec[0])
		}
		return got
	}

	sequential := order(1)
	parallel := order(4)
	assert.Equal(t, sequential, parallel, "ordering must not depend on completion order")
}

func TestRun_SkipPolicyExcludesFailedFile(t *testing.T) {
	dir := t.TempDir()
	writeVideo(t, dir, "a.mp4")
	writeVideo(t, dir, "b.mkv")
	writeVideo(t, dir, "corrupt.avi")

	cfg := testConfig(dir)
	log := testLogger(t, &cfg)
	ext := &fakeExtractor{
		tracks: referenceTracks(),
		fail:   map[string]bool{"corrupt.avi": true},
	}

	stats := Run(context.Background(), &cfg, log, ext)
	assert.Equal(t, 2, stats.Ranked)
	assert.Equal(t, 1, stats.Failed)
	assert.True(t, stats.ReportWritten)

	records := readReport(t, filepath.Join(dir, config.DefaultReportName))
	require.Len(t, records, 3)
	for _, rec := range records[1:] {
		assert.NotEqual(t, "corrupt.avi", rec[0])
	}
}

func TestRun_StrictPolicyAbortsWithoutReport(t *testing.T) {
	dir := t.TempDir()
	writeVideo(t, dir, "a.mp4")
	writeVideo(t, dir, "corrupt.avi")

	cfg := testConfig(dir)
	cfg.Strict = true
	log := testLogger(t, &cfg)
	ext := &fakeExtractor{
		tracks: referenceTracks(),
		fail:   map[string]bool{"corrupt.avi": true},
	}

	stats := Run(context.Background(), &cfg, log, ext)
	assert.NotZero(t, stats.Failed)
	assert.False(t, stats.ReportWritten)

	_, err := os.Stat(filepath.Join(dir, config.DefaultReportName))
	assert.True(t, os.IsNotExist(err), "strict failure must not leave a report behind")
}

func TestRun_TinyFileCountsAsFailed(t *testing.T) {
	dir := t.TempDir()
	writeVideo(t, dir, "a.mp4")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stub.mkv"), []byte("x"), 0o644))

	cfg := testConfig(dir)
	log := testLogger(t, &cfg)

	stats := Run(context.Background(), &cfg, log, &fakeExtractor{tracks: referenceTracks()})
	assert.Equal(t, 1, stats.Ranked)
	assert.Equal(t, 1, stats.Failed)
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	writeVideo(t, dir, "a.mp4")

	cfg := testConfig(dir)
	cfg.DryRun = true
	log := testLogger(t, &cfg)

	stats := Run(context.Background(), &cfg, log, &fakeExtractor{tracks: referenceTracks()})
	assert.Equal(t, 1, stats.Ranked)
	assert.False(t, stats.ReportWritten)

	_, err := os.Stat(filepath.Join(dir, config.DefaultReportName))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_EmptyFolder(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	log := testLogger(t, &cfg)

	stats := Run(context.Background(), &cfg, log, &fakeExtractor{})
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.Failed)
	_, err := os.Stat(filepath.Join(dir, config.DefaultReportName))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeVideo(t, dir, "a.mp4")

	cfg := testConfig(dir)
	log := testLogger(t, &cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats := Run(ctx, &cfg, log, &fakeExtractor{tracks: referenceTracks()})
	assert.False(t, stats.ReportWritten)
	_, err := os.Stat(filepath.Join(dir, config.DefaultReportName))
	assert.True(t, os.IsNotExist(err), "interrupt must not leave a partial report")
}

// --- helpers ---

// writeVideo creates a file large enough to pass the minimum-size guard.
func writeVideo(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), bytes.Repeat([]byte("v"), 2048), 0o644); err != nil {
		t.Fatal(err)
	}
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readReport(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func sliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
