package mediainfo

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Extractor returns the track list for one media file. Implementations may
// fail on unreadable or corrupt files; they never partially succeed.
type Extractor interface {
	Extract(ctx context.Context, path string) ([]Track, error)
}

// CommandExtractor shells out to the MediaInfo CLI. It is the production
// Extractor; tests substitute fixture-backed implementations.
type CommandExtractor struct{}

// Extract runs a single `mediainfo --Output=JSON` call against path and
// returns the parsed track list.
func (CommandExtractor) Extract(ctx context.Context, path string) ([]Track, error) {
	cmd := exec.CommandContext(ctx, "mediainfo", "--Output=JSON", path)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("mediainfo %q: %w", path, err)
	}

	return ParseJSON(out)
}

// ParseJSON converts raw MediaInfo JSON output into a track list.
// Exported for testing without a real MediaInfo binary.
func ParseJSON(data []byte) ([]Track, error) {
	var raw miOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse mediainfo JSON: %w", err)
	}

	tracks := make([]Track, 0, len(raw.Media.Tracks))
	for i := range raw.Media.Tracks {
		tracks = append(tracks, convertTrack(&raw.Media.Tracks[i]))
	}
	return tracks, nil
}

// --- MediaInfo JSON wire types ---
// MediaInfo reports every numeric field as a string; conversion happens in
// the lenient parse helpers below.

type miOutput struct {
	Media miMedia `json:"media"`
}

type miMedia struct {
	Ref    string    `json:"@ref"`
	Tracks []miTrack `json:"track"`
}

type miTrack struct {
	Type              string `json:"@type"`
	Width             string `json:"Width"`
	Height            string `json:"Height"`
	BitRate           string `json:"BitRate"`
	CodecID           string `json:"CodecID"`
	Channels          string `json:"Channels"`
	InternetMediaType string `json:"InternetMediaType"`
}

// --- Conversion from wire types to domain types ---

func convertTrack(t *miTrack) Track {
	return Track{
		Type:              TrackType(t.Type),
		Width:             parseInt(t.Width),
		Height:            parseInt(t.Height),
		BitRate:           parseInt64(t.BitRate),
		CodecID:           strings.TrimSpace(t.CodecID),
		Channels:          parseInt(t.Channels),
		InternetMediaType: strings.TrimSpace(t.InternetMediaType),
	}
}

// --- Numeric parsing helpers ---
// Malformed values degrade to zero ("not reported") rather than erroring;
// a bad field must never fail the whole file.

func parseInt64(s string) int64 {
	s = strings.TrimSpace(s)
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

func parseInt(s string) int {
	s = strings.TrimSpace(s)
	n, _ := strconv.Atoi(s)
	return n
}
