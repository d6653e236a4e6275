package pipeline

import (
	"os"
	"path/filepath"
	"strings"
)

// Scored video file extensions (lowercase, with leading dot). Fixed
// allow-list; anything else in the folder is ignored, including the report
// CSV a previous run left behind.
var videoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
	".flv":  true,
	".webm": true,
}

// Discover lists the video files directly inside inputDir (non-recursive),
// matched by extension case-insensitively. Returned names keep the
// directory-listing order (lexical); that order is the ranking tie-break,
// so it must stay deterministic.
func Discover(inputDir string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if videoExtensions[ext] {
			files = append(files, e.Name())
		}
	}
	return files, nil
}
