// Package report renders the ranked results as the CSV artifact. Column
// order and header text are frozen; downstream spreadsheets key on them.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/backmassage/rankmaster/internal/scoring"
)

// TimeLayout is the Last Modified column format (local time).
const TimeLayout = "2006-01-02 15:04:05"

// Header is the fixed CSV column schema.
var Header = []string{
	"File Name",
	"Width", "Height", "Resolution (px)", "Resolution Score",
	"Video Bitrate (bps)", "Video Bitrate Score",
	"Video Codec", "Video Codec Score",
	"Audio Channels", "Audio Channels Score",
	"Audio Bitrate (bps)", "Audio Bitrate Score",
	"Source Type", "Source Score",
	"Total Score", "Last Modified",
}

// Row is one ranked file: its score breakdown plus the file name and
// last-modification timestamp. Rows are immutable once assembled.
type Row struct {
	Name     string
	Modified time.Time
	scoring.Breakdown
}

// Record renders the row as CSV cells in Header order. Unreported numeric
// raw values (zero) render as empty cells; scores always render, including
// zeros.
func (r *Row) Record() []string {
	b := &r.Breakdown
	return []string{
		r.Name,
		optInt(b.Width), optInt(b.Height), b.Resolution, strconv.Itoa(b.ResolutionScore),
		optInt64(b.VideoBitRate), strconv.Itoa(b.VideoBitRateScore),
		b.VideoCodec, strconv.Itoa(b.VideoCodecScore),
		optInt(b.AudioChannels), strconv.Itoa(b.AudioChannelsScore),
		optInt64(b.AudioBitRate), strconv.Itoa(b.AudioBitRateScore),
		b.SourceType, strconv.Itoa(b.SourceScore),
		strconv.Itoa(b.Total), r.Modified.Format(TimeLayout),
	}
}

// Write serializes rows to a UTF-8 CSV file at path: header first, then one
// record per row in the order given. Row order is the ranking; Write never
// reorders.
func Write(rows []Row, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		f.Close()
		return fmt.Errorf("write report header: %w", err)
	}
	for i := range rows {
		if err := w.Write(rows[i].Record()); err != nil {
			f.Close()
			return fmt.Errorf("write report row %q: %w", rows[i].Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush report: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close report %q: %w", path, err)
	}
	return nil
}

func optInt(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func optInt64(n int64) string {
	if n <= 0 {
		return ""
	}
	return strconv.FormatInt(n, 10)
}
