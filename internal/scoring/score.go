// Package scoring maps a file's extracted track list to a deterministic
// quality breakdown. The rubric lives in rubric.go as ordered threshold and
// substring tables so rule changes never touch the fold below.
package scoring

import (
	"fmt"
	"strings"

	"github.com/backmassage/rankmaster/internal/mediainfo"
)

// UnknownLabel is the raw-value placeholder used when a track never
// reported the underlying field.
const UnknownLabel = "Unknown"

// Breakdown is one file's scoring result: six sub-scores, their total, and
// the raw values each sub-score was derived from. Zero-valued numeric raw
// fields mean "not reported" (widths, bitrates and channel counts are
// always positive when present).
type Breakdown struct {
	Width        int
	Height       int
	Resolution   string // "WxH", or "Unknown" when no video track reported dimensions.
	VideoBitRate int64
	VideoCodec   string // Lower-cased codec identifier, or "Unknown".

	AudioChannels int
	AudioBitRate  int64

	SourceType string // "BluRay", or empty when untagged.

	ResolutionScore    int
	VideoBitRateScore  int
	VideoCodecScore    int
	AudioChannelsScore int
	AudioBitRateScore  int
	SourceScore        int

	Total int
}

// Score folds a file's track list into a Breakdown. It is pure and total:
// any input, including an empty track list, yields a valid zero-or-better
// breakdown, and Total always equals the sum of the six sub-scores.
//
// When a file carries several tracks of the same type, each reported field
// of a later track overwrites the earlier one's value and sub-score; fields
// the later track does not report leave the earlier result in place.
func Score(tracks []mediainfo.Track) Breakdown {
	b := Breakdown{
		Resolution: UnknownLabel,
		VideoCodec: UnknownLabel,
	}

	for _, t := range tracks {
		switch t.Type {
		case mediainfo.TrackVideo:
			applyVideo(&b, t)
		case mediainfo.TrackAudio:
			applyAudio(&b, t)
		case mediainfo.TrackGeneral:
			applyGeneral(&b, t)
		}
	}

	b.Total = b.ResolutionScore + b.VideoBitRateScore + b.VideoCodecScore +
		b.AudioChannelsScore + b.AudioBitRateScore + b.SourceScore
	return b
}

func applyVideo(b *Breakdown, t mediainfo.Track) {
	if t.Width > 0 && t.Height > 0 {
		b.Width = t.Width
		b.Height = t.Height
		b.Resolution = fmt.Sprintf("%dx%d", t.Width, t.Height)
		b.ResolutionScore = heightScore(t.Height)
	}
	if t.BitRate > 0 {
		b.VideoBitRate = t.BitRate
		b.VideoBitRateScore = rateScore(videoBitRateBands, t.BitRate)
	}
	if t.CodecID != "" {
		codec := strings.ToLower(t.CodecID)
		b.VideoCodec = codec
		b.VideoCodecScore = codecScore(codec)
	}
}

func applyAudio(b *Breakdown, t mediainfo.Track) {
	if t.Channels > 0 {
		b.AudioChannels = t.Channels
		b.AudioChannelsScore = channelScore(t.Channels)
	}
	if t.BitRate > 0 {
		b.AudioBitRate = t.BitRate
		b.AudioBitRateScore = rateScore(audioBitRateBands, t.BitRate)
	}
}

func applyGeneral(b *Breakdown, t mediainfo.Track) {
	if t.InternetMediaType != "" && sourceMatch(t.InternetMediaType) {
		b.SourceType = BluRaySourceLabel
		b.SourceScore = MaxSourceScore
	}
}
