package scoring

import "strings"

// Per-category score ceilings. The rubric below never awards more than
// these; tests assert the bounds hold for arbitrary input.
const (
	MaxResolutionScore    = 4
	MaxVideoBitRateScore  = 3
	MaxVideoCodecScore    = 2
	MaxAudioChannelsScore = 2
	MaxAudioBitRateScore  = 1
	MaxSourceScore        = 2

	// MaxTotalScore is the sum of all category ceilings.
	MaxTotalScore = MaxResolutionScore + MaxVideoBitRateScore + MaxVideoCodecScore +
		MaxAudioChannelsScore + MaxAudioBitRateScore + MaxSourceScore
)

// heightBand awards score when the video height is at least Min pixels.
// Bands are ordered highest first; the first match wins.
type heightBand struct {
	Min   int
	Score int
}

var resolutionBands = []heightBand{
	{2000, 4}, // 2160p and other 4K-class masters.
	{1080, 3},
	{720, 2},
	{480, 1},
}

// rateBand awards score when the bitrate is strictly above Above bits/sec.
// Bands are ordered highest first; the first match wins.
type rateBand struct {
	Above int64
	Score int
}

var videoBitRateBands = []rateBand{
	{8_000_000, 3},
	{4_000_000, 2},
	{0, 1}, // Any reported positive bitrate earns the floor point.
}

var audioBitRateBands = []rateBand{
	{192_000, 1},
}

// codecRule awards score when the lower-cased codec identifier contains any
// of the listed substrings. Rules are ordered best codec first.
type codecRule struct {
	Substrings []string
	Score      int
}

var videoCodecRules = []codecRule{
	{[]string{"265", "hevc"}, 2},
	{[]string{"264"}, 1},
}

// BluRaySourceLabel is the source label reported when the container's
// media type carries a BluRay marker.
const BluRaySourceLabel = "BluRay"

const bluRayMarker = "blu"

func heightScore(height int) int {
	for _, band := range resolutionBands {
		if height >= band.Min {
			return band.Score
		}
	}
	return 0
}

func rateScore(bands []rateBand, bps int64) int {
	for _, band := range bands {
		if bps > band.Above {
			return band.Score
		}
	}
	return 0
}

func codecScore(codec string) int {
	for _, rule := range videoCodecRules {
		for _, sub := range rule.Substrings {
			if strings.Contains(codec, sub) {
				return rule.Score
			}
		}
	}
	return 0
}

// channelScore rewards 5.1-and-up layouts and plain stereo. Counts of 3, 4
// and 5 fall through both buckets and score nothing; ranked reports depend
// on this gap, so it is not a bucket to "fix".
func channelScore(channels int) int {
	switch {
	case channels >= 6:
		return MaxAudioChannelsScore
	case channels == 2:
		return 1
	default:
		return 0
	}
}

// sourceMatch reports whether a container media type string carries the
// BluRay marker (case-insensitive substring).
func sourceMatch(mediaType string) bool {
	return strings.Contains(strings.ToLower(mediaType), bluRayMarker)
}
