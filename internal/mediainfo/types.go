package mediainfo

// TrackType identifies the kind of media stream a Track describes.
type TrackType string

const (
	TrackGeneral TrackType = "General" // Container-level metadata.
	TrackVideo   TrackType = "Video"
	TrackAudio   TrackType = "Audio"
)

// Track holds one media stream's properties as reported by MediaInfo.
// Zero values mean "not reported by the container"; no field is ever
// synthesized. Tracks are produced by extraction and only read afterwards.
type Track struct {
	Type TrackType

	// Video track fields.
	Width   int
	Height  int
	CodecID string

	// Shared by video and audio tracks (bits/sec).
	BitRate int64

	// Audio track fields.
	Channels int

	// General track fields.
	InternetMediaType string
}
