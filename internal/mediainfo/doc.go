// Package mediainfo provides MediaInfo-based media inspection and the typed
// track model consumed by the scorer. Each file costs exactly one
// `mediainfo --Output=JSON` invocation.
//
// The package deliberately knows nothing about scoring: it reports what the
// container declares (stream type, dimensions, bitrates, codec identifiers,
// channel counts, container media type) and leaves interpretation to the
// scoring package. Extraction is exposed behind the [Extractor] interface so
// the pipeline can be tested with synthetic track fixtures and no MediaInfo
// binary.
package mediainfo
