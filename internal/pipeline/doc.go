// Package pipeline orchestrates file discovery, per-file extraction and
// scoring, ranking, and report output.
//
// Run is the batch entry point: discover -> for each file: stat -> extract
// -> score -> assemble row -> stable sort by total score -> write CSV ->
// print ranked summary. Extraction is injected as a mediainfo.Extractor so
// the whole pipeline runs against synthetic fixtures in tests.
//
// Two failure policies exist for per-file extraction errors: the default
// skips the file with a warning and keeps going; --strict aborts the whole
// batch and writes no report.
package pipeline
