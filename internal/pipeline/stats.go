package pipeline

// RunStats tracks aggregate counters across a batch run.
type RunStats struct {
	Total         int   // Video files discovered.
	Ranked        int   // Files scored and included in the report.
	Failed        int   // Files that could not be analyzed (or report write failure).
	TotalBytes    int64 // Combined size of ranked files.
	ReportWritten bool
}
