package ports

// Progress receives coarse-grained notifications as a run advances: one pair
// of events per source file, one after the merge, one after the write. The
// engine never depends on how (or whether) a host renders them. When file
// reads run in parallel the per-file events arrive from multiple goroutines,
// so sinks must be safe for concurrent use.
type Progress interface {
	FileStarted(path string)
	FileCompleted(path string, rowCount int)
	FileFailed(path string, reason error)
	MergeCompleted(matched, unmatched int)
	WriteCompleted(path string)
	RunFailed(reason error)
}

// NopProgress discards all events.
type NopProgress struct{}

func (NopProgress) FileStarted(string)        {}
func (NopProgress) FileCompleted(string, int) {}
func (NopProgress) FileFailed(string, error)  {}
func (NopProgress) MergeCompleted(int, int)   {}
func (NopProgress) WriteCompleted(string)     {}
func (NopProgress) RunFailed(error)           {}
