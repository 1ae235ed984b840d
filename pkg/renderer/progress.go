package renderer

import "time"

// ProgressSink receives render progress. Calls are made from a single
// goroutine, one render at a time.
type ProgressSink interface {
	// ColumnCompleted is called after each finished column
	ColumnCompleted(done, total int)
	// RenderFinished is called once after a successful render
	RenderFinished(elapsed time.Duration)
}

// NopProgress discards all progress reports
type NopProgress struct{}

func (NopProgress) ColumnCompleted(done, total int)      {}
func (NopProgress) RenderFinished(elapsed time.Duration) {}
