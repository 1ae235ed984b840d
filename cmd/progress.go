package cmd

import (
	"time"
)

// logProgress reports render progress through the logger in steps of
// roughly stepPercent percent.
type logProgress struct {
	stepPercent int
	lastPercent int
	start       time.Time
}

func newLogProgress(stepPercent int) *logProgress {
	if stepPercent <= 0 {
		stepPercent = 5
	}
	return &logProgress{stepPercent: stepPercent, start: time.Now()}
}

func (p *logProgress) ColumnCompleted(done, total int) {
	if total <= 0 {
		return
	}
	percent := done * 100 / total
	if percent < p.lastPercent+p.stepPercent && done != total {
		return
	}
	p.lastPercent = percent

	elapsed := time.Since(p.start)
	var eta time.Duration
	if done > 0 {
		eta = time.Duration(float64(elapsed) * float64(total-done) / float64(done))
	}
	logger.Infof("rendering: %3d%% (%d/%d columns) elapsed %s, eta %s",
		percent, done, total, elapsed.Round(time.Millisecond), eta.Round(time.Millisecond))
}

func (p *logProgress) RenderFinished(elapsed time.Duration) {
	logger.Infof("rendering: 100%% done in %s", elapsed.Round(time.Millisecond))
}
