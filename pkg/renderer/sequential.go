package renderer

// renderSequential renders columns left to right on the calling goroutine
func (rt *Raytracer) renderSequential(job *renderJob) error {
	for column := 0; column < job.width; column++ {
		if err := job.renderColumn(column); err != nil {
			return err
		}
		rt.progress.ColumnCompleted(column+1, job.width)
	}
	return nil
}
