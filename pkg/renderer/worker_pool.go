package renderer

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// ColumnTask represents a column rendering task for the worker pool
type ColumnTask struct {
	Column int
}

// ColumnResult contains the result from rendering a column
type ColumnResult struct {
	Column  int
	Skipped bool // The pool was aborted before the column started
	Error   error
}

// WorkerPool renders columns in parallel. Columns own disjoint pixels, so
// workers write to the shared texture without locking.
type WorkerPool struct {
	taskQueue   chan ColumnTask
	resultQueue chan ColumnResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
	aborted     atomic.Bool
}

// Worker handles individual column rendering tasks
type Worker struct {
	ID          int
	render      func(column int) error
	taskQueue   chan ColumnTask
	resultQueue chan ColumnResult
	pool        *WorkerPool
}

// NewWorkerPool creates a worker pool with room for numTasks queued tasks
// and results
func NewWorkerPool(render func(column int) error, numTasks, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = 1
	}

	wp := &WorkerPool{
		taskQueue:   make(chan ColumnTask, numTasks),
		resultQueue: make(chan ColumnResult, numTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			render:      render,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
			pool:        wp,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop waits for queued tasks to drain and shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// Abort makes workers skip every task they have not started yet
func (wp *WorkerPool) Abort() {
	wp.aborted.Store(true)
}

// SubmitTask submits a column task to the worker pool
func (wp *WorkerPool) SubmitTask(task ColumnTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed column result
func (wp *WorkerPool) GetResult() (ColumnResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if w.pool.aborted.Load() {
			w.resultQueue <- ColumnResult{Column: task.Column, Skipped: true}
			continue
		}
		w.resultQueue <- ColumnResult{Column: task.Column, Error: w.render(task.Column)}
	}
}

// renderParallel submits one task per column and collects the results on
// the calling goroutine, which is also the only one reporting progress.
func (rt *Raytracer) renderParallel(job *renderJob, numWorkers int) error {
	if numWorkers > job.width {
		numWorkers = job.width
	}

	pool := NewWorkerPool(job.renderColumn, job.width, numWorkers)
	pool.Start()
	for column := 0; column < job.width; column++ {
		pool.SubmitTask(ColumnTask{Column: column})
	}

	var firstErr error
	done := 0
	for received := 0; received < job.width; received++ {
		result, ok := pool.GetResult()
		if !ok {
			firstErr = fmt.Errorf("renderer: worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
				pool.Abort()
			}
			continue
		}
		if !result.Skipped {
			done++
			rt.progress.ColumnCompleted(done, job.width)
		}
	}

	pool.Stop()
	return firstErr
}
