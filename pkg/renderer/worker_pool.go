package renderer

import (
	"context"
	"sync"

	"github.com/df07/go-sah-raytracer/pkg/core"
)

// RowTask represents a scanline rendering task for the worker pool
type RowTask struct {
	Row  int   // Camera row j, 0 is the bottom of the image
	Seed int64 // Seed for the row's private sampler
}

// RowResult contains the result from rendering a row
type RowResult struct {
	Row   int
	Stats RowStats
}

// WorkerPool manages parallel scanline rendering
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
	closeOnce   sync.Once
}

// Worker handles individual row rendering tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	image       *Image
	taskQueue   <-chan RowTask
	resultQueue chan<- RowResult
}

// NewWorkerPool creates a worker pool with the specified number of workers
// writing into img
func NewWorkerPool(raytracer *Raytracer, img *Image, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = 1
	}

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, numWorkers),
		resultQueue: make(chan RowResult, numWorkers),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			raytracer:   raytracer,
			image:       img,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers. The result channel is closed once every worker
// has exited.
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
	go func() {
		wp.wg.Wait()
		close(wp.resultQueue)
	}()
}

// Close signals that no more tasks will be submitted
func (wp *WorkerPool) Close() {
	wp.closeOnce.Do(func() { close(wp.taskQueue) })
}

// SubmitTask queues task, returning false if ctx is done first
func (wp *WorkerPool) SubmitTask(ctx context.Context, task RowTask) bool {
	select {
	case wp.taskQueue <- task:
		return true
	case <-ctx.Done():
		return false
	}
}

// Results returns the channel of completed rows
func (wp *WorkerPool) Results() <-chan RowResult {
	return wp.resultQueue
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Rows never overlap, so writing into the shared image is safe
		sampler := core.NewSeededSampler(task.Seed)
		stats := w.raytracer.RenderRow(task.Row, w.image.Row(task.Row), sampler)

		w.resultQueue <- RowResult{Row: task.Row, Stats: stats}
	}
}
