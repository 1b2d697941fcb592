package worker_pool

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"
)

type TaskFunc func(ctx context.Context) (any, error)

// TaskResult holds the outcome of a finished task.
type TaskResult struct {
	ID     string
	Result any
	Err    error
}

type workItem struct {
	id string
	fn TaskFunc
}

// WorkerPool runs submitted tasks on a fixed number of workers. Results are
// published on ResultsCh; consuming them is optional — once the pool is
// stopped, workers abandon undelivered results instead of blocking on the
// channel.
type WorkerPool struct {
	tasksCh     chan workItem
	ResultsCh   chan TaskResult
	ctx         context.Context
	cancelFunc  context.CancelFunc
	wg          sync.WaitGroup
	stopOnError bool
	log         *log.Logger
}

// NewWorkerPool starts numWorkers workers. If stopOnError is true the pool
// cancels itself on the first task error.
func NewWorkerPool(parentCtx context.Context, numWorkers int, stopOnError bool, logger *log.Logger) *WorkerPool {
	ctx, cancel := context.WithCancel(parentCtx)
	wp := &WorkerPool{
		tasksCh:     make(chan workItem),
		ResultsCh:   make(chan TaskResult, numWorkers),
		ctx:         ctx,
		cancelFunc:  cancel,
		stopOnError: stopOnError,
		log:         logger,
	}

	for i := 1; i <= numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}

	go func() {
		<-wp.ctx.Done()
		wp.wg.Wait()
		close(wp.ResultsCh)
	}()

	return wp
}

// Submit queues a task. It fails once the pool has been stopped.
func (wp *WorkerPool) Submit(id string, taskFn TaskFunc) error {
	select {
	case wp.tasksCh <- workItem{id: id, fn: taskFn}:
		return nil
	case <-wp.ctx.Done():
		wp.log.Warnf("submit rejected for task %s: pool is shutting down", id)
		return errors.New("worker pool is canceled; task not accepted")
	}
}

func (wp *WorkerPool) worker(workerID int) {
	defer wp.wg.Done()
	for {
		select {
		case <-wp.ctx.Done():
			return
		case task := <-wp.tasksCh:
			result, err := task.fn(wp.ctx)
			if err != nil {
				wp.log.WithError(err).Errorf("task %s failed", task.id)
				if wp.stopOnError {
					wp.cancelFunc()
				}
			}
			select {
			case wp.ResultsCh <- TaskResult{ID: task.id, Result: result, Err: err}:
			case <-wp.ctx.Done():
				wp.log.Debugf("worker %d dropping result of task %s", workerID, task.id)
				return
			}
		}
	}
}

// Stop cancels the pool. In-flight tasks finish; queued tasks are dropped.
func (wp *WorkerPool) Stop() {
	wp.cancelFunc()
}
