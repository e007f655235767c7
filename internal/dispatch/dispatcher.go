// Package dispatch runs side-effect jobs (confirmation mail, change events)
// off the request path on a bounded worker pool. Delivery is at-most-once:
// a full queue drops the job, a failed job is logged and discarded.
package dispatch

import (
	"sync"

	"go.uber.org/zap"
)

// Job is a named unit of fire-and-forget work.
type Job struct {
	Name string
	Run  func() error
}

type Dispatcher struct {
	jobs chan Job
	log  *zap.Logger

	wg      sync.WaitGroup
	mu      sync.Mutex
	stopped bool
}

func New(workers, queueSize int, log *zap.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}

	d := &Dispatcher{
		jobs: make(chan Job, queueSize),
		log:  log,
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}

	return d
}

// Submit enqueues a job without blocking. It reports false when the queue is
// full or the dispatcher is stopped; the job is dropped in both cases.
func (d *Dispatcher) Submit(job Job) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		d.log.Warn("dispatcher stopped, dropping job", zap.String("job", job.Name))
		return false
	}

	select {
	case d.jobs <- job:
		return true
	default:
		d.log.Warn("dispatch queue full, dropping job", zap.String("job", job.Name))
		return false
	}
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for job := range d.jobs {
		d.run(job)
	}
}

func (d *Dispatcher) run(job Job) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("side-effect job panicked",
				zap.String("job", job.Name),
				zap.Any("panic", r))
		}
	}()

	if err := job.Run(); err != nil {
		d.log.Warn("side-effect job failed",
			zap.String("job", job.Name),
			zap.Error(err))
	}
}
