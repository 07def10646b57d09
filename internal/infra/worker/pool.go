// File: internal/infra/worker/pool.go
package worker

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
)

// Task is one unit of work. Tasks sharing a pool must be independent of each
// other's ordering.
type Task func(ctx context.Context) error

var ErrPoolStopped = errors.New("worker pool stopped")

// Pool runs submitted tasks on a fixed number of goroutines and remembers the
// first task error.
type Pool struct {
	wg   sync.WaitGroup
	jobs chan Task
	quit chan struct{}
	n    int
	log  *zerolog.Logger

	once     sync.Once
	mu       sync.Mutex
	firstErr error
	failed   int
}

func NewPool(workers int, logger *zerolog.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	l := logger.With().Str("component", "WorkerPool").Logger()
	return &Pool{jobs: make(chan Task, workers*4), quit: make(chan struct{}), n: workers, log: &l}
}

func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.n; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			for task := range p.jobs {
				if err := task(ctx); err != nil {
					p.record(err)
					p.log.Warn().Err(err).Int("worker", id).Msg("task failed")
				}
			}
		}(i)
	}
}

// Submit blocks until a worker slot frees up, ctx ends or the pool stops.
func (p *Pool) Submit(ctx context.Context, task Task) error {
	if task == nil {
		return errors.New("nil task")
	}
	select {
	case <-p.quit:
		return ErrPoolStopped
	default:
	}
	select {
	case p.jobs <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.quit:
		return ErrPoolStopped
	}
}

// Wait closes the queue, lets the workers drain it and returns the first task
// error. Submit must not be called concurrently with Wait.
func (p *Pool) Wait() error {
	p.once.Do(func() {
		close(p.quit)
		close(p.jobs)
	})
	p.wg.Wait()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failed > 1 {
		p.log.Warn().Int("failed", p.failed).Msg("several tasks failed; returning the first")
	}
	return p.firstErr
}

func (p *Pool) record(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failed++
	if p.firstErr == nil {
		p.firstErr = err
	}
}
