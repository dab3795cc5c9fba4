package enrich

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// WorkerQueue runs enrichment on a bounded pool of workers. Jobs are
// accepted after the HTTP response is written; their outcome is never
// surfaced to the submitter.
type WorkerQueue struct {
	orch    *Orchestrator
	logger  *slog.Logger
	policy  FailurePolicy
	workers int
	timeout time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*WorkerQueue)

func WithWorkers(n int) Option {
	return func(q *WorkerQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}

func WithQueueSize(n int) Option {
	return func(q *WorkerQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}

func WithJobTimeout(d time.Duration) Option {
	return func(q *WorkerQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func WithFailurePolicy(p FailurePolicy) Option {
	return func(q *WorkerQueue) {
		if p != nil {
			q.policy = p
		}
	}
}

func NewWorkerQueue(orch *Orchestrator, logger *slog.Logger, opts ...Option) *WorkerQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &WorkerQueue{
		orch:    orch,
		logger:  logger,
		policy:  LogAndDrop{},
		workers: 4,
		timeout: 2 * time.Minute,
		ch:      make(chan Job, 256),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *WorkerQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("worker started", "worker_id", workerID)

				for job := range q.ch {
					ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
					err := q.orch.Enrich(ctx, job)
					cancel()

					if err != nil {
						q.policy.HandleFailure(q.logger, job, err)
					} else {
						q.logger.Info("enriched submission", "worker_id", workerID, "handle", job.Handle)
					}
				}

				q.logger.Info("worker stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *WorkerQueue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: queue is shutting down", "handle", job.Handle)
		return nil
	}
	select {
	case q.ch <- job:
		q.logger.Info("queued submission for enrichment", "handle", job.Handle)
	default:
		q.logger.Warn("queue full, applying backpressure", "handle", job.Handle)
		q.ch <- job
	}
	return nil
}

func (q *WorkerQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("shutdown interrupted by context")
	case <-done:
		q.logger.Info("queue drained, shutdown complete")
	}
}
