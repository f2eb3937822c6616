package pipeline

import (
	"context"
	"errors"
	"sync"

	"github.com/shekokarmahesh/contract-intel/pkg/logger"
)

var ErrQueueClosed = errors.New("queue is shutting down")

// Queue fans contract IDs out to a pool of workers, each running the
// processor's retry loop. Enqueue never blocks the caller unless the
// buffer is full.
type Queue struct {
	proc    *Processor
	workers int

	ch   chan string
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

func NewQueue(proc *Processor, workers, size int) *Queue {
	if workers <= 0 {
		workers = 4
	}
	if size <= 0 {
		size = 256
	}
	q := &Queue{
		proc:    proc,
		workers: workers,
		ch:      make(chan string, size),
	}
	q.start()
	return q
}

func (q *Queue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				for id := range q.ch {
					ctx := context.WithValue(context.Background(), logger.ContractIDKey, id)
					if err := q.proc.Process(ctx, id); err != nil {
						logger.Error(ctx, "worker finished with error",
							"worker_id", workerID, "contract_id", id, "error", err)
					}
				}
			}(i + 1)
		}
	})
}

// Enqueue queues a contract for processing. Blocks when the buffer is full.
func (q *Queue) Enqueue(ctx context.Context, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.ch <- id:
	default:
		logger.Warn(ctx, "queue full, applying backpressure", "contract_id", id)
		q.ch <- id
	}
	return nil
}

// Shutdown stops accepting new work and waits for in-flight contracts,
// up to the context deadline.
func (q *Queue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		q.wg.Wait()
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn(ctx, "queue shutdown timed out with work in flight")
	}
}
