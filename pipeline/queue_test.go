package pipeline

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shekokarmahesh/contract-intel/model"
)

func TestQueueProcessesAllContracts(t *testing.T) {
	store := newFakeStore()
	ids := make([]string, 8)
	for i := range ids {
		ids[i] = fmt.Sprintf("c%d", i)
		seedContract(store, ids[i])
	}

	proc := newTestProcessor(store, &flakyFetcher{})
	q := NewQueue(proc, 2, 16)

	for _, id := range ids {
		if err := q.Enqueue(context.Background(), id); err != nil {
			t.Fatalf("Enqueue failed: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	for _, id := range ids {
		c := store.get(id)
		if c.Status != model.StatusCompleted {
			t.Errorf("Contract %s: expected completed, got %q", id, c.Status)
		}
	}
}

func TestQueueRejectsAfterShutdown(t *testing.T) {
	store := newFakeStore()
	proc := newTestProcessor(store, &flakyFetcher{})
	q := NewQueue(proc, 1, 4)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	q.Shutdown(ctx)

	if err := q.Enqueue(context.Background(), "late"); err != ErrQueueClosed {
		t.Errorf("Expected ErrQueueClosed, got %v", err)
	}
}

func TestQueueShutdownIdempotent(t *testing.T) {
	store := newFakeStore()
	proc := newTestProcessor(store, &flakyFetcher{})
	q := NewQueue(proc, 1, 4)

	ctx := context.Background()
	q.Shutdown(ctx)
	q.Shutdown(ctx) // second call must not panic
}
