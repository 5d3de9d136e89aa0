package importer

import (
	"context"
	"testing"
	"time"
)

func TestWorkerPool_RateLimitedCloseDrainsAllTasks(t *testing.T) {
	pool := NewWorkerPool(2, 8)
	pool.SetRateLimit(20)
	results := pool.Run(context.Background())

	const n = 4
	for i := 0; i < n; i++ {
		pool.Submit(func(ctx context.Context) error { return nil })
	}
	// Let the workers park on the rate channel before closing.
	time.Sleep(100 * time.Millisecond)
	pool.Close()

	got := 0
	timeout := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-results:
			if !ok {
				if got != n {
					t.Fatalf("expected %d results, got %d", n, got)
				}
				return
			}
			got++
		case <-timeout:
			t.Fatalf("results channel never closed, got %d of %d results", got, n)
		}
	}
}

func TestWorkerPool_ReplacedRateLimitDoesNotStrandWorkers(t *testing.T) {
	pool := NewWorkerPool(1, 4)
	pool.SetRateLimit(10)
	results := pool.Run(context.Background())

	pool.Submit(func(ctx context.Context) error { return nil })
	// Swap the throttle while the worker may be waiting on the old ticker.
	pool.SetRateLimit(1000)
	pool.Submit(func(ctx context.Context) error { return nil })
	pool.Close()

	got := 0
	timeout := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-results:
			if !ok {
				if got != 2 {
					t.Fatalf("expected 2 results, got %d", got)
				}
				return
			}
			got++
		case <-timeout:
			t.Fatalf("results channel never closed, got %d results", got)
		}
	}
}

func TestWorkerPool_ZeroRateDisablesThrottle(t *testing.T) {
	pool := NewWorkerPool(2, 2)
	pool.SetRateLimit(1)
	pool.SetRateLimit(0)
	results := pool.Run(context.Background())

	pool.Submit(func(ctx context.Context) error { return nil })
	pool.Close()

	select {
	case res, ok := <-results:
		if !ok || res.Err != nil {
			t.Fatalf("unexpected result: ok=%v err=%v", ok, res.Err)
		}
	case <-time.After(time.Second):
		t.Fatalf("unthrottled task did not finish promptly")
	}
	select {
	case _, ok := <-results:
		if ok {
			t.Fatalf("expected closed channel after the single task")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("results channel never closed")
	}
}
