package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolOrdersResults(t *testing.T) {
	pool := NewPool[int](context.Background(), 4)

	// Submit in reverse so ordering cannot come from submission timing.
	for i := 9; i >= 0; i-- {
		i := i
		pool.Submit(i, func() (int, error) {
			return i * i, nil
		})
	}

	results := pool.Wait()
	if len(results) != 10 {
		t.Fatalf("result count: got %d, want 10", len(results))
	}
	for i, r := range results {
		if r.Index != i {
			t.Errorf("result %d: index %d, want %d", i, r.Index, i)
		}
		if r.Value != i*i {
			t.Errorf("result %d: value %d, want %d", i, r.Value, i*i)
		}
	}
}

func TestPoolBoundsConcurrency(t *testing.T) {
	const maxWorkers = 3
	pool := NewPool[struct{}](context.Background(), maxWorkers)

	var running, peak int32
	for i := 0; i < 20; i++ {
		pool.Submit(i, func() (struct{}, error) {
			n := atomic.AddInt32(&running, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&running, -1)
			return struct{}{}, nil
		})
	}

	pool.Wait()
	if got := atomic.LoadInt32(&peak); got > maxWorkers {
		t.Errorf("peak concurrency: got %d, want <= %d", got, maxWorkers)
	}
}

func TestPoolCollectsErrors(t *testing.T) {
	pool := NewPool[string](context.Background(), 2)
	wantErr := errors.New("boom")

	pool.Submit(0, func() (string, error) { return "ok", nil })
	pool.Submit(1, func() (string, error) { return "", wantErr })
	pool.Submit(2, func() (string, error) { return "ok", nil })

	results := pool.Wait()
	if len(results) != 3 {
		t.Fatalf("result count: got %d, want 3", len(results))
	}
	if results[1].Err == nil || !errors.Is(results[1].Err, wantErr) {
		t.Errorf("result 1 error: got %v, want %v", results[1].Err, wantErr)
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Error("unexpected errors on successful results")
	}
}

func TestPoolDropsWorkAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPool[int](ctx, 1)
	cancel()

	pool.Submit(0, func() (int, error) {
		t.Error("submitted work ran after cancellation")
		return 0, nil
	})

	if results := pool.Wait(); len(results) != 0 {
		t.Errorf("result count: got %d, want 0", len(results))
	}
}

func TestPoolUnboundedWorkers(t *testing.T) {
	pool := NewPool[int](context.Background(), 0)
	for i := 0; i < 50; i++ {
		i := i
		pool.Submit(i, func() (int, error) { return i, nil })
	}
	results := pool.Wait()
	if len(results) != 50 {
		t.Fatalf("result count: got %d, want 50", len(results))
	}
}
