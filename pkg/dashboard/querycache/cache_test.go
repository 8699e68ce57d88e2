package querycache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestQuery_InitialStateIsIdleAndStale(t *testing.T) {
	q := New(func(ctx context.Context) ([]string, error) {
		return nil, nil
	})

	state := q.State()
	if state.Status != StatusIdle {
		t.Fatalf("expected idle, got %s", state.Status)
	}
	if !state.Stale {
		t.Fatalf("expected stale before first fetch")
	}
}

func TestQuery_RefreshLoadsData(t *testing.T) {
	q := New(func(ctx context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})

	state := q.Refresh(context.Background())
	if state.Status != StatusSuccess {
		t.Fatalf("expected success, got %s", state.Status)
	}
	if len(state.Data) != 2 || state.Stale || state.Err != nil {
		t.Fatalf("unexpected state: %+v", state)
	}
}

func TestQuery_FreshDataServedWithoutRefetch(t *testing.T) {
	var calls atomic.Int64
	q := New(func(ctx context.Context) ([]string, error) {
		calls.Add(1)
		return []string{"a"}, nil
	})

	q.Refresh(context.Background())
	for i := 0; i < 5; i++ {
		state := q.Get(context.Background())
		if state.Status != StatusSuccess || state.Stale {
			t.Fatalf("expected fresh snapshot, got %+v", state)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("fresh data must not re-fetch, got %d calls", got)
	}
}

func TestQuery_ConcurrentReadersShareOneFetch(t *testing.T) {
	var calls atomic.Int64
	release := make(chan struct{})
	q := New(func(ctx context.Context) ([]string, error) {
		calls.Add(1)
		<-release
		return []string{"shared"}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			state := q.Refresh(context.Background())
			if state.Status != StatusSuccess || len(state.Data) != 1 {
				t.Errorf("unexpected state: %+v", state)
			}
		}()
	}

	// Let every reader reach the shared flight before it settles.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one outbound fetch for concurrent readers, got %d", got)
	}
}

func TestQuery_ReadRetriesOnce(t *testing.T) {
	var calls atomic.Int64
	q := New(func(ctx context.Context) ([]string, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("flaky")
		}
		return []string{"recovered"}, nil
	})

	state := q.Refresh(context.Background())
	if state.Status != StatusSuccess {
		t.Fatalf("expected success after retry, got %+v", state)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected exactly 2 fetch attempts, got %d", got)
	}
}

func TestQuery_ErrorKeepsLastGoodData(t *testing.T) {
	fetchErr := errors.New("backend down")
	failing := atomic.Bool{}
	q := New(func(ctx context.Context) ([]string, error) {
		if failing.Load() {
			return nil, fetchErr
		}
		return []string{"good"}, nil
	})

	if state := q.Refresh(context.Background()); state.Status != StatusSuccess {
		t.Fatalf("seed fetch failed: %+v", state)
	}

	failing.Store(true)
	q.Invalidate()
	state := q.Refresh(context.Background())

	if state.Status != StatusError {
		t.Fatalf("expected error status, got %s", state.Status)
	}
	if !errors.Is(state.Err, fetchErr) {
		t.Fatalf("expected fetch error surfaced, got %v", state.Err)
	}
	if len(state.Data) != 1 || state.Data[0] != "good" {
		t.Fatalf("error must not clear last good data, got %+v", state.Data)
	}
	if !state.Stale {
		t.Fatalf("errored snapshot must stay stale")
	}
}

func TestQuery_InvalidateForcesRefetch(t *testing.T) {
	var calls atomic.Int64
	q := New(func(ctx context.Context) ([]string, error) {
		calls.Add(1)
		return []string{"v"}, nil
	})

	q.Refresh(context.Background())
	q.Invalidate()
	if state := q.State(); !state.Stale {
		t.Fatalf("expected stale after invalidation")
	}
	q.Refresh(context.Background())

	if got := calls.Load(); got != 2 {
		t.Fatalf("expected re-fetch after invalidation, got %d calls", got)
	}
}

func TestQuery_InvalidateMidFlightDiscardsLateResult(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	q := New(func(ctx context.Context) ([]string, error) {
		close(entered)
		<-release
		return []string{"stale-result"}, nil
	})

	done := make(chan State[string])
	go func() {
		done <- q.Refresh(context.Background())
	}()

	<-entered
	q.Invalidate()
	close(release)
	state := <-done

	if len(state.Data) != 0 {
		t.Fatalf("result from a superseded generation must be discarded, got %+v", state.Data)
	}
	if !state.Stale {
		t.Fatalf("entry must remain stale after a discarded flight")
	}
}

func TestQuery_GetStartsBackgroundFetch(t *testing.T) {
	settled := make(chan State[string], 1)
	q := New(func(ctx context.Context) ([]string, error) {
		return []string{"bg"}, nil
	})
	cancel := q.Subscribe(func(s State[string]) {
		if s.Status == StatusSuccess {
			select {
			case settled <- s:
			default:
			}
		}
	})
	defer cancel()

	state := q.Get(context.Background())
	if state.Status != StatusLoading {
		t.Fatalf("first read should report loading, got %s", state.Status)
	}

	select {
	case s := <-settled:
		if len(s.Data) != 1 || s.Data[0] != "bg" {
			t.Fatalf("unexpected settled state: %+v", s)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("background fetch never settled")
	}
}

func TestQuery_GetSurvivesCallerCancellation(t *testing.T) {
	settled := make(chan struct{}, 1)
	q := New(func(ctx context.Context) ([]string, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return []string{"detached"}, nil
	})
	cancelSub := q.Subscribe(func(s State[string]) {
		if s.Status == StatusSuccess {
			select {
			case settled <- struct{}{}:
			default:
			}
		}
	})
	defer cancelSub()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	q.Get(ctx)

	select {
	case <-settled:
	case <-time.After(2 * time.Second):
		t.Fatalf("fetch should be detached from the caller's context")
	}
}

func TestMutate_SuccessInvalidatesCache(t *testing.T) {
	records := []string{"first"}
	var mu sync.Mutex
	q := New(func(ctx context.Context) ([]string, error) {
		mu.Lock()
		defer mu.Unlock()
		out := make([]string, len(records))
		copy(out, records)
		return out, nil
	})

	if state := q.Refresh(context.Background()); len(state.Data) != 1 {
		t.Fatalf("seed fetch failed: %+v", state)
	}

	result := Mutate(context.Background(), q, func(ctx context.Context) (string, error) {
		mu.Lock()
		records = append(records, "second")
		mu.Unlock()
		return "second", nil
	})

	if result.Status != MutationSuccess || result.Record != "second" {
		t.Fatalf("unexpected mutation result: %+v", result)
	}
	if !q.State().Stale {
		t.Fatalf("successful mutation must invalidate the cache before returning")
	}

	state := q.Refresh(context.Background())
	if len(state.Data) != 2 {
		t.Fatalf("re-fetch after mutation should see the new record, got %+v", state.Data)
	}
}

func TestMutate_FailureLeavesCacheUntouched(t *testing.T) {
	var calls atomic.Int64
	q := New(func(ctx context.Context) ([]string, error) {
		calls.Add(1)
		return []string{"kept"}, nil
	})
	q.Refresh(context.Background())

	opErr := errors.New("rejected")
	result := Mutate(context.Background(), q, func(ctx context.Context) (string, error) {
		return "", opErr
	})

	if result.Status != MutationError || !errors.Is(result.Err, opErr) {
		t.Fatalf("unexpected mutation result: %+v", result)
	}
	state := q.State()
	if state.Stale || len(state.Data) != 1 {
		t.Fatalf("failed mutation must not touch the cache: %+v", state)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("failed mutation must not trigger a re-fetch, got %d calls", got)
	}
}

func TestMutationStatus_String(t *testing.T) {
	if MutationPending.String() != "pending" || StatusLoading.String() != "loading" {
		t.Fatalf("unexpected status strings")
	}
}
