// Package querycache caches one server resource collection per query and
// keeps it synchronized around mutations: cached data is served immediately
// while a background re-fetch runs (stale-while-revalidate), concurrent reads
// share a single in-flight request, and a successful mutation invalidates the
// key so the next read re-fetches instead of serving the stale list.
package querycache

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Status is the lifecycle state of a query.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// FetchFunc loads the full collection from the server.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// State is a snapshot of a query. Err and Data can be set at the same time:
// a failed revalidation never clears the last successfully fetched data, so a
// consumer may show stale data alongside an error banner.
type State[T any] struct {
	Status Status
	Data   []T
	Err    error
	// Stale is true when Data predates the last invalidation (or nothing has
	// been fetched yet) and a re-fetch is due.
	Stale bool
}

// Query is the cache entry for one resource collection. Safe for concurrent
// use. The zero value is not usable; use New.
type Query[T any] struct {
	fetch FetchFunc[T]
	group singleflight.Group

	mu      sync.Mutex
	status  Status
	data    []T
	hasData bool
	err     error
	gen     uint64 // bumped by Invalidate
	dataGen uint64 // generation data was fetched under

	subMu  sync.Mutex
	subs   map[int]func(State[T])
	nextID int
}

// New creates a Query backed by fetch. Reads retry once on failure;
// mutations never retry.
func New[T any](fetch FetchFunc[T]) *Query[T] {
	return &Query[T]{
		fetch: fetch,
		subs:  make(map[int]func(State[T])),
	}
}

// State returns the current snapshot without triggering any fetch.
func (q *Query[T]) State() State[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshotLocked()
}

// Get returns the current snapshot immediately and, when the data is stale,
// starts a background re-fetch. Concurrent callers observing the same stale
// generation share one in-flight request. The fetch is detached from ctx's
// cancellation: an abandoned caller does not cancel a shared fetch, and a
// late result is still applied if the entry is still on the same generation.
func (q *Query[T]) Get(ctx context.Context) State[T] {
	q.mu.Lock()
	if q.freshLocked() {
		defer q.mu.Unlock()
		return q.snapshotLocked()
	}
	if q.status == StatusIdle {
		q.status = StatusLoading
	}
	gen := q.gen
	snapshot := q.snapshotLocked()
	q.mu.Unlock()

	go q.runFetch(context.WithoutCancel(ctx), gen)
	return snapshot
}

// Refresh fetches synchronously (joining any in-flight request for the same
// generation) and returns the settled snapshot.
func (q *Query[T]) Refresh(ctx context.Context) State[T] {
	q.mu.Lock()
	if q.freshLocked() {
		defer q.mu.Unlock()
		return q.snapshotLocked()
	}
	if q.status == StatusIdle {
		q.status = StatusLoading
	}
	gen := q.gen
	q.mu.Unlock()

	return q.runFetch(ctx, gen)
}

// Invalidate marks the cached data stale, forcing the next read to re-fetch.
// A fetch already in flight for an older generation has its result discarded.
func (q *Query[T]) Invalidate() {
	q.mu.Lock()
	q.gen++
	snapshot := q.snapshotLocked()
	q.mu.Unlock()

	q.notify(snapshot)
}

// Subscribe registers fn to be called after every settled fetch and every
// invalidation. The returned function cancels the subscription.
func (q *Query[T]) Subscribe(fn func(State[T])) (cancel func()) {
	q.subMu.Lock()
	id := q.nextID
	q.nextID++
	q.subs[id] = fn
	q.subMu.Unlock()

	return func() {
		q.subMu.Lock()
		delete(q.subs, id)
		q.subMu.Unlock()
	}
}

// runFetch executes (or joins) the single flight for generation gen. The
// flight key is the generation, so a fetch started before an invalidation is
// never joined by readers of the new generation.
func (q *Query[T]) runFetch(ctx context.Context, gen uint64) State[T] {
	key := strconv.FormatUint(gen, 10)
	_, _, _ = q.group.Do(key, func() (any, error) {
		data, err := q.fetch(ctx)
		if err != nil {
			// One automatic retry for reads.
			data, err = q.fetch(ctx)
		}

		q.mu.Lock()
		if gen != q.gen {
			// Superseded by an invalidation mid-flight: discard.
			q.mu.Unlock()
			return nil, nil
		}
		if err != nil {
			q.status = StatusError
			q.err = err
		} else {
			q.status = StatusSuccess
			q.data = data
			q.hasData = true
			q.dataGen = gen
			q.err = nil
		}
		snapshot := q.snapshotLocked()
		q.mu.Unlock()

		q.notify(snapshot)
		return nil, nil
	})
	return q.State()
}

func (q *Query[T]) freshLocked() bool {
	return q.hasData && q.dataGen == q.gen && q.status != StatusError
}

func (q *Query[T]) snapshotLocked() State[T] {
	return State[T]{
		Status: q.status,
		Data:   q.data,
		Err:    q.err,
		Stale:  !q.hasData || q.dataGen != q.gen,
	}
}

func (q *Query[T]) notify(snapshot State[T]) {
	q.subMu.Lock()
	fns := make([]func(State[T]), 0, len(q.subs))
	for _, fn := range q.subs {
		fns = append(fns, fn)
	}
	q.subMu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}
