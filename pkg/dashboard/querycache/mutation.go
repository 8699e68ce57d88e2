package querycache

import "context"

// MutationStatus is the lifecycle state of a single mutation.
type MutationStatus int

const (
	MutationIdle MutationStatus = iota
	MutationPending
	MutationSuccess
	MutationError
)

func (s MutationStatus) String() string {
	switch s {
	case MutationPending:
		return "pending"
	case MutationSuccess:
		return "success"
	case MutationError:
		return "error"
	default:
		return "idle"
	}
}

// MutationResult reports the outcome of one mutation. Record carries the
// created or updated record when the operation returns one.
type MutationResult[R any] struct {
	Status MutationStatus
	Record R
	Err    error
}

// Mutate runs op and, on success, synchronously invalidates q before
// returning, so any subsequent read of q re-fetches rather than serving the
// pre-mutation list. On failure the cached data is left untouched; no
// optimistic update was applied, so there is nothing to roll back. Mutations
// are never retried.
func Mutate[T, R any](ctx context.Context, q *Query[T], op func(context.Context) (R, error)) MutationResult[R] {
	record, err := op(ctx)
	if err != nil {
		return MutationResult[R]{Status: MutationError, Err: err}
	}

	q.Invalidate()
	return MutationResult[R]{Status: MutationSuccess, Record: record}
}
