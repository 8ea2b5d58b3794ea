// Package controller implements the write-then-reconcile list cache used
// by every resource view: the local collection mutates only after the
// server confirms, so a failed call leaves the last-known-good rows on
// screen with nothing to roll back.
package controller

import (
	"context"
	"fmt"
	"sync"

	"blogctl/cli/notify"
)

// Phase is the controller lifecycle:
// Idle → Loading → {Ready, Failed}; Ready → Mutating → {Ready, Failed}.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseMutating
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseMutating:
		return "mutating"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Entity is anything with a stable server-assigned id.
type Entity interface {
	EntityID() int64
}

// Source fetches the full ordered collection.
type Source[T Entity] func(ctx context.Context) ([]T, error)

// List is the generic list controller. It owns its collection
// exclusively; ordering is the server's response order and is never
// re-sorted here.
type List[T Entity] struct {
	mu      sync.Mutex
	source  Source[T]
	hub     *notify.Hub
	items   []T
	phase   Phase
	lastErr string
	loadSeq uint64
}

// NewList builds a controller over a collection source. hub may be nil
// when no one listens for notifications (tests, one-shot commands).
func NewList[T Entity](source Source[T], hub *notify.Hub) *List[T] {
	return &List[T]{source: source, hub: hub}
}

// Phase returns the current lifecycle phase.
func (l *List[T]) Phase() Phase {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.phase
}

// Err returns the message of the last failed load, if any.
func (l *List[T]) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// Items returns a copy of the cached collection in server order.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Load fetches the collection and replaces the cache. Each call takes a
// monotonic sequence number; a response that arrives after a newer Load
// started is discarded so a stale fetch cannot resurrect deleted rows.
func (l *List[T]) Load(ctx context.Context) error {
	l.mu.Lock()
	l.loadSeq++
	seq := l.loadSeq
	l.phase = PhaseLoading
	l.mu.Unlock()

	items, err := l.source(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if seq != l.loadSeq {
		// Superseded by a newer load; drop this result.
		return nil
	}
	if err != nil {
		l.phase = PhaseFailed
		l.lastErr = err.Error()
		return err
	}
	l.items = items
	l.phase = PhaseReady
	l.lastErr = ""
	return nil
}

// Create issues the call and appends the server-returned object to the
// end of the collection on success. On failure the collection is left
// untouched and a transient notification is raised.
func (l *List[T]) Create(ctx context.Context, call func(ctx context.Context) (*T, error)) (*T, error) {
	l.setMutating()
	created, err := call(ctx)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.phase = PhaseReady
	if err != nil {
		l.notifyError("create failed", err)
		return nil, err
	}
	l.items = append(l.items, *created)
	return created, nil
}

// Update issues the call and replaces the matching element in place,
// preserving its position.
func (l *List[T]) Update(ctx context.Context, id int64, call func(ctx context.Context) (*T, error)) (*T, error) {
	l.setMutating()
	updated, err := call(ctx)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.phase = PhaseReady
	if err != nil {
		l.notifyError("update failed", err)
		return nil, err
	}
	for i := range l.items {
		if l.items[i].EntityID() == id {
			l.items[i] = *updated
			return updated, nil
		}
	}
	// Confirmed by the server but absent locally: the cache is older than
	// the mutation, which is fine, it is never assumed fresher.
	return updated, nil
}

// Delete issues the call and removes the matching element on success.
func (l *List[T]) Delete(ctx context.Context, id int64, call func(ctx context.Context) error) error {
	l.setMutating()
	err := call(ctx)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.phase = PhaseReady
	if err != nil {
		l.notifyError("delete failed", err)
		return err
	}
	for i := range l.items {
		if l.items[i].EntityID() == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			break
		}
	}
	return nil
}

func (l *List[T]) setMutating() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.phase = PhaseMutating
}

// notifyError is called with l.mu held; the hub publish is non-blocking.
func (l *List[T]) notifyError(summary string, err error) {
	if l.hub == nil {
		return
	}
	l.hub.Error(summary, fmt.Sprintf("%v", err))
}
