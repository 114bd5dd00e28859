// Package lifecycle tracks one outstanding request per action key.
package lifecycle

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Phase of an action
type Phase string

const (
	Idle      Phase = "idle"
	Pending   Phase = "pending"
	Succeeded Phase = "succeeded"
	Failed    Phase = "failed"
)

// ErrPending is returned by Begin while the same action is still outstanding
var ErrPending = errors.New("request already in progress")

// Status is the observable state of an action
type Status struct {
	Phase     Phase     `json:"phase"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type entry struct {
	status Status
	cancel context.CancelFunc
	seq    uint64
}

// Tracker moves each key through idle -> pending -> succeeded|failed
type Tracker struct {
	mu      sync.Mutex
	entries map[string]*entry
	seq     uint64
}

func NewTracker() *Tracker {
	return &Tracker{entries: make(map[string]*entry)}
}

// Begin marks key pending and returns a context cancelled by Cancel(key).
// finish must be called exactly once with the outcome.
func (t *Tracker) Begin(ctx context.Context, key string) (context.Context, func(error), error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if e, ok := t.entries[key]; ok && e.status.Phase == Pending {
		return nil, nil, ErrPending
	}

	ctx, cancel := context.WithCancel(ctx)
	t.seq++
	seq := t.seq
	t.entries[key] = &entry{
		status: Status{Phase: Pending, UpdatedAt: time.Now()},
		cancel: cancel,
		seq:    seq,
	}

	var once sync.Once
	finish := func(err error) {
		once.Do(func() {
			cancel()
			t.mu.Lock()
			defer t.mu.Unlock()
			e, ok := t.entries[key]
			if !ok || e.seq != seq {
				return
			}
			e.cancel = nil
			e.status.UpdatedAt = time.Now()
			if err != nil {
				e.status.Phase = Failed
				e.status.Error = err.Error()
				return
			}
			e.status.Phase = Succeeded
			e.status.Error = ""
		})
	}
	return ctx, finish, nil
}

// Cancel aborts the outstanding request for key, if any. The key returns to idle.
func (t *Tracker) Cancel(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[key]
	if !ok {
		return
	}
	if e.cancel != nil {
		e.cancel()
	}
	delete(t.entries, key)
}

// State reports the current status of key
func (t *Tracker) State(key string) Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[key]
	if !ok {
		return Status{Phase: Idle}
	}
	return e.status
}
