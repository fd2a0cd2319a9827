package services

import (
	"context"
	"sync"
)

// SuggestionTracker makes sure only the newest request per key can deliver a
// result. Starting a request supersedes (and cancels) the one before it;
// abandoning invalidates whatever is in flight. Keys are usually a user id
// plus the kind of fetch, e.g. "uid/suggestion".
type SuggestionTracker struct {
	mu      sync.Mutex
	current map[string]*generation
	seq     uint64
}

type generation struct {
	id     uint64
	cancel context.CancelFunc
}

// Ticket identifies one started request.
type Ticket struct {
	Key string
	ID  uint64
}

func NewSuggestionTracker() *SuggestionTracker {
	return &SuggestionTracker{current: make(map[string]*generation)}
}

// Begin starts a new generation for key. The returned context is canceled
// as soon as a newer request begins or the user abandons the dialog.
func (t *SuggestionTracker) Begin(ctx context.Context, key string) (context.Context, Ticket) {
	ctx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	if prev := t.current[key]; prev != nil {
		prev.cancel()
	}
	t.current[key] = &generation{id: t.seq, cancel: cancel}
	return ctx, Ticket{Key: key, ID: t.seq}
}

// Finish releases the ticket. It returns ErrSuperseded if a newer request
// began or the request was abandoned, in which case the caller must drop its
// result.
func (t *SuggestionTracker) Finish(tk Ticket) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur := t.current[tk.Key]
	if cur == nil || cur.id != tk.ID {
		return ErrSuperseded
	}
	cur.cancel()
	delete(t.current, tk.Key)
	return nil
}

// Abandon cancels whatever is in flight for key.
func (t *SuggestionTracker) Abandon(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur := t.current[key]
	if cur == nil {
		return false
	}
	cur.cancel()
	delete(t.current, key)
	return true
}

// InFlight reports how many keys currently have a pending request.
func (t *SuggestionTracker) InFlight() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.current)
}
