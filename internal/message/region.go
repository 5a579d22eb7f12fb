// Package message implements the transient status line shown after user
// actions. Every message auto-dismisses after a fixed delay. Unlike the usual
// naive setTimeout approach, each write owns a token: a newer message
// invalidates the pending clear of an older one, so overlapping actions never
// erase each other's feedback early.
package message

import (
	"sync"
	"time"

	"github.com/frahmantamala/expense-dashboard/internal/sched"
	"github.com/google/uuid"
)

// ClearDelay is how long a message stays before auto-dismissing.
const ClearDelay = 5000 * time.Millisecond

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Message struct {
	Text string
	Kind Kind
}

// Region is a single message slot. onChange fires with the new message on
// every write and with nil on every clear, so the portal can repaint.
type Region struct {
	mu       sync.Mutex
	current  *Message
	token    uuid.UUID
	sched    sched.Scheduler
	onChange func(*Message)
}

func NewRegion(s sched.Scheduler, onChange func(*Message)) *Region {
	if onChange == nil {
		onChange = func(*Message) {}
	}
	return &Region{sched: s, onChange: onChange}
}

// Show replaces the current message and schedules its dismissal. The clear
// only applies while this write's token is still current.
func (r *Region) Show(text string, kind Kind) {
	r.mu.Lock()
	msg := &Message{Text: text, Kind: kind}
	r.current = msg
	token := uuid.New()
	r.token = token
	r.mu.Unlock()

	r.onChange(msg)

	r.sched.AfterFunc(ClearDelay, func() {
		r.clearIf(token)
	})
}

func (r *Region) Success(text string) { r.Show(text, KindSuccess) }
func (r *Region) Error(text string)   { r.Show(text, KindError) }

// Clear drops the current message immediately and invalidates any pending
// scheduled clear.
func (r *Region) Clear() {
	r.mu.Lock()
	r.current = nil
	r.token = uuid.Nil
	r.mu.Unlock()
	r.onChange(nil)
}

// Current returns the visible message, or nil when the region is empty.
func (r *Region) Current() *Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Region) clearIf(token uuid.UUID) {
	r.mu.Lock()
	if r.token != token {
		// superseded by a newer message, keep it
		r.mu.Unlock()
		return
	}
	r.current = nil
	r.token = uuid.Nil
	r.mu.Unlock()
	r.onChange(nil)
}
