// Package sched abstracts the fixed-delay timers the dashboards rely on
// (auto-navigation after submit/update, message auto-dismiss, review modal
// close) so tests can drive time deterministically.
package sched

import (
	"sort"
	"sync"
	"time"
)

type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

func Real() Scheduler {
	return realScheduler{}
}

// Manual is a deterministic Scheduler for tests. Callbacks fire only when
// Advance moves the clock past their deadline, in deadline order.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	pending []manualTimer
	seq     int
}

type manualTimer struct {
	at  time.Duration
	seq int
	f   func()
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) AfterFunc(d time.Duration, f func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.pending = append(m.pending, manualTimer{at: m.now + d, seq: m.seq, f: f})
}

// Advance moves the clock forward and fires every timer whose deadline has
// passed. Callbacks run without the lock held so they may schedule again.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d

	var due []manualTimer
	var rest []manualTimer
	for _, t := range m.pending {
		if t.at <= m.now {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	m.pending = rest
	m.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	for _, t := range due {
		t.f()
	}
}

// PendingCount reports how many timers have not fired yet.
func (m *Manual) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
