// Package timer provides a cooperative scheduler for match-loop callbacks.
//
// Nakama runs an authoritative match on a single logical thread driven by
// MatchLoop ticks, so timers here never spawn goroutines: deadlines are
// evaluated when the match handler calls Advance with the current tick time.
// Handles are keyed by purpose, and scheduling a purpose always cancels any
// existing handle of the same purpose first, so a stale timer can never fire
// into a state that no longer expects it.
package timer

import (
	"sort"
	"time"
)

// Snapshot captures a paused one-shot timer: the time that was left on it
// and the wall-clock instant it was paused.
type Snapshot struct {
	Remaining time.Duration
	PausedAt  time.Time
}

type handle struct {
	purpose  string
	deadline time.Time
	interval time.Duration // 0 for one-shot
	fn       func()
}

// Scheduler owns all pending timers for one match instance.
type Scheduler struct {
	handles map[string]*handle
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{handles: make(map[string]*handle)}
}

// Schedule arms a one-shot callback to fire once d has elapsed past now,
// replacing any existing handle with the same purpose.
func (s *Scheduler) Schedule(purpose string, d time.Duration, now time.Time, fn func()) {
	s.Cancel(purpose)
	s.handles[purpose] = &handle{
		purpose:  purpose,
		deadline: now.Add(d),
		fn:       fn,
	}
}

// ScheduleRepeating arms a repeating callback firing every interval,
// replacing any existing handle with the same purpose.
func (s *Scheduler) ScheduleRepeating(purpose string, interval time.Duration, now time.Time, fn func()) {
	s.Cancel(purpose)
	s.handles[purpose] = &handle{
		purpose:  purpose,
		deadline: now.Add(interval),
		interval: interval,
		fn:       fn,
	}
}

// Cancel removes the handle for the given purpose. It reports whether a
// handle existed.
func (s *Scheduler) Cancel(purpose string) bool {
	if _, ok := s.handles[purpose]; !ok {
		return false
	}
	delete(s.handles, purpose)
	return true
}

// CancelAll drops every pending handle, used on full match resets.
func (s *Scheduler) CancelAll() {
	s.handles = make(map[string]*handle)
}

// Active reports whether a handle with the given purpose is pending.
func (s *Scheduler) Active(purpose string) bool {
	_, ok := s.handles[purpose]
	return ok
}

// Remaining returns how much time is left before the purpose fires.
func (s *Scheduler) Remaining(purpose string, now time.Time) (time.Duration, bool) {
	h, ok := s.handles[purpose]
	if !ok {
		return 0, false
	}
	return h.deadline.Sub(now), true
}

// Pause captures the remaining time of a one-shot handle into a Snapshot and
// cancels it. The caller keeps the snapshot and re-arms with Schedule later.
func (s *Scheduler) Pause(purpose string, now time.Time) (Snapshot, bool) {
	h, ok := s.handles[purpose]
	if !ok {
		return Snapshot{}, false
	}
	delete(s.handles, purpose)
	return Snapshot{Remaining: h.deadline.Sub(now), PausedAt: now}, true
}

// Advance fires every handle whose deadline has passed, in deadline order.
// One-shot handles are removed before their callback runs so a callback may
// re-arm the same purpose; repeating handles are pushed forward by one
// interval per Advance call, never replayed to catch up.
func (s *Scheduler) Advance(now time.Time) {
	var due []*handle
	for _, h := range s.handles {
		if !h.deadline.After(now) {
			due = append(due, h)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].purpose < due[j].purpose
		}
		return due[i].deadline.Before(due[j].deadline)
	})

	for _, h := range due {
		// The handle may have been cancelled or replaced by an earlier
		// callback in this same pass.
		current, ok := s.handles[h.purpose]
		if !ok || current != h {
			continue
		}
		if h.interval > 0 {
			h.deadline = h.deadline.Add(h.interval)
		} else {
			delete(s.handles, h.purpose)
		}
		h.fn()
	}
}
