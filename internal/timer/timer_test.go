package timer

import (
	"testing"
	"time"
)

var t0 = time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)

func TestOneShotFiresAtDeadline(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.Schedule("period", 5*time.Second, t0, func() { fired++ })

	s.Advance(t0.Add(4 * time.Second))
	if fired != 0 {
		t.Fatal("timer fired before its deadline")
	}

	s.Advance(t0.Add(5 * time.Second))
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}

	// One-shot must not fire again.
	s.Advance(t0.Add(10 * time.Second))
	if fired != 1 {
		t.Fatalf("fired = %d after extra advance, want 1", fired)
	}
	if s.Active("period") {
		t.Fatal("one-shot handle should be gone after firing")
	}
}

func TestScheduleReplacesSamePurpose(t *testing.T) {
	s := NewScheduler()
	firstFired := false
	secondFired := false

	s.Schedule("period", 1*time.Second, t0, func() { firstFired = true })
	s.Schedule("period", 10*time.Second, t0, func() { secondFired = true })

	s.Advance(t0.Add(2 * time.Second))
	if firstFired {
		t.Fatal("replaced handle must never fire")
	}
	s.Advance(t0.Add(10 * time.Second))
	if !secondFired {
		t.Fatal("replacement handle should fire at its own deadline")
	}
}

func TestCancelPreventsFiring(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.Schedule("celebration", time.Second, t0, func() { fired = true })

	if !s.Cancel("celebration") {
		t.Fatal("cancel should report an existing handle")
	}
	if s.Cancel("celebration") {
		t.Fatal("second cancel should report nothing to cancel")
	}

	s.Advance(t0.Add(time.Minute))
	if fired {
		t.Fatal("cancelled timer fired")
	}
}

func TestRepeatingFiresOncePerAdvance(t *testing.T) {
	s := NewScheduler()
	ticks := 0
	s.ScheduleRepeating("countdown", time.Second, t0, func() { ticks++ })

	for i := 1; i <= 3; i++ {
		s.Advance(t0.Add(time.Duration(i) * time.Second))
	}
	if ticks != 3 {
		t.Fatalf("ticks = %d, want 3", ticks)
	}

	// A late advance covering several intervals still fires once; the
	// schedule slips rather than replaying missed ticks.
	s.Advance(t0.Add(30 * time.Second))
	if ticks != 4 {
		t.Fatalf("ticks = %d after late advance, want 4", ticks)
	}
}

func TestCallbackMayRearmSamePurpose(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.Schedule("sequence", time.Second, t0, func() {
		fired++
		s.Schedule("sequence", time.Second, t0.Add(time.Second), func() { fired++ })
	})

	s.Advance(t0.Add(time.Second))
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
	s.Advance(t0.Add(2 * time.Second))
	if fired != 2 {
		t.Fatalf("fired = %d, want 2", fired)
	}
}

func TestCallbackCancellingOtherHandle(t *testing.T) {
	s := NewScheduler()
	cancelled := false
	s.Schedule("a", time.Second, t0, func() { s.Cancel("b") })
	s.Schedule("b", time.Second, t0.Add(time.Millisecond), func() { cancelled = true })

	s.Advance(t0.Add(2 * time.Second))
	if cancelled {
		t.Fatal("handle cancelled mid-pass must not fire")
	}
}

func TestPauseCapturesRemaining(t *testing.T) {
	// Period armed for 120s; paused after 45s elapsed: the snapshot must
	// hold exactly 75s regardless of how long the pause later lasts.
	s := NewScheduler()
	fired := false
	s.Schedule("period", 120*time.Second, t0, func() { fired = true })

	pausedAt := t0.Add(45 * time.Second)
	snap, ok := s.Pause("period", pausedAt)
	if !ok {
		t.Fatal("pause should capture the armed handle")
	}
	if snap.Remaining != 75*time.Second {
		t.Fatalf("remaining = %v, want 75s", snap.Remaining)
	}
	if !snap.PausedAt.Equal(pausedAt) {
		t.Fatalf("pausedAt = %v, want %v", snap.PausedAt, pausedAt)
	}
	if s.Active("period") {
		t.Fatal("paused handle should be cancelled")
	}

	// A long pause elapses; the resumed timer still runs the captured 75s.
	resumeAt := pausedAt.Add(17 * time.Second)
	s.Schedule("period", snap.Remaining, resumeAt, func() { fired = true })

	s.Advance(resumeAt.Add(75*time.Second - time.Millisecond))
	if fired {
		t.Fatal("resumed timer fired early")
	}
	s.Advance(resumeAt.Add(75 * time.Second))
	if !fired {
		t.Fatal("resumed timer should fire exactly remaining after resume")
	}
}

func TestRemaining(t *testing.T) {
	s := NewScheduler()
	s.Schedule("period", time.Minute, t0, func() {})

	d, ok := s.Remaining("period", t0.Add(20*time.Second))
	if !ok || d != 40*time.Second {
		t.Fatalf("remaining = %v ok=%v, want 40s", d, ok)
	}
	if _, ok := s.Remaining("missing", t0); ok {
		t.Fatal("remaining for unknown purpose should report false")
	}
}
