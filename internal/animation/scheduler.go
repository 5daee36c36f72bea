// Package animation decides which two slides are on screen and how far the
// cross-fade between them has progressed.
package animation

import (
	"errors"
	"time"
)

// ErrNoSlides is returned when a scheduler is built for an empty set.
var ErrNoSlides = errors.New("animation: at least one slide is required")

const (
	DefaultInterval   = 5000 * time.Millisecond
	DefaultTransition = 3000 * time.Millisecond
)

// Phase is the scheduler state.
type Phase int

const (
	Holding       Phase = iota // current slide shown at full opacity
	Transitioning              // blending current into next
)

func (p Phase) String() string {
	switch p {
	case Holding:
		return "holding"
	case Transitioning:
		return "transitioning"
	default:
		return "unknown"
	}
}

// State is a snapshot of the scheduler.
type State struct {
	Current         int
	Next            int
	Mix             float32
	Phase           Phase
	LastSwitch      time.Time
	TransitionStart time.Time
}

// Scheduler is the Holding/Transitioning state machine. It is not safe for
// concurrent use; the render loop owns it.
type Scheduler struct {
	n          int
	interval   time.Duration
	transition time.Duration
	state      State
}

// NewScheduler starts in Holding on slide 0 at now.
func NewScheduler(n int, interval, transition time.Duration, now time.Time) (*Scheduler, error) {
	if n < 1 {
		return nil, ErrNoSlides
	}
	return &Scheduler{
		n:          n,
		interval:   interval,
		transition: transition,
		state: State{
			Current:    0,
			Next:       1 % n,
			Phase:      Holding,
			LastSwitch: now,
		},
	}, nil
}

func (s *Scheduler) State() State { return s.state }

// Update advances the state machine to now and returns the new state.
func (s *Scheduler) Update(now time.Time) State {
	switch s.state.Phase {
	case Holding:
		if now.Sub(s.state.LastSwitch) >= s.interval {
			s.state.Phase = Transitioning
			s.state.TransitionStart = now
		}
	case Transitioning:
		progress := 1.0
		if s.transition > 0 {
			progress = float64(now.Sub(s.state.TransitionStart)) / float64(s.transition)
		}
		if progress >= 1.0 {
			s.finalize(now)
		} else {
			s.state.Mix = float32(clamp(progress, 0, 1))
		}
	}
	return s.state
}

// Skip cuts the hold short and starts a transition at now. It reports false
// when a transition is already running.
func (s *Scheduler) Skip(now time.Time) bool {
	if s.state.Phase != Holding {
		return false
	}
	s.state.Phase = Transitioning
	s.state.TransitionStart = now
	return true
}

func (s *Scheduler) finalize(now time.Time) {
	s.state.Mix = 0
	s.state.Phase = Holding
	s.state.Current = s.state.Next
	s.state.Next = (s.state.Current + 1) % s.n
	s.state.LastSwitch = now
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
