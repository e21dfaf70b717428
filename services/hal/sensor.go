package hal

import (
	"time"

	"bolide-go/x/timex"
)

// DefaultDebounce is the stable interval a raw level must hold before the
// debounced level follows it.
const DefaultDebounce = 25 * time.Millisecond

// DebounceState is the complete state of one debounced input.
type DebounceState struct {
	Stable    bool      // debounced raw level
	Candidate bool      // last raw sample
	Since     time.Time // when Candidate was first seen
}

// NewDebounceState seeds the state with a raw level observed at now.
func NewDebounceState(raw bool, now time.Time) DebounceState {
	return DebounceState{Stable: raw, Candidate: raw, Since: now}
}

// Debounce advances s with a raw sample taken at now. The stable level only
// flips once the same raw level has been observed continuously for window.
// changed reports a flip of the stable level.
func Debounce(s DebounceState, raw bool, now time.Time, window time.Duration) (next DebounceState, changed bool) {
	if raw != s.Candidate {
		s.Candidate = raw
		s.Since = now
	}
	if s.Candidate != s.Stable && now.Sub(s.Since) >= window {
		s.Stable = s.Candidate
		return s, true
	}
	return s, false
}

// Sensor is a debounced digital input.
//
// With idlePolarity set, the pin's resting (pulled-up) level reads as logical
// false, so an input that boots high does not look active. Such a sensor
// also starts at rest whatever the pin reads, so an input held through boot
// reports a press once it has been stable for the window.
type Sensor struct {
	pin          GPIOPin
	idlePolarity bool
	window       time.Duration
	clock        timex.Clock
	st           DebounceState
}

// NewSensor configures pin as an input. window <= 0 selects DefaultDebounce;
// a nil clock uses the system clock.
func NewSensor(pin GPIOPin, pull Pull, idlePolarity bool, window time.Duration, clock timex.Clock) (*Sensor, error) {
	if err := pin.ConfigureInput(pull); err != nil {
		return nil, err
	}
	if window <= 0 {
		window = DefaultDebounce
	}
	if clock == nil {
		clock = timex.System
	}
	return &Sensor{
		pin:          pin,
		idlePolarity: idlePolarity,
		window:       window,
		clock:        clock,
		st:           seed(pin.Get(), idlePolarity, clock()),
	}, nil
}

func seed(raw, idlePolarity bool, now time.Time) DebounceState {
	st := NewDebounceState(raw, now)
	if idlePolarity {
		st.Stable = true
	}
	return st
}

// Get returns the last debounced logical level.
func (s *Sensor) Get() bool { return s.st.Stable != s.idlePolarity }

// Update samples the pin once and reports whether the logical level flipped
// since the previous call. It never blocks.
func (s *Sensor) Update() bool {
	var changed bool
	s.st, changed = Debounce(s.st, s.pin.Get(), s.clock(), s.window)
	return changed
}

func (s *Sensor) Pin() int              { return s.pin.Number() }
func (s *Sensor) Window() time.Duration { return s.window }
