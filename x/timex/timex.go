package timex

import "time"

// Clock returns the current time. Polling code takes a Clock so tests can
// drive time explicitly.
type Clock func() time.Time

// System is the wall clock.
var System Clock = time.Now

// PeriodFromHz returns a nanosecond period for a requested frequency.
// freqHz==0 is coerced to 1 to avoid division by zero.
func PeriodFromHz(freqHz uint32) uint64 {
	if freqHz == 0 {
		freqHz = 1
	}
	return uint64(1_000_000_000 / uint64(freqHz))
}

// Manual is a test clock advanced by hand.
type Manual struct{ t time.Time }

func NewManual(start time.Time) *Manual { return &Manual{t: start} }

func (m *Manual) Now() time.Time          { return m.t }
func (m *Manual) Advance(d time.Duration) { m.t = m.t.Add(d) }
