//go:build !(rp2040 || rp2350)

package hal

import "bolide-go/services/hal/internal/platform"

// Host builds run against in-memory pins. These aliases let tests and the
// simulator drive inputs and inspect outputs.
type (
	FakePin  = platform.FakePin
	FakePWM  = platform.FakePWM
	FakeTone = platform.FakeTone
	HostPins = platform.HostPinFactory
)

// NewHostPins returns a fresh set of fake pins.
func NewHostPins() *HostPins { return platform.NewHostPinFactory() }
