// services/hal/types.go
package hal

import (
	"bolide-go/services/hal/internal/halcore"
	"bolide-go/services/hal/internal/platform"
)

// Pin surfaces re-exported from halcore so callers outside services/hal can
// implement or consume them.
type (
	Pull       = halcore.Pull
	Func       = halcore.Func
	GPIOPin    = halcore.GPIOPin
	PWMPin     = halcore.PWMPin
	TonePin    = halcore.TonePin
	PinFactory = halcore.PinFactory
)

const (
	PullNone = halcore.PullNone
	PullUp   = halcore.PullUp
	PullDown = halcore.PullDown

	FuncGPIOIn  = halcore.FuncGPIOIn
	FuncGPIOOut = halcore.FuncGPIOOut
)

// DefaultPins returns the platform pin factory (machine pins on RP2, fakes
// on host builds).
func DefaultPins() PinFactory { return platform.DefaultPinFactory() }

// Reset restarts the board. Off-target it only logs.
func Reset() { platform.Reset() }
