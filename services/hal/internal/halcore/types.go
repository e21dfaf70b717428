// services/hal/internal/halcore/types.go
package halcore

// ---- GPIO abstractions ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Number() int
}

// PWMPin is one PWM channel bound to a pin. Levels are logical, 0..top.
type PWMPin interface {
	Configure(freqHz uint64, top uint32) error
	Set(level uint32)
	Number() int
}

// TonePin emits a square wave. Tone(0) is not special; callers use Stop.
type TonePin interface {
	Configure() error
	Tone(freqHz uint32)
	Stop()
	Number() int
}

// ---- Pin ownership ----

// Func is the function a pin was claimed for.
type Func uint8

const (
	FuncGPIOIn Func = iota
	FuncGPIOOut
	FuncPWM
	FuncTone
)

func (f Func) String() string {
	switch f {
	case FuncGPIOIn:
		return "gpio_in"
	case FuncGPIOOut:
		return "gpio_out"
	case FuncPWM:
		return "pwm"
	case FuncTone:
		return "tone"
	default:
		return "unknown"
	}
}

// PinFactory hands out exclusively owned pins by number. A pin claimed once
// cannot be claimed again, whatever the function.
type PinFactory interface {
	GPIO(owner string, n int, fn Func) (GPIOPin, error)
	PWM(owner string, n int) (PWMPin, error)
	Tone(owner string, n int) (TonePin, error)
	Release(owner string, n int)
}
