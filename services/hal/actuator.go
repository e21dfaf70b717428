package hal

import (
	"time"

	"bolide-go/x/mathx"
	"bolide-go/x/timex"
)

const (
	// PWMMax is the default PWM resolution (the Arduino ESP8266 PWMRANGE).
	PWMMax = 1023
	// PWMFreqHz is the default carrier frequency for motor PWM.
	PWMFreqHz = 1000
	// ToneMax is the highest frequency a Tone actuator emits, in Hz.
	ToneMax = 20000
)

// -----------------------------------------------------------------------------
// Digital
// -----------------------------------------------------------------------------

// Digital is a binary output.
type Digital struct {
	pin   GPIOPin
	value bool
}

// NewDigital configures pin as an output and drives it to initial.
func NewDigital(pin GPIOPin, initial bool) (*Digital, error) {
	if err := pin.ConfigureOutput(initial); err != nil {
		return nil, err
	}
	return &Digital{pin: pin, value: initial}, nil
}

// Set drives the pin and returns the applied level.
func (d *Digital) Set(on bool) bool {
	d.pin.Set(on)
	d.value = on
	return on
}

func (d *Digital) Get() bool { return d.value }
func (d *Digital) Pin() int  { return d.pin.Number() }

// -----------------------------------------------------------------------------
// PWM
// -----------------------------------------------------------------------------

// PWM is a duty-cycle output with levels in [0, Max()].
type PWM struct {
	pin   PWMPin
	top   int
	value int
}

// NewPWM configures pin with resolution top (PWMMax when <= 0) and applies
// initial.
func NewPWM(pin PWMPin, top, initial int) (*PWM, error) {
	if top <= 0 {
		top = PWMMax
	}
	if err := pin.Configure(PWMFreqHz, uint32(top)); err != nil {
		return nil, err
	}
	p := &PWM{pin: pin, top: top}
	p.Set(initial)
	return p, nil
}

// Set saturates v into [0, Max()], writes it and returns the applied level.
func (p *PWM) Set(v int) int {
	v = mathx.Clamp(v, 0, p.top)
	p.pin.Set(uint32(v))
	p.value = v
	return v
}

func (p *PWM) Get() int { return p.value }
func (p *PWM) Max() int { return p.top }
func (p *PWM) Pin() int { return p.pin.Number() }

// -----------------------------------------------------------------------------
// Tone
// -----------------------------------------------------------------------------

// Tone drives a buzzer. A frequency of 0 means silent.
type Tone struct {
	pin   TonePin
	freq  int
	clock timex.Clock
	until time.Time // zero: emit until changed
}

// NewTone configures pin and applies initial. A nil clock uses the system
// clock.
func NewTone(pin TonePin, initial int, clock timex.Clock) (*Tone, error) {
	if err := pin.Configure(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = timex.System
	}
	t := &Tone{pin: pin, clock: clock}
	t.Set(initial)
	return t, nil
}

// Set emits freq until changed. freq <= 0 stops emission; freq above
// ToneMax saturates.
func (t *Tone) Set(freq int) int { return t.SetFor(freq, 0) }

// SetFor emits freq for d, after which Expire silences the output. d <= 0
// emits until changed.
func (t *Tone) SetFor(freq int, d time.Duration) int {
	if freq <= 0 {
		t.pin.Stop()
		t.freq = 0
		t.until = time.Time{}
		return 0
	}
	freq = mathx.Min(freq, ToneMax)
	t.pin.Tone(uint32(freq))
	t.freq = freq
	t.until = time.Time{}
	if d > 0 {
		t.until = t.clock().Add(d)
	}
	return freq
}

// Expire silences a timed tone whose duration has elapsed. It reports whether
// the output changed.
func (t *Tone) Expire() bool {
	if t.until.IsZero() || t.clock().Before(t.until) {
		return false
	}
	t.Set(0)
	return true
}

func (t *Tone) Get() int { return t.freq }
func (t *Tone) Pin() int { return t.pin.Number() }
