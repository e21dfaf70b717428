// services/hal/internal/platform/factories_rp2xxx.go
//go:build rp2040 || rp2350

package platform

import (
	"machine"

	"tinygo.org/x/drivers/tone"

	"bolide-go/errcode"
	"bolide-go/services/hal/internal/halcore"
	"bolide-go/x/mathx"
	"bolide-go/x/timex"
)

// -----------------------------------------------------------------------------
// Defaults used on Raspberry Pi Pico / Pico 2 (RP2 family)
// -----------------------------------------------------------------------------

// DefaultPinFactory maps logical numbers directly to machine.Pin(n), which
// matches Pico/Pico 2 GP numbering.
func DefaultPinFactory() halcore.PinFactory { return &rp2PinFactory{} }

type rp2PinFactory struct {
	claims claims
}

func validPin(n int) bool { return mathx.Between(n, 0, 28) }

func (f *rp2PinFactory) GPIO(owner string, n int, fn halcore.Func) (halcore.GPIOPin, error) {
	if !validPin(n) {
		return nil, errcode.UnknownPin
	}
	if err := f.claims.take(owner, n, fn); err != nil {
		return nil, err
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, nil
}

func (f *rp2PinFactory) PWM(owner string, n int) (halcore.PWMPin, error) {
	if !validPin(n) {
		return nil, errcode.UnknownPin
	}
	if err := f.claims.take(owner, n, halcore.FuncPWM); err != nil {
		return nil, err
	}
	return &rp2PWM{n: n, ctrl: pwmGroupForPin(n)}, nil
}

func (f *rp2PinFactory) Tone(owner string, n int) (halcore.TonePin, error) {
	if !validPin(n) {
		return nil, errcode.UnknownPin
	}
	if err := f.claims.take(owner, n, halcore.FuncTone); err != nil {
		return nil, err
	}
	return &rp2Tone{n: n, ctrl: pwmGroupForPin(n)}, nil
}

func (f *rp2PinFactory) Release(owner string, n int) { f.claims.release(owner, n) }

// ---- GPIO ----

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) ConfigureInput(pull halcore.Pull) error {
	var mode machine.PinMode
	switch pull {
	case halcore.PullUp:
		mode = machine.PinInputPullup
	case halcore.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }
func (r *rp2Pin) Number() int    { return r.n }

// ---- PWM ----

// pwmCtrl is the slice controller surface shared by plain PWM and the tone
// driver; it matches tone.PWM.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
	SetPeriod(period uint64) error
}

// Each RP2 slice drives two consecutive GPIOs.
func pwmGroupForPin(n int) pwmCtrl {
	switch (n >> 1) & 7 {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

type rp2PWM struct {
	n     int
	ctrl  pwmCtrl
	ch    uint8
	top   uint32 // logical resolution
	hwTop uint32
}

func (p *rp2PWM) Configure(freqHz uint64, top uint32) error {
	freqHz = mathx.Max(freqHz, 1)
	if err := p.ctrl.Configure(machine.PWMConfig{Period: 1_000_000_000 / freqHz}); err != nil {
		return err
	}
	ch, err := p.ctrl.Channel(machine.Pin(p.n))
	if err != nil {
		return err
	}
	p.ch = ch
	p.top = mathx.Max(top, 1)
	p.hwTop = p.ctrl.Top()
	return nil
}

func (p *rp2PWM) Set(level uint32) {
	p.ctrl.Set(p.ch, mathx.ScaleU32(level, p.top, p.hwTop))
}

func (p *rp2PWM) Number() int { return p.n }

// ---- Tone ----

type rp2Tone struct {
	n    int
	ctrl pwmCtrl
	spk  tone.Speaker
}

func (t *rp2Tone) Configure() error {
	spk, err := tone.New(t.ctrl, machine.Pin(t.n))
	if err != nil {
		return err
	}
	t.spk = spk
	return nil
}

func (t *rp2Tone) Tone(freqHz uint32) { t.spk.SetPeriod(timex.PeriodFromHz(freqHz)) }
func (t *rp2Tone) Stop()              { t.spk.Stop() }
func (t *rp2Tone) Number() int        { return t.n }

// Reset restarts the MCU through the watchdog.
func Reset() {
	println("[hal] reset")
	machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 1})
	machine.Watchdog.Start()
	for {
	}
}
