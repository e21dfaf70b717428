// services/hal/internal/platform/factories_host.go
//go:build !(rp2040 || rp2350)

package platform

import (
	"sync"

	"bolide-go/errcode"
	"bolide-go/services/hal/internal/halcore"
)

// Host pins model the board in memory so the firmware runs under a desktop
// Go toolchain. Every write is counted so callers can observe that a repeated
// identical Set still reaches the "hardware".

const hostMaxPin = 40

// ----------------------------- GPIO (host) -----------------------------------

// FakePin implements GPIOPin for host-side runs and tests.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	modeOut bool
	pull    halcore.Pull
	driven  bool
	writes  int
}

func (p *FakePin) ConfigureInput(pull halcore.Pull) error {
	p.mu.Lock()
	p.modeOut = false
	p.pull = pull
	// A pulled input rests at the pull level unless something drives it.
	if !p.driven {
		switch pull {
		case halcore.PullUp:
			p.level = true
		case halcore.PullDown:
			p.level = false
		}
	}
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.writes++
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.writes++
	p.mu.Unlock()
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

func (p *FakePin) Number() int { return p.number }

// Drive sets the electrical level seen by an input, as a button would.
func (p *FakePin) Drive(level bool) {
	p.mu.Lock()
	p.level = level
	p.driven = true
	p.mu.Unlock()
}

// Writes reports how many output writes the pin has received.
func (p *FakePin) Writes() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.writes
}

func (p *FakePin) IsOutput() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modeOut
}

// ----------------------------- PWM (host) ------------------------------------

// FakePWM implements PWMPin.
type FakePWM struct {
	mu     sync.Mutex
	number int
	freqHz uint64
	top    uint32
	level  uint32
	writes int
}

func (p *FakePWM) Configure(freqHz uint64, top uint32) error {
	p.mu.Lock()
	p.freqHz = freqHz
	p.top = top
	p.mu.Unlock()
	return nil
}

func (p *FakePWM) Set(level uint32) {
	p.mu.Lock()
	if level > p.top {
		level = p.top
	}
	p.level = level
	p.writes++
	p.mu.Unlock()
}

func (p *FakePWM) Number() int { return p.number }

func (p *FakePWM) Level() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

func (p *FakePWM) Writes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writes
}

// ----------------------------- Tone (host) -----------------------------------

// FakeTone implements TonePin. Freq is 0 while silent.
type FakeTone struct {
	mu     sync.Mutex
	number int
	freq   uint32
	writes int
}

func (p *FakeTone) Configure() error { return nil }

func (p *FakeTone) Tone(freqHz uint32) {
	p.mu.Lock()
	p.freq = freqHz
	p.writes++
	p.mu.Unlock()
}

func (p *FakeTone) Stop() {
	p.mu.Lock()
	p.freq = 0
	p.writes++
	p.mu.Unlock()
}

func (p *FakeTone) Number() int { return p.number }

func (p *FakeTone) Freq() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.freq
}

func (p *FakeTone) Writes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writes
}

// ----------------------------- Factory ---------------------------------------

// HostPinFactory returns stable fake pins per number.
type HostPinFactory struct {
	claims claims

	mu    sync.Mutex
	gpio  map[int]*FakePin
	pwm   map[int]*FakePWM
	tones map[int]*FakeTone
}

func NewHostPinFactory() *HostPinFactory {
	return &HostPinFactory{
		gpio:  make(map[int]*FakePin),
		pwm:   make(map[int]*FakePWM),
		tones: make(map[int]*FakeTone),
	}
}

func (f *HostPinFactory) GPIO(owner string, n int, fn halcore.Func) (halcore.GPIOPin, error) {
	if n < 0 || n > hostMaxPin {
		return nil, errcode.UnknownPin
	}
	if err := f.claims.take(owner, n, fn); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.gpio[n]
	if !ok {
		p = &FakePin{number: n}
		f.gpio[n] = p
	}
	return p, nil
}

func (f *HostPinFactory) PWM(owner string, n int) (halcore.PWMPin, error) {
	if n < 0 || n > hostMaxPin {
		return nil, errcode.UnknownPin
	}
	if err := f.claims.take(owner, n, halcore.FuncPWM); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pwm[n]
	if !ok {
		p = &FakePWM{number: n}
		f.pwm[n] = p
	}
	return p, nil
}

func (f *HostPinFactory) Tone(owner string, n int) (halcore.TonePin, error) {
	if n < 0 || n > hostMaxPin {
		return nil, errcode.UnknownPin
	}
	if err := f.claims.take(owner, n, halcore.FuncTone); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.tones[n]
	if !ok {
		p = &FakeTone{number: n}
		f.tones[n] = p
	}
	return p, nil
}

func (f *HostPinFactory) Release(owner string, n int) { f.claims.release(owner, n) }

// Pin exposes the underlying *FakePin (e.g. to drive a button).
func (f *HostPinFactory) Pin(n int) (*FakePin, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.gpio[n]
	return p, ok
}

func (f *HostPinFactory) PWMPin(n int) (*FakePWM, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pwm[n]
	return p, ok
}

func (f *HostPinFactory) TonePin(n int) (*FakeTone, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.tones[n]
	return p, ok
}

// DefaultPinFactory provides a host pin factory.
func DefaultPinFactory() halcore.PinFactory { return NewHostPinFactory() }

// Reset is a no-op off-target; the caller keeps running.
func Reset() { println("[hal] reset requested (host: ignored)") }
