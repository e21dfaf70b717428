package car

import (
	"context"
	"time"

	"bolide-go/nodes"
	"bolide-go/x/logx"
	"bolide-go/x/timex"
)

// DefaultResetHold is how long the button must stay pressed to fire the
// reset callback.
const DefaultResetHold = 10 * time.Second

// Poller drains pending external commands and runs their handlers.
type Poller interface {
	Poll() int
}

type DispatcherConfig struct {
	Channel Poller
	Button  *nodes.InNode
	Motors  *Motors
	Buzzer  *nodes.ToneNode // optional

	// ResetHold <= 0 selects DefaultResetHold. OnReset may be nil.
	ResetHold time.Duration
	OnReset   func()

	Clock timex.Clock
	Log   logx.Logger
}

// Dispatcher is the cooperative main loop. Every handler and callback runs
// on the goroutine calling Step.
type Dispatcher struct {
	ch      Poller
	button  *nodes.InNode
	motors  *Motors
	buzzer  *nodes.ToneNode
	hold    time.Duration
	onReset func()
	clock   timex.Clock
	log     logx.Logger

	pressedAt time.Time
	pressed   bool
	fired     bool
}

func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	d := &Dispatcher{
		ch:      cfg.Channel,
		button:  cfg.Button,
		motors:  cfg.Motors,
		buzzer:  cfg.Buzzer,
		hold:    cfg.ResetHold,
		onReset: cfg.OnReset,
		clock:   cfg.Clock,
		log:     cfg.Log.With("car"),
	}
	if d.hold <= 0 {
		d.hold = DefaultResetHold
	}
	if d.clock == nil {
		d.clock = timex.System
	}
	return d
}

// Step runs one loop iteration: drain external commands, sample the button
// once (a press advances the motors before Step returns), then the reset
// hold and tone expiry checks.
func (d *Dispatcher) Step() {
	if d.ch != nil {
		d.ch.Poll()
	}
	if d.button.Update() {
		if d.button.Get() {
			d.pressed, d.fired = true, false
			d.pressedAt = d.clock()
			d.motors.Advance()
		} else {
			d.pressed = false
		}
	}
	if d.pressed && !d.fired && d.clock().Sub(d.pressedAt) >= d.hold {
		d.fired = true
		d.log("button held, reset")
		if d.onReset != nil {
			d.onReset()
		}
	}
	if d.buzzer != nil {
		d.buzzer.Expire()
	}
}

// Run calls Step every tick until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context, tick time.Duration) error {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			d.Step()
		}
	}
}
