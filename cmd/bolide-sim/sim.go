package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"bolide-go/bus"
	"bolide-go/car"
	"bolide-go/homie"
	"bolide-go/services/config"
	"bolide-go/services/hal"
	"bolide-go/services/heartbeat"
	"bolide-go/types"
	"bolide-go/x/logx"
)

var firmware = types.Firmware{Name: "bolide", Version: "1.0.0"}

// sim owns one firmware instance. Everything that touches pins or nodes runs
// on the loop goroutine, either as a Step or as a queued command.
type sim struct {
	cfg  types.BoardConfig
	bus  *bus.Bus
	pins *hal.HostPins
	fw   *car.Firmware
	log  logx.Logger
	cmds chan func()

	remote *bus.Connection
}

func newSim(ctx context.Context, logOut io.Writer) (*sim, error) {
	log := logx.Logger(func(line string) { fmt.Fprintln(logOut, line) })

	cfg, err := config.Load(opts.board)
	if err != nil {
		return nil, err
	}
	if opts.device != "" {
		cfg.DeviceID = opts.device
	}

	s := &sim{
		cfg:  cfg,
		bus:  bus.NewBus(64),
		pins: hal.NewHostPins(),
		log:  log,
		cmds: make(chan func(), 16),
	}
	s.remote = s.bus.NewConnection("remote")

	cctx := context.WithValue(ctx, config.CtxBoardKey, opts.board)
	config.NewConfigService(log).Start(cctx, s.bus.NewConnection("config"))
	hb := &heartbeat.Service{Device: cfg.DeviceID, Log: log}
	_ = hb.Start(ctx, s.bus.NewConnection("heartbeat"))

	s.fw, err = car.Build(car.Options{
		Config:   cfg,
		Pins:     s.pins,
		Conn:     s.bus.NewConnection("car"),
		Firmware: firmware,
		Log:      log,
		OnReset:  func() { log("[sim] reset requested") },
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// run steps the firmware every tick and executes queued commands in
// between, until ctx is cancelled.
func (s *sim) run(ctx context.Context, tick time.Duration) error {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			s.fw.Dispatcher.Step()
		case fn := <-s.cmds:
			fn()
		}
	}
}

// do queues fn on the loop goroutine and waits for it.
func (s *sim) do(ctx context.Context, fn func()) {
	done := make(chan struct{})
	select {
	case s.cmds <- func() { fn(); close(done) }:
	case <-ctx.Done():
		return
	}
	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (s *sim) button(pressed bool) {
	p, _ := s.pins.Pin(s.cfg.Pins.Button)
	// Active low.
	p.Drive(!pressed)
}

func (s *sim) set(node, prop, value string) {
	s.remote.Publish(s.remote.NewMessage(homie.SetTopic(s.cfg.DeviceID, node, prop), value, false))
}

func (s *sim) status(w io.Writer) {
	pwm, _ := s.pins.PWMPin(s.cfg.Pins.MotorPWM)
	left, _ := s.pins.Pin(s.cfg.Pins.MotorLeft)
	right, _ := s.pins.Pin(s.cfg.Pins.MotorRight)
	led, _ := s.pins.Pin(s.cfg.Pins.LED)
	tone, _ := s.pins.TonePin(s.cfg.Pins.Buzzer)
	fmt.Fprintf(w, "direction=%s speed=%d remembered=%d\n",
		s.fw.Motors.Direction(), s.fw.Speed.Get(), s.fw.Motors.Speed())
	fmt.Fprintf(w, "pins: pwm=%d left=%t right=%t led=%t buzzer=%dHz button=%t\n",
		pwm.Level(), left.Get(), right.Get(), led.Get(), tone.Freq(), s.fw.Button.Get())
}
