package car

import (
	"time"

	"bolide-go/bus"
	"bolide-go/errcode"
	"bolide-go/homie"
	"bolide-go/nodes"
	"bolide-go/services/hal"
	"bolide-go/types"
	"bolide-go/x/logx"
	"bolide-go/x/timex"
)

// Options describe one firmware instance.
type Options struct {
	Config   types.BoardConfig
	Pins     hal.PinFactory
	Conn     *bus.Connection
	Firmware types.Firmware
	Clock    timex.Clock
	Log      logx.Logger

	// OnReset runs after the device has been marked disconnected, when the
	// button is held for Config.ResetHoldMs.
	OnReset func()
}

// Firmware is the wired car: every node, the motors and the main loop.
type Firmware struct {
	Channel    *homie.BusChannel
	Speed      *nodes.PWMNode
	Left       *nodes.OutNode
	Right      *nodes.OutNode
	Button     *nodes.InNode
	LED        *nodes.OutNode
	Buzzer     *nodes.ToneNode
	Motors     *Motors
	Dispatcher *Dispatcher
}

// Build claims the configured pins, advertises every node and marks the
// device ready.
func Build(o Options) (*Firmware, error) {
	if o.Clock == nil {
		o.Clock = timex.System
	}
	if o.Log == nil {
		o.Log = logx.Println
	}
	cfg, pins := o.Config, o.Config.Pins
	fw := &Firmware{}
	fw.Channel = homie.NewBusChannel(o.Conn, cfg.DeviceID, o.Firmware, o.Log)

	pp, err := o.Pins.PWM("speed", pins.MotorPWM)
	if err != nil {
		return nil, wrap("speed", err)
	}
	pwm, err := hal.NewPWM(pp, cfg.PWMTop, 0)
	if err != nil {
		return nil, wrap("speed", err)
	}
	// An external speed becomes the remembered speed for the next move.
	fw.Speed = nodes.NewPWMNode(fw.Channel, "speed", pwm, func(level int) {
		if fw.Motors != nil {
			fw.Motors.Remember(level)
		}
	})

	if fw.Left, err = outNode(o, fw.Channel, "left", pins.MotorLeft); err != nil {
		return nil, err
	}
	if fw.Right, err = outNode(o, fw.Channel, "right", pins.MotorRight); err != nil {
		return nil, err
	}
	fw.Motors = NewMotors(fw.Channel, fw.Speed, fw.Left, fw.Right, cfg.DefaultSpeed, o.Log)

	bp, err := o.Pins.GPIO("button", pins.Button, hal.FuncGPIOIn)
	if err != nil {
		return nil, wrap("button", err)
	}
	window := time.Duration(cfg.DebounceMs) * time.Millisecond
	sensor, err := hal.NewSensor(bp, hal.PullUp, true, window, o.Clock)
	if err != nil {
		return nil, wrap("button", err)
	}
	fw.Button = nodes.NewInNode(fw.Channel, "button", sensor, nil)

	if fw.LED, err = outNode(o, fw.Channel, "led", pins.LED); err != nil {
		return nil, err
	}

	tp, err := o.Pins.Tone("buzzer", pins.Buzzer)
	if err != nil {
		return nil, wrap("buzzer", err)
	}
	tone, err := hal.NewTone(tp, 0, o.Clock)
	if err != nil {
		return nil, wrap("buzzer", err)
	}
	fw.Buzzer = nodes.NewToneNode(fw.Channel, "buzzer", tone, nil)

	fw.Dispatcher = NewDispatcher(DispatcherConfig{
		Channel:   fw.Channel,
		Button:    fw.Button,
		Motors:    fw.Motors,
		Buzzer:    fw.Buzzer,
		ResetHold: time.Duration(cfg.ResetHoldMs) * time.Millisecond,
		OnReset: func() {
			fw.Channel.SetState(types.StateDisconnected)
			if o.OnReset != nil {
				o.OnReset()
			}
		},
		Clock: o.Clock,
		Log:   o.Log,
	})

	fw.Channel.Ready()
	return fw, nil
}

func outNode(o Options, ch homie.Channel, id string, pin int) (*nodes.OutNode, error) {
	gp, err := o.Pins.GPIO(id, pin, hal.FuncGPIOOut)
	if err != nil {
		return nil, wrap(id, err)
	}
	d, err := hal.NewDigital(gp, false)
	if err != nil {
		return nil, wrap(id, err)
	}
	return nodes.NewOutNode(ch, id, d, nil, o.Log), nil
}

func wrap(id string, err error) error {
	return errcode.Wrap(errcode.Of(err), "car."+id, err)
}
