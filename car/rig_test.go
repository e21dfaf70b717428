package car_test

import (
	"time"

	. "github.com/onsi/gomega"

	"bolide-go/bus"
	"bolide-go/car"
	"bolide-go/homie"
	"bolide-go/nodes"
	"bolide-go/services/hal"
	"bolide-go/types"
	"bolide-go/x/logx"
	"bolide-go/x/timex"
)

const (
	pinPWM    = 0
	pinLeft   = 4
	pinRight  = 5
	pinButton = 14
	pinBuzzer = 13
)

// rig is the firmware wired over fake pins and a real bus.
type rig struct {
	bus  *bus.Bus
	obs  *bus.Connection
	ch   *homie.BusChannel
	pins *hal.HostPins
	clk  *timex.Manual
	log  *logx.Recorder

	speed  *nodes.PWMNode
	left   *nodes.OutNode
	right  *nodes.OutNode
	button *nodes.InNode
	buzzer *nodes.ToneNode
	motors *car.Motors
}

func newRig() *rig {
	r := &rig{
		bus:  bus.NewBus(32),
		pins: hal.NewHostPins(),
		clk:  timex.NewManual(time.Unix(0, 0)),
		log:  &logx.Recorder{},
	}
	r.obs = r.bus.NewConnection("observer")
	r.ch = homie.NewBusChannel(r.bus.NewConnection("firmware"), "bolide",
		types.Firmware{Name: "bolide", Version: "1.0.0"}, logx.Discard)

	pp, err := r.pins.PWM("speed", pinPWM)
	Expect(err).NotTo(HaveOccurred())
	pwm, err := hal.NewPWM(pp, 0, 0)
	Expect(err).NotTo(HaveOccurred())
	r.speed = nodes.NewPWMNode(r.ch, "speed", pwm, nil)

	r.left = r.out("left", pinLeft)
	r.right = r.out("right", pinRight)

	bp, err := r.pins.GPIO("button", pinButton, hal.FuncGPIOIn)
	Expect(err).NotTo(HaveOccurred())
	sensor, err := hal.NewSensor(bp, hal.PullUp, true, 0, r.clk.Now)
	Expect(err).NotTo(HaveOccurred())
	r.button = nodes.NewInNode(r.ch, "button", sensor, nil)

	tp, err := r.pins.Tone("buzzer", pinBuzzer)
	Expect(err).NotTo(HaveOccurred())
	tone, err := hal.NewTone(tp, 0, r.clk.Now)
	Expect(err).NotTo(HaveOccurred())
	r.buzzer = nodes.NewToneNode(r.ch, "buzzer", tone, nil)

	r.motors = car.NewMotors(r.ch, r.speed, r.left, r.right, 0, r.log.Log)
	r.ch.Ready()
	return r
}

func (r *rig) out(id string, n int) *nodes.OutNode {
	gp, err := r.pins.GPIO(id, n, hal.FuncGPIOOut)
	Expect(err).NotTo(HaveOccurred())
	d, err := hal.NewDigital(gp, false)
	Expect(err).NotTo(HaveOccurred())
	return nodes.NewOutNode(r.ch, id, d, nil, logx.Discard)
}

// set injects an external command the way a remote controller would.
func (r *rig) set(node, prop, value string) {
	r.obs.Publish(r.obs.NewMessage(homie.SetTopic("bolide", node, prop), value, false))
}

func (r *rig) retained(node, prop string) any {
	m, ok := r.bus.Retained(homie.PropertyTopic("bolide", node, prop))
	Expect(ok).To(BeTrue(), "no retained %s/%s", node, prop)
	return m.Payload
}

func (r *rig) hw() (level uint32, left, right bool) {
	p, _ := r.pins.PWMPin(pinPWM)
	l, _ := r.pins.Pin(pinLeft)
	rt, _ := r.pins.Pin(pinRight)
	return p.Level(), l.Get(), rt.Get()
}

// press holds the button down long enough to debounce.
func (r *rig) press(d *car.Dispatcher) {
	btn, _ := r.pins.Pin(pinButton)
	btn.Drive(false)
	d.Step()
	r.clk.Advance(hal.DefaultDebounce)
	d.Step()
}

func (r *rig) release(d *car.Dispatcher) {
	btn, _ := r.pins.Pin(pinButton)
	btn.Drive(true)
	d.Step()
	r.clk.Advance(hal.DefaultDebounce)
	d.Step()
}
