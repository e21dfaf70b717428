package car_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bolide-go/bus"
	"bolide-go/car"
	"bolide-go/errcode"
	"bolide-go/homie"
	"bolide-go/services/config"
	"bolide-go/services/hal"
	"bolide-go/types"
	"bolide-go/x/logx"
	"bolide-go/x/timex"
)

var _ = Describe("Firmware", func() {
	var (
		b      *bus.Bus
		pins   *hal.HostPins
		clk    *timex.Manual
		cfg    types.BoardConfig
		resets int
	)

	build := func() (*car.Firmware, error) {
		return car.Build(car.Options{
			Config:   cfg,
			Pins:     pins,
			Conn:     b.NewConnection("firmware"),
			Firmware: types.Firmware{Name: "bolide", Version: "1.0.0"},
			Clock:    clk.Now,
			Log:      logx.Discard,
			OnReset:  func() { resets++ },
		})
	}

	attr := func(path string) any {
		m, ok := b.Retained(bus.Parse("homie/bolide/" + path))
		Expect(ok).To(BeTrue(), path)
		return m.Payload
	}

	BeforeEach(func() {
		b = bus.NewBus(32)
		pins = hal.NewHostPins()
		clk = timex.NewManual(time.Unix(0, 0))
		cfg = config.Defaults()
		resets = 0
	})

	It("should advertise every node and become ready", func() {
		fw, err := build()
		Expect(err).NotTo(HaveOccurred())
		Expect(fw.Motors.Direction()).To(Equal(car.Stop))

		Expect(attr("$nodes")).To(Equal("speed,left,right,car,button,led,buzzer"))
		Expect(attr("$state")).To(Equal("ready"))
		Expect(attr("speed/pwm")).To(Equal("0"))
		Expect(attr("left/on")).To(Equal("false"))
		Expect(attr("button/on")).To(Equal("false"))
		Expect(attr("button/on/$settable")).To(Equal("false"))
		Expect(attr("buzzer/freq/$format")).To(Equal("0:20000"))
		Expect(attr("car/direction")).To(Equal("stop"))
	})

	It("should remember an externally set speed for the next move", func() {
		fw, err := build()
		Expect(err).NotTo(HaveOccurred())

		obs := b.NewConnection("remote")
		obs.Publish(obs.NewMessage(homie.SetTopic("bolide", "speed", "pwm"), "800", false))
		obs.Publish(obs.NewMessage(homie.SetTopic("bolide", "car", "direction"), "stop", false))
		obs.Publish(obs.NewMessage(homie.SetTopic("bolide", "car", "direction"), "forward", false))
		fw.Dispatcher.Step()

		Expect(fw.Speed.Get()).To(Equal(800))
		Expect(fw.Motors.Speed()).To(Equal(800))
		Expect(attr("car/direction")).To(Equal("forward"))
	})

	It("should drive the LED independently", func() {
		fw, err := build()
		Expect(err).NotTo(HaveOccurred())

		obs := b.NewConnection("remote")
		obs.Publish(obs.NewMessage(homie.SetTopic("bolide", "led", "on"), "true", false))
		fw.Dispatcher.Step()

		led, _ := pins.Pin(cfg.Pins.LED)
		Expect(led.Get()).To(BeTrue())
		Expect(fw.Motors.Direction()).To(Equal(car.Stop))
	})

	It("should refuse a board config that reuses a pin", func() {
		cfg.Pins.LED = cfg.Pins.Button
		_, err := build()
		Expect(err).To(HaveOccurred())
		Expect(errcode.Of(err)).To(Equal(errcode.PinInUse))
	})

	It("should mark the device disconnected before resetting", func() {
		cfg.ResetHoldMs = 500
		fw, err := build()
		Expect(err).NotTo(HaveOccurred())

		btn, _ := pins.Pin(cfg.Pins.Button)
		btn.Drive(false)
		fw.Dispatcher.Step()
		clk.Advance(time.Duration(cfg.DebounceMs) * time.Millisecond)
		fw.Dispatcher.Step()
		clk.Advance(500 * time.Millisecond)
		fw.Dispatcher.Step()

		Expect(resets).To(Equal(1))
		Expect(attr("$state")).To(Equal("disconnected"))
	})
})
