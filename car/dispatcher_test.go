package car_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bolide-go/car"
)

var _ = Describe("Dispatcher", func() {
	var (
		r      *rig
		d      *car.Dispatcher
		resets int
	)

	BeforeEach(func() {
		r = newRig()
		resets = 0
		d = car.NewDispatcher(car.DispatcherConfig{
			Channel:   r.ch,
			Button:    r.button,
			Motors:    r.motors,
			Buzzer:    r.buzzer,
			ResetHold: time.Second,
			OnReset:   func() { resets++ },
			Clock:     r.clk.Now,
			Log:       r.log.Log,
		})
	})

	It("should do nothing on an idle step", func() {
		d.Step()
		d.Step()
		Expect(r.motors.Direction()).To(Equal(car.Stop))
		Expect(r.button.Get()).To(BeFalse())
	})

	It("should advance from STOP to FORWARD on a button press", func() {
		r.press(d)
		Expect(r.motors.Direction()).To(Equal(car.Forward))
		Expect(r.retained("button", "on")).To(Equal("true"))

		// Holding does not advance again, releasing neither.
		d.Step()
		r.release(d)
		Expect(r.motors.Direction()).To(Equal(car.Forward))
		Expect(r.retained("button", "on")).To(Equal("false"))
	})

	It("should advance once per press", func() {
		for i := 0; i < 5; i++ {
			r.press(d)
			r.release(d)
		}
		Expect(r.motors.Direction()).To(Equal(car.Stop))
	})

	It("should drain external commands before sampling the button", func() {
		r.set("car", "direction", "right")
		btn, _ := r.pins.Pin(pinButton)
		btn.Drive(false)
		d.Step()
		Expect(r.motors.Direction()).To(Equal(car.Right))

		r.clk.Advance(25 * time.Millisecond)
		d.Step()
		Expect(r.motors.Direction()).To(Equal(car.Backward))
	})

	It("should fire the reset callback once per long hold", func() {
		r.press(d)
		r.clk.Advance(999 * time.Millisecond)
		d.Step()
		Expect(resets).To(BeZero())

		r.clk.Advance(time.Millisecond)
		d.Step()
		d.Step()
		Expect(resets).To(Equal(1))
		Expect(r.log.Lines).To(ContainElement("[car] button held, reset"))

		r.release(d)
		r.press(d)
		r.clk.Advance(time.Second)
		d.Step()
		Expect(resets).To(Equal(2))
	})

	It("should not fire the reset callback on a short press", func() {
		r.press(d)
		r.release(d)
		r.clk.Advance(time.Hour)
		d.Step()
		Expect(resets).To(BeZero())
	})

	It("should silence a timed tone", func() {
		r.buzzer.SetFor(440, 100*time.Millisecond)
		d.Step()
		Expect(r.buzzer.Get()).To(Equal(440))

		r.clk.Advance(100 * time.Millisecond)
		d.Step()
		Expect(r.buzzer.Get()).To(BeZero())
		Expect(r.retained("buzzer", "freq")).To(Equal("0"))
	})

	It("should stop running when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- d.Run(ctx, time.Millisecond) }()
		cancel()
		Eventually(done).Should(Receive(MatchError(context.Canceled)))
	})
})
