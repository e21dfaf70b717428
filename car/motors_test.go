package car_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bolide-go/car"
	"bolide-go/homie"
	"bolide-go/types"
)

var _ = Describe("Motors", func() {
	var r *rig

	BeforeEach(func() {
		r = newRig()
	})

	It("should boot stopped and publish stop", func() {
		Expect(r.motors.Direction()).To(Equal(car.Stop))
		Expect(r.motors.Speed()).To(Equal(car.DefaultSpeed))
		Expect(r.retained(car.NodeID, car.PropDirection)).To(Equal("stop"))

		level, left, right := r.hw()
		Expect(level).To(BeZero())
		Expect(left).To(BeFalse())
		Expect(right).To(BeFalse())
	})

	It("should advertise direction as a settable enum", func() {
		m, ok := r.bus.Retained(homie.PropertyTopic("bolide", "car", "direction").Append("$format"))
		Expect(ok).To(BeTrue())
		Expect(m.Payload).To(Equal("stop,forward,left,right,backward"))

		m, ok = r.bus.Retained(homie.PropertyTopic("bolide", "car", "direction").Append("$datatype"))
		Expect(ok).To(BeTrue())
		Expect(m.Payload).To(Equal(string(types.DatatypeEnum)))
	})

	DescribeTable("command triples",
		func(d car.Direction, level int, left, right bool) {
			r.motors.SetDirection(d)
			Expect(r.speed.Get()).To(Equal(level))
			Expect(r.left.Get()).To(Equal(left))
			Expect(r.right.Get()).To(Equal(right))
			Expect(r.motors.Direction()).To(Equal(d))
			Expect(r.retained(car.NodeID, car.PropDirection)).To(Equal(d.Name()))
		},
		Entry("STOP", car.Stop, 0, false, false),
		Entry("FORWARD", car.Forward, car.DefaultSpeed, true, true),
		Entry("LEFT", car.Left, car.DefaultSpeed, false, true),
		Entry("RIGHT", car.Right, car.DefaultSpeed, true, false),
		Entry("BACKWARD", car.Backward, car.DefaultSpeed, false, false),
	)

	It("should move left after boot when told so over the channel", func() {
		r.set("car", "direction", "left")
		Expect(r.ch.Poll()).To(Equal(1))

		Expect(r.motors.Direction()).To(Equal(car.Left))
		level, left, right := r.hw()
		Expect(level).To(BeEquivalentTo(511))
		Expect(left).To(BeFalse())
		Expect(right).To(BeTrue())
		Expect(r.retained("speed", "pwm")).To(Equal("511"))
		Expect(r.retained("left", "on")).To(Equal("false"))
		Expect(r.retained("right", "on")).To(Equal("true"))
		Expect(r.retained("car", "direction")).To(Equal("left"))
	})

	It("should keep the remembered speed through STOP", func() {
		r.motors.Remember(800)
		r.motors.SetDirection(car.Forward)
		Expect(r.speed.Get()).To(Equal(800))

		r.motors.SetDirection(car.Stop)
		Expect(r.speed.Get()).To(BeZero())
		Expect(r.motors.Speed()).To(Equal(800))

		r.motors.SetDirection(car.Backward)
		Expect(r.speed.Get()).To(Equal(800))
	})

	It("should clamp a remembered speed to the PWM range", func() {
		r.motors.Remember(5000)
		Expect(r.motors.Speed()).To(Equal(r.speed.Max()))
		r.motors.Remember(0)
		r.motors.Remember(-4)
		Expect(r.motors.Speed()).To(Equal(r.speed.Max()))
	})

	It("should accept and ignore unknown directions", func() {
		r.motors.SetDirection(car.Right)
		r.log.Lines = nil

		r.set("car", "direction", "sideways")
		r.set("car", "direction", "LEFT")
		Expect(r.ch.Poll()).To(Equal(2))

		Expect(r.motors.Direction()).To(Equal(car.Right))
		Expect(r.retained("car", "direction")).To(Equal("right"))
		Expect(r.log.Lines).To(Equal([]string{
			"car: Bad value: sideways",
			"car: Bad value: LEFT",
		}))
	})

	It("should log each transition in upper case", func() {
		r.motors.Advance()
		r.motors.Advance()
		Expect(r.log.Lines).To(Equal([]string{"FORWARD", "LEFT"}))
	})

	It("should ignore out-of-range directions", func() {
		r.motors.SetDirection(car.Forward)
		r.motors.SetDirection(car.Direction(42))
		Expect(r.motors.Direction()).To(Equal(car.Forward))
	})
})
