package car_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bolide-go/car"
)

var _ = Describe("Direction", func() {
	It("should cycle through all five states back to STOP", func() {
		d := car.Stop
		seen := []car.Direction{d}
		for i := 0; i < 5; i++ {
			d = d.Next()
			seen = append(seen, d)
		}
		Expect(seen).To(Equal([]car.Direction{
			car.Stop, car.Forward, car.Left, car.Right, car.Backward, car.Stop,
		}))
	})

	It("should return to the same state after five advances from anywhere", func() {
		for _, d := range []car.Direction{car.Stop, car.Forward, car.Left, car.Right, car.Backward} {
			n := d
			for i := 0; i < 5; i++ {
				n = n.Next()
			}
			Expect(n).To(Equal(d))
		}
	})

	DescribeTable("names",
		func(d car.Direction, name, label string) {
			Expect(d.Name()).To(Equal(name))
			Expect(d.String()).To(Equal(label))
			parsed, ok := car.ParseDirection(name)
			Expect(ok).To(BeTrue())
			Expect(parsed).To(Equal(d))
		},
		Entry("stop", car.Stop, "stop", "STOP"),
		Entry("forward", car.Forward, "forward", "FORWARD"),
		Entry("left", car.Left, "left", "LEFT"),
		Entry("right", car.Right, "right", "RIGHT"),
		Entry("backward", car.Backward, "backward", "BACKWARD"),
	)

	It("should parse case-sensitively", func() {
		for _, s := range []string{"STOP", "Forward", "", "sideways", " left"} {
			_, ok := car.ParseDirection(s)
			Expect(ok).To(BeFalse(), s)
		}
	})

	It("should label out-of-range values", func() {
		Expect(car.Direction(9).Valid()).To(BeFalse())
		Expect(car.Direction(9).String()).To(Equal("<INVALID DIRECTION>"))
	})
})
