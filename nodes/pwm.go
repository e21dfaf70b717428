package nodes

import (
	"bolide-go/homie"
	"bolide-go/services/hal"
	"bolide-go/x/strconvx"
)

// PWMNode exposes a PWM output as a settable integer "pwm" property.
//
// The published value is always the clamped level the hardware received,
// which may differ from what an external actor asked for.
type PWMNode struct {
	ch       homie.Channel
	id       string
	out      *hal.PWM
	onChange func(level int)
}

// NewPWMNode advertises id/pwm with format 0:<max> and publishes the current
// level. onChange may be nil.
func NewPWMNode(ch homie.Channel, id string, out *hal.PWM, onChange func(level int)) *PWMNode {
	n := &PWMNode{ch: ch, id: id, out: out, onChange: onChange}
	ch.Advertise(homie.Node{ID: id, Type: TypePWM}, intProp(PropPWM, out.Max()), n.FromText)
	n.publish()
	return n
}

// FromText parses text leniently (unparsable text is 0) and applies the
// clamped level. It never rejects.
func (n *PWMNode) FromText(text string) bool {
	v := n.Set(strconvx.ToInt(text))
	if n.onChange != nil {
		n.onChange(v)
	}
	return true
}

// Set applies level, republishes and returns the clamped value.
func (n *PWMNode) Set(level int) int {
	v := n.out.Set(level)
	n.publish()
	return v
}

func (n *PWMNode) Get() int   { return n.out.Get() }
func (n *PWMNode) Max() int   { return n.out.Max() }
func (n *PWMNode) ID() string { return n.id }

func (n *PWMNode) publish() {
	n.ch.Publish(n.id, PropPWM, strconvx.Itoa(n.out.Get()))
}
