package nodes

import (
	"bolide-go/homie"
	"bolide-go/services/hal"
	"bolide-go/x/strconvx"
)

// InNode exposes a debounced input as a read-only boolean "on" property.
type InNode struct {
	ch       homie.Channel
	id       string
	in       *hal.Sensor
	onChange func(on bool)
}

// NewInNode advertises id/on read-only and publishes the current logical
// level. onChange may be nil.
func NewInNode(ch homie.Channel, id string, in *hal.Sensor, onChange func(on bool)) *InNode {
	n := &InNode{ch: ch, id: id, in: in, onChange: onChange}
	ch.Advertise(homie.Node{ID: id, Type: TypeInput}, boolProp(false), nil)
	n.publish()
	return n
}

// Update samples the sensor once. On an edge it publishes the new level and
// calls onChange, then reports true. Call it from the polling loop only.
func (n *InNode) Update() bool {
	if !n.in.Update() {
		return false
	}
	n.publish()
	if n.onChange != nil {
		n.onChange(n.in.Get())
	}
	return true
}

func (n *InNode) Get() bool  { return n.in.Get() }
func (n *InNode) ID() string { return n.id }

func (n *InNode) publish() {
	n.ch.Publish(n.id, PropOn, strconvx.FormatBool(n.in.Get()))
}
