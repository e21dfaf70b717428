package nodes

import (
	"bolide-go/homie"
	"bolide-go/services/hal"
	"bolide-go/x/logx"
	"bolide-go/x/strconvx"
)

// OutNode exposes a binary output as a settable boolean "on" property.
type OutNode struct {
	ch       homie.Channel
	id       string
	out      *hal.Digital
	onChange func(on bool)
	log      logx.Logger
}

// NewOutNode advertises id/on and publishes the output's current level.
// onChange may be nil.
func NewOutNode(ch homie.Channel, id string, out *hal.Digital, onChange func(on bool), log logx.Logger) *OutNode {
	n := &OutNode{ch: ch, id: id, out: out, onChange: onChange, log: orDefault(log)}
	ch.Advertise(homie.Node{ID: id, Type: TypeOutput}, boolProp(true), n.FromText)
	n.publish()
	return n
}

// FromText accepts exactly "true" or "false". Anything else is logged and
// rejected without touching the output.
func (n *OutNode) FromText(text string) bool {
	on, ok := strconvx.ParseBool(text)
	if !ok {
		badValue(n.log, n.id, text)
		return false
	}
	n.Set(on)
	if n.onChange != nil {
		n.onChange(on)
	}
	return true
}

// Set drives the output and republishes it.
func (n *OutNode) Set(on bool) {
	n.out.Set(on)
	n.publish()
}

func (n *OutNode) Get() bool  { return n.out.Get() }
func (n *OutNode) ID() string { return n.id }

func (n *OutNode) publish() {
	n.ch.Publish(n.id, PropOn, strconvx.FormatBool(n.out.Get()))
}
