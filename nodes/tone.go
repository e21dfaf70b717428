package nodes

import (
	"time"

	"bolide-go/homie"
	"bolide-go/services/hal"
	"bolide-go/x/strconvx"
)

// ToneNode exposes a buzzer as a settable integer "freq" property in Hz.
type ToneNode struct {
	ch       homie.Channel
	id       string
	out      *hal.Tone
	onChange func(freq int)
}

// NewToneNode advertises id/freq with format 0:20000 and publishes the
// current frequency. onChange may be nil.
func NewToneNode(ch homie.Channel, id string, out *hal.Tone, onChange func(freq int)) *ToneNode {
	n := &ToneNode{ch: ch, id: id, out: out, onChange: onChange}
	ch.Advertise(homie.Node{ID: id, Type: TypeFreq}, intProp(PropFreq, hal.ToneMax), n.FromText)
	n.publish()
	return n
}

// FromText parses text leniently and emits the clamped frequency until
// changed. It never rejects.
func (n *ToneNode) FromText(text string) bool {
	v := n.Set(strconvx.ToInt(text))
	if n.onChange != nil {
		n.onChange(v)
	}
	return true
}

// Set emits freq until changed and returns the applied frequency.
func (n *ToneNode) Set(freq int) int { return n.SetFor(freq, 0) }

// SetFor emits freq for d; Expire silences it afterwards.
func (n *ToneNode) SetFor(freq int, d time.Duration) int {
	v := n.out.SetFor(freq, d)
	n.publish()
	return v
}

// Expire silences an elapsed timed tone and publishes 0. It reports whether
// anything changed.
func (n *ToneNode) Expire() bool {
	if !n.out.Expire() {
		return false
	}
	n.publish()
	return true
}

func (n *ToneNode) Get() int   { return n.out.Get() }
func (n *ToneNode) ID() string { return n.id }

func (n *ToneNode) publish() {
	n.ch.Publish(n.id, PropFreq, strconvx.Itoa(n.out.Get()))
}
