// Package car drives the two motors as a single direction and runs the
// polling loop that ties the mode button to it.
package car

import (
	"bolide-go/homie"
	"bolide-go/nodes"
	"bolide-go/types"
	"bolide-go/x/logx"
	"bolide-go/x/mathx"
)

const (
	NodeID        = "car"
	PropDirection = "direction"

	// DefaultSpeed is the remembered speed before anything moved the car.
	DefaultSpeed = 511
)

// Motors composes the speed PWM and the two polarity outputs into one
// direction. It owns the three nodes: nothing else should Set them while
// Motors is in use.
type Motors struct {
	ch    homie.Channel
	pwm   *nodes.PWMNode
	left  *nodes.OutNode
	right *nodes.OutNode
	log   logx.Logger

	speed int
	dir   Direction
}

// NewMotors advertises car/direction and publishes "stop". speed <= 0 selects
// DefaultSpeed.
func NewMotors(ch homie.Channel, pwm *nodes.PWMNode, left, right *nodes.OutNode, speed int, log logx.Logger) *Motors {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	if log == nil {
		log = logx.Println
	}
	m := &Motors{ch: ch, pwm: pwm, left: left, right: right, log: log, speed: speed, dir: Stop}
	ch.Advertise(homie.Node{ID: NodeID, Type: NodeID}, types.PropertyInfo{
		Name:     PropDirection,
		Datatype: types.DatatypeEnum,
		Settable: true,
		Format:   directionFormat(),
	}, m.fromText)
	ch.Publish(NodeID, PropDirection, Stop.Name())
	return m
}

// fromText never rejects: unknown names are logged and ignored.
func (m *Motors) fromText(text string) bool {
	d, ok := ParseDirection(text)
	if !ok {
		m.log(NodeID + ": Bad value: " + text)
		return true
	}
	m.SetDirection(d)
	return true
}

// SetDirection applies the command triple for d in PWM, left, right order.
// A nonzero PWM command becomes the remembered speed first, so STOP never
// clears it.
func (m *Motors) SetDirection(d Direction) {
	if !d.Valid() {
		return
	}
	m.log(d.String())
	m.dir = d
	dr := drives[d]
	level := 0
	if dr.moving {
		level = m.speed
	}
	m.apply(level, dr.left, dr.right)
	m.ch.Publish(NodeID, PropDirection, d.Name())
}

func (m *Motors) apply(level int, left, right bool) {
	if level != 0 {
		m.speed = level
	}
	m.pwm.Set(level)
	m.left.Set(left)
	m.right.Set(right)
}

// Advance moves to the next direction in the cycle.
func (m *Motors) Advance() { m.SetDirection(m.dir.Next()) }

// Remember records level as the speed for the next move without driving the
// motors. Zero and negative levels are ignored.
func (m *Motors) Remember(level int) {
	if level > 0 {
		m.speed = mathx.Min(level, m.pwm.Max())
	}
}

func (m *Motors) Direction() Direction { return m.dir }
func (m *Motors) Speed() int           { return m.speed }
