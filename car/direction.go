package car

// Direction is the overall motion of the car.
type Direction uint8

const (
	Stop Direction = iota
	Forward
	Left
	Right
	Backward

	numDirections
)

var dirNames = [numDirections]string{"stop", "forward", "left", "right", "backward"}
var dirLabels = [numDirections]string{"STOP", "FORWARD", "LEFT", "RIGHT", "BACKWARD"}

// String returns the upper-case label used in logs.
func (d Direction) String() string {
	if !d.Valid() {
		return "<INVALID DIRECTION>"
	}
	return dirLabels[d]
}

// Name returns the lower-case value published on the direction property.
func (d Direction) Name() string {
	if !d.Valid() {
		return ""
	}
	return dirNames[d]
}

func (d Direction) Valid() bool { return d < numDirections }

// Next is the button cycle: STOP, FORWARD, LEFT, RIGHT, BACKWARD, STOP, ...
func (d Direction) Next() Direction { return (d + 1) % numDirections }

// ParseDirection matches a lower-case name exactly.
func ParseDirection(s string) (Direction, bool) {
	for i, n := range dirNames {
		if n == s {
			return Direction(i), true
		}
	}
	return Stop, false
}

// drive is the command triple applied for a direction. moving selects the
// remembered speed; otherwise the PWM is driven to 0.
type drive struct {
	moving      bool
	left, right bool
}

var drives = [numDirections]drive{
	Stop:     {moving: false, left: false, right: false},
	Forward:  {moving: true, left: true, right: true},
	Left:     {moving: true, left: false, right: true},
	Right:    {moving: true, left: true, right: false},
	Backward: {moving: true, left: false, right: false},
}

func directionFormat() string {
	s := dirNames[0]
	for _, n := range dirNames[1:] {
		s += "," + n
	}
	return s
}
