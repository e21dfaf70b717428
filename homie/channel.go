// Package homie is the property channel nodes publish to and receive external
// commands from. The layout follows the Homie convention:
//
//	homie/<device>/<node>/<property>        current value (retained)
//	homie/<device>/<node>/<property>/set    external command
//	homie/<device>/<node>/$name|$type|$properties
//	homie/<device>/<node>/<property>/$name|$datatype|$settable|$format
package homie

import "bolide-go/types"

// SetHandler receives the text an external actor set on a property. It
// returns false when the value was rejected; the channel acknowledges the
// transport either way.
type SetHandler func(value string) bool

// Node identifies a node when advertising its properties.
type Node struct {
	ID   string
	Name string
	Type string
}

// Channel is the publish/subscribe primitive every node is built on.
type Channel interface {
	// Advertise registers prop under node. set is nil for read-only
	// properties.
	Advertise(node Node, prop types.PropertyInfo, set SetHandler)
	// Publish broadcasts the current textual value of a property.
	Publish(node, property, value string)
}
