package homie

import "bolide-go/bus"

const (
	Root      = "homie"
	Version   = "3.0.1"
	SetSuffix = "set"
)

func deviceBase(device string) bus.Topic { return bus.T(Root, device) }

func deviceAttr(device, attr string) bus.Topic {
	return deviceBase(device).Append("$" + attr)
}

func nodeAttr(device, node, attr string) bus.Topic {
	return deviceBase(device).Append(node, "$"+attr)
}

// PropertyTopic is homie/<device>/<node>/<property>.
func PropertyTopic(device, node, prop string) bus.Topic {
	return deviceBase(device).Append(node, prop)
}

func propAttr(device, node, prop, attr string) bus.Topic {
	return PropertyTopic(device, node, prop).Append("$" + attr)
}

// SetTopic is homie/<device>/<node>/<property>/set.
func SetTopic(device, node, prop string) bus.Topic {
	return PropertyTopic(device, node, prop).Append(SetSuffix)
}

// homie/<device>/+/+/set
func setWildcard(device string) bus.Topic {
	return deviceBase(device).Append(bus.SingleLevel, bus.SingleLevel, SetSuffix)
}
