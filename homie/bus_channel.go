package homie

import (
	"strings"

	"bolide-go/bus"
	"bolide-go/errcode"
	"bolide-go/types"
	"bolide-go/x/logx"
	"bolide-go/x/strconvx"
	"bolide-go/x/strx"
)

type propKey struct {
	node string
	prop string
}

type nodeEntry struct {
	Node
	props []string
}

// BusChannel implements Channel on top of the in-process bus. All values are
// published retained as plain strings. External commands queue on the set
// subscription until Poll dispatches them, so handlers only ever run on the
// goroutine that calls Poll.
type BusChannel struct {
	conn   *bus.Connection
	device string
	log    logx.Logger

	nodes    []*nodeEntry
	byID     map[string]*nodeEntry
	handlers map[propKey]SetHandler
	readOnly map[propKey]bool

	setSub *bus.Subscription
	state  types.DeviceState
}

// NewBusChannel announces the device (state init) and subscribes to its set
// topics.
func NewBusChannel(conn *bus.Connection, device string, fw types.Firmware, log logx.Logger) *BusChannel {
	c := &BusChannel{
		conn:     conn,
		device:   device,
		log:      log.With("homie"),
		byID:     map[string]*nodeEntry{},
		handlers: map[propKey]SetHandler{},
		readOnly: map[propKey]bool{},
	}
	c.retain(deviceAttr(device, "homie"), Version)
	c.retain(deviceAttr(device, "name"), device)
	c.retain(deviceAttr(device, "fw").Append("name"), fw.Name)
	c.retain(deviceAttr(device, "fw").Append("version"), fw.Version)
	c.SetState(types.StateInit)
	c.setSub = conn.Subscribe(setWildcard(device))
	return c
}

func (c *BusChannel) Device() string { return c.device }

func (c *BusChannel) State() types.DeviceState { return c.state }

func (c *BusChannel) retain(t bus.Topic, v string) {
	c.conn.Publish(c.conn.NewMessage(t, v, true))
}

// Advertise implements Channel.
func (c *BusChannel) Advertise(node Node, prop types.PropertyInfo, set SetHandler) {
	n, ok := c.byID[node.ID]
	if !ok {
		n = &nodeEntry{Node: node}
		c.byID[node.ID] = n
		c.nodes = append(c.nodes, n)
		c.retain(nodeAttr(c.device, node.ID, "name"), strx.Coalesce(node.Name, node.ID))
		c.retain(nodeAttr(c.device, node.ID, "type"), node.Type)
	}
	k := propKey{node: node.ID, prop: prop.Name}
	if _, dup := c.handlers[k]; !dup && !c.readOnly[k] {
		n.props = append(n.props, prop.Name)
	}
	if set != nil && prop.Settable {
		c.handlers[k] = set
		delete(c.readOnly, k)
	} else {
		c.readOnly[k] = true
		delete(c.handlers, k)
		prop.Settable = false
	}
	c.retain(nodeAttr(c.device, node.ID, "properties"), strings.Join(n.props, ","))
	c.retain(propAttr(c.device, node.ID, prop.Name, "name"), prop.Name)
	c.retain(propAttr(c.device, node.ID, prop.Name, "datatype"), string(prop.Datatype))
	c.retain(propAttr(c.device, node.ID, prop.Name, "settable"), strconvx.FormatBool(prop.Settable))
	if prop.Format != "" {
		c.retain(propAttr(c.device, node.ID, prop.Name, "format"), prop.Format)
	}
	if prop.Unit != "" {
		c.retain(propAttr(c.device, node.ID, prop.Name, "unit"), prop.Unit)
	}
}

// Publish implements Channel.
func (c *BusChannel) Publish(node, property, value string) {
	c.retain(PropertyTopic(c.device, node, property), value)
}

// Ready publishes the node list and moves the device to ready.
func (c *BusChannel) Ready() {
	ids := make([]string, len(c.nodes))
	for i, n := range c.nodes {
		ids[i] = n.ID
	}
	c.retain(deviceAttr(c.device, "nodes"), strings.Join(ids, ","))
	c.SetState(types.StateReady)
}

func (c *BusChannel) SetState(s types.DeviceState) {
	c.state = s
	c.retain(deviceAttr(c.device, "state"), string(s))
}

// Nodes returns the advertised nodes in registration order.
func (c *BusChannel) Nodes() []types.NodeInfo {
	out := make([]types.NodeInfo, 0, len(c.nodes))
	for _, n := range c.nodes {
		ni := types.NodeInfo{ID: n.ID, Name: n.Name, Type: n.Type}
		for _, p := range n.props {
			_, settable := c.handlers[propKey{node: n.ID, prop: p}]
			ni.Properties = append(ni.Properties, types.PropertyInfo{Name: p, Settable: settable})
		}
		out = append(out, ni)
	}
	return out
}

// Dispatch routes one external value to its handler. Routing failures are
// returned as codes; a handler rejecting the value is reported through
// accepted.
func (c *BusChannel) Dispatch(node, prop, value string) (accepted bool, err error) {
	k := propKey{node: node, prop: prop}
	h, ok := c.handlers[k]
	if !ok {
		if c.readOnly[k] {
			return false, errcode.ReadOnly
		}
		if _, known := c.byID[node]; !known {
			return false, errcode.UnknownNode
		}
		return false, errcode.UnknownProperty
	}
	return h(value), nil
}

// Poll dispatches every queued external command, in arrival order, and
// returns how many it consumed. It never blocks. Malformed or unroutable
// commands are logged and dropped; nothing is negatively acknowledged.
func (c *BusChannel) Poll() int {
	n := 0
	for {
		m, ok := c.setSub.TryRecv()
		if !ok {
			return n
		}
		n++
		c.handle(m)
	}
}

func (c *BusChannel) handle(m *bus.Message) {
	// homie/<device>/<node>/<prop>/set
	if m.Topic.Len() != 5 {
		c.log(m.Topic.String() + ": " + string(errcode.InvalidTopic))
		return
	}
	node, prop := m.Topic.At(2), m.Topic.At(3)
	var value string
	switch p := m.Payload.(type) {
	case string:
		value = p
	case []byte:
		value = string(p)
	default:
		c.log(m.Topic.String() + ": " + string(errcode.InvalidPayload))
		return
	}
	if _, err := c.Dispatch(node, prop, value); err != nil {
		c.log(m.Topic.String() + ": " + err.Error())
	}
}

// Close drops the set subscription.
func (c *BusChannel) Close() {
	c.conn.Unsubscribe(c.setSub)
}
