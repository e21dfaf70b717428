// bus.go
package bus

import (
	"slices"
	"strings"
	"sync"
)

// -----------------------------------------------------------------------------
// Topics
// -----------------------------------------------------------------------------

// Wildcards, MQTT style. "+" matches exactly one level, "#" matches the
// remainder of the topic (including zero levels) and must be last.
const (
	SingleLevel = "+"
	MultiLevel  = "#"
)

// Topic is a sequence of levels.
type Topic []string

// T builds a topic from its levels.
func T(levels ...string) Topic { return Topic(levels) }

// Parse splits a slash-separated topic string.
func Parse(s string) Topic {
	if s == "" {
		return Topic{}
	}
	return Topic(strings.Split(s, "/"))
}

func (t Topic) Len() int        { return len(t) }
func (t Topic) At(i int) string { return t[i] }

// Append returns a new topic; t is never aliased.
func (t Topic) Append(levels ...string) Topic {
	out := make(Topic, 0, len(t)+len(levels))
	out = append(out, t...)
	return append(out, levels...)
}

func (t Topic) String() string { return strings.Join(t, "/") }

// Match reports whether topic satisfies filter.
func Match(filter, topic Topic) bool {
	for i, f := range filter {
		if f == MultiLevel {
			return true
		}
		if i >= len(topic) {
			return false
		}
		if f != SingleLevel && f != topic[i] {
			return false
		}
	}
	return len(filter) == len(topic)
}

// -----------------------------------------------------------------------------
// Message
// -----------------------------------------------------------------------------

type Message struct {
	Topic    Topic
	Payload  any
	Retained bool
}

// -----------------------------------------------------------------------------
// Subscription
// -----------------------------------------------------------------------------

type Subscription struct {
	topic Topic
	ch    chan *Message
	conn  *Connection // owning connection
}

func (s *Subscription) Topic() Topic             { return s.topic }
func (s *Subscription) Channel() <-chan *Message { return s.ch }
func (s *Subscription) Unsubscribe()             { s.conn.Unsubscribe(s) }

// TryRecv returns the next queued message without blocking.
func (s *Subscription) TryRecv() (*Message, bool) {
	select {
	case m, ok := <-s.ch:
		return m, ok
	default:
		return nil, false
	}
}

// -----------------------------------------------------------------------------
// Trie node
// -----------------------------------------------------------------------------

type node struct {
	children map[string]*node
	subs     []*Subscription
	retained *Message
}

func (n *node) empty() bool {
	return len(n.subs) == 0 && len(n.children) == 0 && n.retained == nil
}

// -----------------------------------------------------------------------------
// Bus
// -----------------------------------------------------------------------------

type Bus struct {
	mu   sync.Mutex
	root *node
	qLen int
}

// NewBus creates a new bus with the given subscription queue length.
func NewBus(queueLen int) *Bus {
	if queueLen <= 0 {
		queueLen = 8 // safe default
	}
	return &Bus{
		root: &node{},
		qLen: queueLen,
	}
}

// NewMessage is a convenience constructor.
func (b *Bus) NewMessage(topic Topic, payload any, retained bool) *Message {
	return &Message{Topic: topic, Payload: payload, Retained: retained}
}

// walk returns the node for topic, creating it when create is set.
// Caller holds b.mu.
func (b *Bus) walk(topic Topic, create bool) *node {
	n := b.root
	for _, tok := range topic {
		child, ok := n.children[tok]
		if !ok {
			if !create {
				return nil
			}
			if n.children == nil {
				n.children = make(map[string]*node)
			}
			child = &node{}
			n.children[tok] = child
		}
		n = child
	}
	return n
}

// addSubscription inserts a subscription into the trie and hands every
// retained message its filter matches to replay, under the same lock, so no
// publication falls between the retained set and the live stream.
func (b *Bus) addSubscription(sub *Subscription, replay func(*Message)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.walk(sub.topic, true)
	n.subs = append(n.subs, sub)

	b.collectRetained(b.root, sub.topic, replay)
}

// collectRetained visits retained messages below n matching filter.
func (b *Bus) collectRetained(n *node, filter Topic, fn func(*Message)) {
	if len(filter) == 0 {
		if n.retained != nil {
			fn(n.retained)
		}
		return
	}
	switch filter[0] {
	case MultiLevel:
		var all func(*node)
		all = func(x *node) {
			if x.retained != nil {
				fn(x.retained)
			}
			for _, c := range x.children {
				all(c)
			}
		}
		all(n)
	case SingleLevel:
		for _, c := range n.children {
			b.collectRetained(c, filter[1:], fn)
		}
	default:
		if c, ok := n.children[filter[0]]; ok {
			b.collectRetained(c, filter[1:], fn)
		}
	}
}

// matchSubs visits subscriptions whose filter matches topic.
func (b *Bus) matchSubs(n *node, topic Topic, fn func(*Subscription)) {
	if c, ok := n.children[MultiLevel]; ok {
		for _, s := range c.subs {
			fn(s)
		}
	}
	if len(topic) == 0 {
		for _, s := range n.subs {
			fn(s)
		}
		return
	}
	if c, ok := n.children[SingleLevel]; ok {
		b.matchSubs(c, topic[1:], fn)
	}
	if topic[0] == SingleLevel || topic[0] == MultiLevel {
		return
	}
	if c, ok := n.children[topic[0]]; ok {
		b.matchSubs(c, topic[1:], fn)
	}
}

// deliver never blocks; under pressure the oldest queued message is dropped.
func deliver(sub *Subscription, msg *Message) {
	select {
	case sub.ch <- msg:
		return
	default:
	}
	select {
	case <-sub.ch:
	default:
	}
	select {
	case sub.ch <- msg:
	default:
	}
}

// Publish delivers a message to all subscribers whose filter matches its topic.
// A retained message with a nil payload clears the retained slot.
func (b *Bus) Publish(msg *Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.matchSubs(b.root, msg.Topic, func(s *Subscription) { deliver(s, msg) })

	if !msg.Retained {
		return
	}
	if msg.Payload == nil {
		if n := b.walk(msg.Topic, false); n != nil {
			n.retained = nil
			b.prune(msg.Topic)
		}
		return
	}
	b.walk(msg.Topic, true).retained = msg
}

// Retained returns the retained message stored at topic, if any.
func (b *Bus) Retained(topic Topic) (*Message, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := b.walk(topic, false)
	if n == nil || n.retained == nil {
		return nil, false
	}
	return n.retained, true
}

// prune removes empty nodes along topic. Caller holds b.mu.
func (b *Bus) prune(topic Topic) {
	stack := make([]*node, 0, len(topic)+1)
	n := b.root
	for _, t := range topic {
		stack = append(stack, n)
		child, ok := n.children[t]
		if !ok {
			return
		}
		n = child
	}
	for i := len(topic) - 1; i >= 0; i-- {
		parent := stack[i]
		child := parent.children[topic[i]]
		if !child.empty() {
			break
		}
		delete(parent.children, topic[i])
	}
}

// unsubscribe removes a subscription from the trie.
func (b *Bus) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.walk(sub.topic, false)
	if n == nil {
		return
	}
	for i, s := range n.subs {
		if s == sub {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			break
		}
	}
	b.prune(sub.topic)
}

// -----------------------------------------------------------------------------
// Connection
// -----------------------------------------------------------------------------

type Connection struct {
	bus  *Bus
	subs []*Subscription
	mu   sync.Mutex
	id   string
}

// NewConnection creates a new connection bound to this bus.
func (b *Bus) NewConnection(id string) *Connection {
	return &Connection{
		bus: b,
		id:  id,
	}
}

func (c *Connection) ID() string { return c.id }
func (c *Connection) Bus() *Bus  { return c.bus }

// NewMessage is a convenience constructor.
func (c *Connection) NewMessage(topic Topic, payload any, retained bool) *Message {
	return c.bus.NewMessage(topic, payload, retained)
}

// Publish sends a message via the bus.
func (c *Connection) Publish(msg *Message) {
	c.bus.Publish(msg)
}

// Subscribe registers a subscription owned by this connection. Matching
// retained messages are queued first, so a filter matching more retained
// topics than the queue holds only sees the last of them.
func (c *Connection) Subscribe(topic Topic) *Subscription {
	sub := c.newSubscription(topic)
	c.bus.addSubscription(sub, func(m *Message) { deliver(sub, m) })
	return sub
}

// SubscribeSnapshot is Subscribe for callers that must see every retained
// message: they are returned sorted by topic instead of being queued, and
// the subscription carries only what is published afterwards.
func (c *Connection) SubscribeSnapshot(topic Topic) (*Subscription, []*Message) {
	sub := c.newSubscription(topic)
	var snap []*Message
	c.bus.addSubscription(sub, func(m *Message) { snap = append(snap, m) })
	slices.SortFunc(snap, func(a, b *Message) int {
		return strings.Compare(a.Topic.String(), b.Topic.String())
	})
	return sub, snap
}

func (c *Connection) newSubscription(topic Topic) *Subscription {
	sub := &Subscription{
		topic: topic,
		ch:    make(chan *Message, c.bus.qLen),
		conn:  c,
	}
	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()
	return sub
}

// Unsubscribe removes a subscription owned by this connection.
func (c *Connection) Unsubscribe(sub *Subscription) {
	c.mu.Lock()
	found := false
	for i, s := range c.subs {
		if s == sub {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			found = true
			break
		}
	}
	c.mu.Unlock()
	if !found {
		return
	}
	c.bus.unsubscribe(sub)
	close(sub.ch)
}

// Disconnect closes all subscriptions and clears them.
func (c *Connection) Disconnect() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	for _, sub := range subs {
		c.bus.unsubscribe(sub)
		close(sub.ch)
	}
}
