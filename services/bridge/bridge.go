// Package bridge carries the car's Homie tree over a line-framed serial link.
// Every string value published under homie/ goes upstream as a pub line; set
// lines from the peer come back onto the bus, where the property channel
// picks them up on its next poll.
package bridge

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"bolide-go/bus"
	"bolide-go/errcode"
	"bolide-go/homie"
)

// Link states reported on bridge/state as {level, status}.
const (
	levelIdle     = "idle"
	levelUp       = "up"
	levelDegraded = "degraded"
	levelError    = "error"
)

const pingEvery = 5 * time.Second

// Config arrives retained on config/bridge.
type Config struct {
	Transport TransportConfig `json:"transport"`
}

var (
	configTopic = bus.T("config", "bridge")
	stateTopic  = bus.T("bridge", "state")
)

// Start runs the bridge until ctx is cancelled. Each config/bridge message
// replaces the running link.
func Start(ctx context.Context, conn *bus.Connection) {
	b := &bridge{conn: conn}
	b.run(ctx)
}

type bridge struct {
	conn *bus.Connection
	stop context.CancelFunc
}

func (b *bridge) run(ctx context.Context) {
	sub := b.conn.Subscribe(configTopic)
	defer b.conn.Unsubscribe(sub)
	defer b.cancelLink()

	b.state(levelIdle, "awaiting_config", nil)
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-sub.Channel():
			if !ok {
				b.state(levelError, "config_subscription_closed", nil)
				return
			}
			cfg, err := decodeConfig(m.Payload)
			if err != nil {
				b.state(levelError, "config_decode_failed", err)
				continue
			}
			b.cancelLink()
			lctx, cancel := context.WithCancel(ctx)
			b.stop = cancel
			go b.supervise(lctx, cfg.Transport)
		}
	}
}

func (b *bridge) cancelLink() {
	if b.stop != nil {
		b.stop()
		b.stop = nil
	}
}

// supervise keeps one link open, redialling with backoff while it fails.
// A link that ends cleanly stays down until the next config.
func (b *bridge) supervise(ctx context.Context, tc TransportConfig) {
	tr, err := newTransport(tc)
	if err != nil {
		b.state(levelError, "transport_init_failed", err)
		return
	}
	next := backoff(250*time.Millisecond, 5*time.Second)
	for ctx.Err() == nil {
		rwc, err := tr.Open(ctx)
		if err != nil {
			b.state(levelDegraded, "dial_failed_retrying", err)
			if !wait(ctx, next()) {
				return
			}
			continue
		}
		b.state(levelUp, "link_established", nil)
		err = b.serve(ctx, rwc)
		_ = rwc.Close()
		if err == nil {
			return
		}
		b.state(levelDegraded, "link_lost_retrying", err)
		if !wait(ctx, next()) {
			return
		}
	}
}

// serve replays the retained homie/# tree to the peer, then mirrors changes
// and handles its commands until the link drops or ctx ends.
func (b *bridge) serve(ctx context.Context, rwc io.ReadWriter) error {
	rd := newLineReader(rwc)
	wr := newLineWriter(rwc)

	mirror, retained := b.conn.SubscribeSnapshot(bus.T(homie.Root, bus.MultiLevel))
	defer b.conn.Unsubscribe(mirror)

	readErr := make(chan error, 1)
	go func() {
		for {
			f, err := rd.ReadFields()
			switch {
			case err == errBadLine:
				_ = wr.WriteFields(cmdErr, string(errcode.InvalidPayload))
			case err != nil:
				readErr <- err
				return
			default:
				b.command(wr, f)
			}
		}
	}()

	for _, m := range retained {
		if err := upstream(wr, m); err != nil {
			return err
		}
	}

	ping := time.NewTicker(pingEvery)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			_ = wr.WriteFields(cmdClose)
			return nil
		case err := <-readErr:
			return err
		case <-ping.C:
			if err := wr.WriteFields(cmdPing); err != nil {
				return err
			}
		case m, ok := <-mirror.Channel():
			if !ok {
				return nil
			}
			if err := upstream(wr, m); err != nil {
				return err
			}
		}
	}
}

// upstream writes a property or attribute value. Set commands and
// non-string payloads are not mirrored.
func upstream(wr *lineWriter, m *bus.Message) error {
	n := m.Topic.Len()
	if n == 0 || m.Topic.At(n-1) == homie.SetSuffix {
		return nil
	}
	v, ok := m.Payload.(string)
	if !ok {
		return nil
	}
	return wr.WriteFields(cmdPub, m.Topic.String(), v)
}

func (b *bridge) command(wr *lineWriter, f []string) {
	switch f[0] {
	case cmdPing:
		_ = wr.WriteFields(cmdPong)
	case cmdPong, cmdClose:
	case cmdSet:
		if len(f) != 3 {
			_ = wr.WriteFields(cmdErr, string(errcode.InvalidParams), f[0])
			return
		}
		t := bus.Parse(f[1])
		// homie/<device>/<node>/<prop>/set
		if t.Len() != 5 || t.At(0) != homie.Root || t.At(4) != homie.SetSuffix {
			_ = wr.WriteFields(cmdErr, string(errcode.InvalidTopic), f[1])
			return
		}
		b.conn.Publish(b.conn.NewMessage(t, f[2], false))
	default:
		_ = wr.WriteFields(cmdErr, string(errcode.InvalidParams), f[0])
	}
}

func (b *bridge) state(level, status string, err error) {
	p := map[string]any{
		"level":  level,
		"status": status,
		"ts_ms":  time.Now().UnixMilli(),
	}
	if err != nil {
		p["error"] = err.Error()
	}
	b.conn.Publish(b.conn.NewMessage(stateTopic, p, true))
}

// decodeConfig accepts raw JSON or an object already decoded by the config
// service.
func decodeConfig(p any) (Config, error) {
	var raw []byte
	switch v := p.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case map[string]any:
		var err error
		if raw, err = json.Marshal(v); err != nil {
			return Config{}, errcode.Wrap(errcode.InvalidPayload, "bridge.config", err)
		}
	default:
		return Config{}, errcode.InvalidPayload
	}
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, errcode.Wrap(errcode.InvalidPayload, "bridge.config", err)
	}
	return cfg, nil
}

// backoff doubles from lo up to hi.
func backoff(lo, hi time.Duration) func() time.Duration {
	cur := lo
	return func() time.Duration {
		d := cur
		if cur *= 2; cur > hi {
			cur = hi
		}
		return d
	}
}

func wait(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
