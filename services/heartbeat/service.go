package heartbeat

import (
	"context"
	"time"

	"bolide-go/bus"
	"bolide-go/homie"
	"bolide-go/x/logx"
	"bolide-go/x/strconvx"
	"bolide-go/x/timex"
)

var topicConfigHeartbeat = bus.T("config", "heartbeat")

const defaultInterval = 60 * time.Second

// Service publishes the Homie $stats attributes of one device.
type Service struct {
	Device string
	Clock  timex.Clock
	Log    logx.Logger

	start time.Time
}

func (s *Service) statsTopic(attr string) bus.Topic {
	return bus.T(homie.Root, s.Device, "$stats", attr)
}

func (s *Service) publish(conn *bus.Connection, interval time.Duration) {
	up := int64(s.Clock().Sub(s.start) / time.Second)
	conn.Publish(conn.NewMessage(s.statsTopic("uptime"), strconvx.FormatInt(up, 10), true))
	conn.Publish(conn.NewMessage(s.statsTopic("interval"), strconvx.Itoa(int(interval/time.Second)), true))
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigHeartbeat)
	defer conn.Unsubscribe(cfgSub)

	interval := defaultInterval
	tick := time.NewTicker(interval)
	defer tick.Stop()
	s.publish(conn, interval)

	// loop until context is cancelled, respond to tick and config changes
	for {
		select {
		case <-ctx.Done():
			s.Log("heartbeat service stopping")
			return
		case <-tick.C:
			s.publish(conn, interval)
		case msg := <-cfgSub.Channel():
			// Change tick interval if needed
			if m, ok := msg.Payload.(map[string]any); ok {
				if iv, ok := m["interval_s"].(float64); ok && iv >= 1 {
					interval = time.Duration(iv) * time.Second
					tick.Reset(interval)
					s.publish(conn, interval)
					s.Log("interval set to " + strconvx.Itoa(int(iv)) + "s")
				}
			}
		}
	}
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	if s.Clock == nil {
		s.Clock = timex.System
	}
	s.Log = s.Log.With("heartbeat")
	s.start = s.Clock()
	go s.serviceLoop(ctx, conn)
	return nil
}
