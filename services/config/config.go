package config

import (
	"context"
	"encoding/json"

	"bolide-go/bus"
	"bolide-go/errcode"
	"bolide-go/types"
	"bolide-go/x/logx"
)

// -----------------------------------------------------------------------------
// String constants (live in flash, not RAM)
// -----------------------------------------------------------------------------

const (
	serviceName  = "config"
	configPrefix = "config"
)

type ctxKey string

// CtxBoardKey is the context key holding the board name whose embedded
// config the service publishes.
const CtxBoardKey ctxKey = "board"

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(board string) ([]byte, bool) {
	b, ok := embeddedConfigs[board]
	return b, ok
}

// Defaults is the configuration every missing key falls back to.
func Defaults() types.BoardConfig {
	return types.BoardConfig{
		DeviceID: "bolide",
		Pins: types.Pins{
			MotorPWM:   0,
			MotorLeft:  4,
			MotorRight: 5,
			Button:     14,
			LED:        12,
			Buzzer:     13,
		},
		PWMTop:       1023,
		DefaultSpeed: 511,
		DebounceMs:   25,
		ResetHoldMs:  10000,
		Heartbeat:    types.HeartbeatConfig{IntervalS: 60},
	}
}

// Load decodes the embedded config for board on top of Defaults.
func Load(board string) (types.BoardConfig, error) {
	cfg := Defaults()
	raw, ok := EmbeddedConfigLookup(board)
	if !ok || len(raw) == 0 {
		return cfg, &errcode.E{C: errcode.InvalidParams, Op: "config.Load", Msg: "no embedded config for board: " + board}
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Defaults(), errcode.Wrap(errcode.InvalidPayload, "config.Load", err)
	}
	return cfg, nil
}

// -----------------------------------------------------------------------------
// Config Service
// -----------------------------------------------------------------------------

type ConfigService struct {
	Name string
	log  logx.Logger
}

func NewConfigService(log logx.Logger) *ConfigService {
	return &ConfigService{Name: serviceName, log: log.With(serviceName)}
}

// Publish reads the board config from embedded data and publishes every
// top-level key retained on config/<key>.
func (s *ConfigService) Publish(ctx context.Context, conn *bus.Connection) error {
	board, _ := ctx.Value(CtxBoardKey).(string)
	if board == "" {
		return &errcode.E{C: errcode.InvalidParams, Op: "config.Publish", Msg: "missing board in context"}
	}

	raw, ok := EmbeddedConfigLookup(board)
	if !ok || len(raw) == 0 {
		return &errcode.E{C: errcode.InvalidParams, Op: "config.Publish", Msg: "no embedded config for board: " + board}
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return errcode.Wrap(errcode.InvalidPayload, "config.Publish", err)
	}

	for k, v := range m {
		conn.Publish(conn.NewMessage(bus.T(configPrefix, k), v, true))
	}
	return nil
}

// Start launches the config publisher in a goroutine.
func (s *ConfigService) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		if err := s.Publish(ctx, conn); err != nil {
			s.log(err.Error())
		}
	}()
}
