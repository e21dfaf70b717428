package bridge

import (
	"context"
	"io"
	"sync"

	"bolide-go/errcode"
)

// TransportConfig selects a transport by name. UART is only read by the
// "uart" transport.
type TransportConfig struct {
	Type string      `json:"type"`
	UART *UARTConfig `json:"uart,omitempty"`
}

// UARTConfig names the port and its pins.
type UARTConfig struct {
	ID    string `json:"id,omitempty"` // uart0 or uart1
	Baud  uint32 `json:"baud"`
	RxPin int    `json:"rx_pin"`
	TxPin int    `json:"tx_pin"`
}

// Transport opens the byte stream a link runs over.
type Transport interface {
	Open(ctx context.Context) (io.ReadWriteCloser, error)
	String() string
}

// TransportFactory builds a Transport from its config.
type TransportFactory func(TransportConfig) (Transport, error)

var (
	regMu      sync.RWMutex
	transports = map[string]TransportFactory{
		"uart": newUARTTransport,
	}
)

// RegisterTransport adds or replaces a named transport.
func RegisterTransport(name string, f TransportFactory) {
	regMu.Lock()
	transports[name] = f
	regMu.Unlock()
}

func newTransport(tc TransportConfig) (Transport, error) {
	regMu.RLock()
	f, ok := transports[tc.Type]
	regMu.RUnlock()
	if !ok {
		return nil, errcode.Wrap(errcode.InvalidParams, "bridge.transport", errcode.Code("unknown transport "+tc.Type))
	}
	return f(tc)
}

// StreamTransport hands out a stream that is already open, such as the
// simulator's stdin/stdout.
type StreamTransport struct {
	Name string
	RWC  io.ReadWriteCloser
}

func (t *StreamTransport) Open(context.Context) (io.ReadWriteCloser, error) { return t.RWC, nil }
func (t *StreamTransport) String() string                                   { return t.Name }

// UARTDial opens a UART. RP2 builds install it at init; elsewhere it stays
// nil unless a test injects one.
var UARTDial func(ctx context.Context, u UARTConfig) (io.ReadWriteCloser, error)

type uartTransport struct{ cfg UARTConfig }

func newUARTTransport(tc TransportConfig) (Transport, error) {
	if tc.UART == nil {
		return nil, errcode.Wrap(errcode.InvalidParams, "bridge.uart", errcode.Code("missing uart section"))
	}
	return &uartTransport{cfg: *tc.UART}, nil
}

func (u *uartTransport) Open(ctx context.Context) (io.ReadWriteCloser, error) {
	if UARTDial == nil {
		return nil, errcode.UnknownBus
	}
	return UARTDial(ctx, u.cfg)
}

func (u *uartTransport) String() string { return "uart" }
