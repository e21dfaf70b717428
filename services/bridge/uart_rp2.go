//go:build rp2040 || rp2350

package bridge

import (
	"context"
	"io"
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

func init() { UARTDial = dialUART }

func dialUART(ctx context.Context, c UARTConfig) (io.ReadWriteCloser, error) {
	hw := uartx.UART1
	if c.ID == "uart0" {
		hw = uartx.UART0
	}
	// Defaults inside uartx apply if zero.
	if err := hw.Configure(uartx.UARTConfig{
		BaudRate: c.Baud,
		TX:       machine.Pin(c.TxPin),
		RX:       machine.Pin(c.RxPin),
	}); err != nil {
		return nil, err
	}
	lctx, cancel := context.WithCancel(ctx)
	return &uartLink{u: hw, ctx: lctx, cancel: cancel}, nil
}

// uartLink adapts uartx to io.ReadWriteCloser. Close unblocks a pending Read.
type uartLink struct {
	u      *uartx.UART
	ctx    context.Context
	cancel context.CancelFunc
}

func (l *uartLink) Read(p []byte) (int, error) {
	for {
		n, err := l.u.RecvSomeContext(l.ctx, p)
		if n > 0 || err != nil {
			return n, err
		}
	}
}

func (l *uartLink) Write(p []byte) (int, error) { return l.u.Write(p) }

func (l *uartLink) Close() error {
	l.cancel()
	return nil
}
