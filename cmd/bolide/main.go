package main

import (
	"context"
	"time"

	"bolide-go/bus"
	"bolide-go/car"
	"bolide-go/services/bridge"
	"bolide-go/services/config"
	"bolide-go/services/hal"
	"bolide-go/services/heartbeat"
	"bolide-go/types"
	"bolide-go/x/logx"
)

var firmware = types.Firmware{Name: "bolide", Version: "1.0.0"}

// busQueue holds the burst one direction change publishes (direction, pwm,
// left, right) several times over while the bridge writes upstream.
const busQueue = 32

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	log := logx.Logger(logx.Println).With("main")
	log("boot")

	cfg, err := config.Load(config.DefaultBoard)
	if err != nil {
		log("config: " + err.Error() + " (using defaults)")
	}

	ctx := context.WithValue(context.Background(), config.CtxBoardKey, config.DefaultBoard)
	b := bus.NewBus(busQueue)

	config.NewConfigService(logx.Println).Start(ctx, b.NewConnection("config"))
	go bridge.Start(ctx, b.NewConnection("bridge"))
	hb := &heartbeat.Service{Device: cfg.DeviceID, Log: logx.Println}
	_ = hb.Start(ctx, b.NewConnection("heartbeat"))

	fw, err := car.Build(car.Options{
		Config:   cfg,
		Pins:     hal.DefaultPins(),
		Conn:     b.NewConnection("car"),
		Firmware: firmware,
		Log:      logx.Println,
		OnReset:  hal.Reset,
	})
	if err != nil {
		for {
			log("setup failed: " + err.Error())
			time.Sleep(5 * time.Second)
		}
	}

	log("ready")
	_ = fw.Dispatcher.Run(ctx, time.Millisecond)
}
