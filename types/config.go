package types

// ---- Board configuration (embedded per build target) ----

// Pins binds each peripheral to a GPIO number.
type Pins struct {
	MotorPWM   int `json:"motor_pwm"`
	MotorLeft  int `json:"motor_left"`
	MotorRight int `json:"motor_right"`
	Button     int `json:"button"`
	LED        int `json:"led"`
	Buzzer     int `json:"buzzer"`
}

type HeartbeatConfig struct {
	IntervalS int `json:"interval_s"`
}

type BoardConfig struct {
	DeviceID     string          `json:"device_id"`
	Pins         Pins            `json:"pins"`
	PWMTop       int             `json:"pwm_top"`
	DefaultSpeed int             `json:"default_speed"`
	DebounceMs   int             `json:"debounce_ms"`
	ResetHoldMs  int             `json:"reset_hold_ms"`
	Heartbeat    HeartbeatConfig `json:"heartbeat"`
}
