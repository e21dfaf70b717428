package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: board name (same value placed in ctx under CtxBoardKey)
// Val: raw JSON bytes for that board
// -----------------------------------------------------------------------------

const cfgPico = `{
  "device_id": "bolide",
  "pins": {
    "motor_pwm": 0,
    "motor_left": 4,
    "motor_right": 5,
    "button": 14,
    "led": 12,
    "buzzer": 13
  },
  "pwm_top": 1023,
  "default_speed": 511,
  "debounce_ms": 25,
  "reset_hold_ms": 10000,
  "heartbeat": {
    "interval_s": 60
  },
  "bridge": {
    "transport": {
      "type": "uart",
      "uart": { "id": "uart1", "baud": 115200, "tx_pin": 8, "rx_pin": 9 }
    }
  }
}`

// Host boards keep the same wiring with a faster heartbeat for the
// simulator console.
const cfgHost = `{
  "device_id": "bolide-sim",
  "pins": {
    "motor_pwm": 0,
    "motor_left": 4,
    "motor_right": 5,
    "button": 14,
    "led": 12,
    "buzzer": 13
  },
  "pwm_top": 1023,
  "default_speed": 511,
  "debounce_ms": 25,
  "reset_hold_ms": 10000,
  "heartbeat": {
    "interval_s": 5
  }
}`

var embeddedConfigs = map[string][]byte{
	"pico": []byte(cfgPico),
	"host": []byte(cfgHost),
}
