// Package nodes binds hal actuators and sensors to homie properties.
//
// Every node publishes its initial value when constructed. Actuator nodes
// accept external text through the channel, apply the parsed value and echo
// what was actually applied; Set is the programmatic path and skips both
// parsing and the onChange callback.
package nodes

import (
	"bolide-go/types"
	"bolide-go/x/logx"
	"bolide-go/x/strconvx"
)

// Node types advertised on $type.
const (
	TypeOutput = "output"
	TypeInput  = "input"
	TypePWM    = "pwm"
	TypeFreq   = "freq"
)

// Property names.
const (
	PropOn   = "on"
	PropPWM  = "pwm"
	PropFreq = "freq"
)

func boolProp(settable bool) types.PropertyInfo {
	return types.PropertyInfo{Name: PropOn, Datatype: types.DatatypeBoolean, Settable: settable}
}

func intProp(name string, max int) types.PropertyInfo {
	return types.PropertyInfo{
		Name:     name,
		Datatype: types.DatatypeInteger,
		Settable: true,
		Format:   "0:" + strconvx.Itoa(max),
	}
}

func badValue(log logx.Logger, id, text string) {
	log(id + ": Bad value: " + text)
}

func orDefault(log logx.Logger) logx.Logger {
	if log == nil {
		return logx.Println
	}
	return log
}
