package types

// ---- Homie device lifecycle (retained on $state) ----

type DeviceState string

const (
	StateInit         DeviceState = "init"
	StateReady        DeviceState = "ready"
	StateDisconnected DeviceState = "disconnected"
	StateAlert        DeviceState = "alert"
)

// ---- Property datatypes ----

type Datatype string

const (
	DatatypeBoolean Datatype = "boolean"
	DatatypeInteger Datatype = "integer"
	DatatypeEnum    Datatype = "enum"
	DatatypeString  Datatype = "string"
)

// PropertyInfo is what a node advertises for one property.
type PropertyInfo struct {
	Name     string   `json:"name"`
	Datatype Datatype `json:"datatype"`
	Settable bool     `json:"settable"`
	Format   string   `json:"format,omitempty"` // "0:1023" or "a,b,c"
	Unit     string   `json:"unit,omitempty"`
}

// NodeInfo is the advertisement for one node.
type NodeInfo struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Properties []PropertyInfo `json:"properties"`
}

// Firmware identifies the image ($fw/name, $fw/version).
type Firmware struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Stats is the periodic $stats payload.
type Stats struct {
	UptimeS  int64 `json:"uptime_s"`
	Interval int   `json:"interval_s"`
}
