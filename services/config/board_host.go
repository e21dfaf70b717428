//go:build !(rp2040 || rp2350)

package config

// DefaultBoard is the embedded config used by this build.
const DefaultBoard = "host"
