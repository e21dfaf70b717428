package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"bolide-go/bus"
	"bolide-go/services/bridge"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Expose the simulated car over the bridge line protocol on stdin/stdout.",
	Long: `link mirrors every Homie value as "pub <topic> <value>" lines on ` +
		`stdout and accepts "set <topic>/set <value>" lines on stdin. Logs go ` +
		`to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		s, err := newSim(ctx, os.Stderr)
		if err != nil {
			return err
		}

		rwc := stdio{cmd.InOrStdin(), cmd.OutOrStdout()}
		bridge.RegisterTransport("stdio", func(bridge.TransportConfig) (bridge.Transport, error) {
			return &bridge.StreamTransport{Name: "stdio", RWC: rwc}, nil
		})
		go bridge.Start(ctx, s.bus.NewConnection("bridge"))
		s.remote.Publish(s.remote.NewMessage(bus.T("config", "bridge"), map[string]any{
			"transport": map[string]any{"type": "stdio"},
		}, true))

		return s.run(ctx, opts.tick)
	},
}

func init() {
	rootCmd.AddCommand(linkCmd)
}

// stdio joins stdin and stdout into one stream for the bridge.
type stdio struct {
	io.Reader
	io.Writer
}

func (stdio) Close() error { return nil }
