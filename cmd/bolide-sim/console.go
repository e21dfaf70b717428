package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"bolide-go/bus"
	"bolide-go/homie"
)

const consoleHelp = `commands:
  press | release        hold or let go of the mode button
  click                  press, then release after 100ms
  set <node> <prop> <v>  send a Homie set, e.g. set car direction left
  status                 print direction and pin levels
  watch                  toggle printing of published values
  quit
`

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Drive the simulated car from an interactive prompt.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		out := cmd.OutOrStdout()
		s, err := newSim(ctx, out)
		if err != nil {
			return err
		}
		go func() { _ = s.run(ctx, opts.tick) }()

		var watching atomic.Bool
		watch := s.bus.NewConnection("watch").Subscribe(
			bus.T(homie.Root, s.cfg.DeviceID, bus.SingleLevel, bus.SingleLevel))
		go func() {
			for m := range watch.Channel() {
				if watching.Load() {
					fmt.Fprintf(out, "%s = %v\n", m.Topic, m.Payload)
				}
			}
		}()

		fmt.Fprintf(out, "bolide-sim: device %s on board %s\n", s.cfg.DeviceID, opts.board)
		return console(ctx, s, cmd.InOrStdin(), out, &watching)
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}

func console(ctx context.Context, s *sim, in io.Reader, out io.Writer, watching *atomic.Bool) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			return sc.Err()
		}
		f, err := shlex.Split(strings.TrimSpace(sc.Text()))
		if err != nil {
			fmt.Fprintln(out, "parse:", err)
			continue
		}
		if len(f) == 0 {
			continue
		}
		switch f[0] {
		case "press":
			s.do(ctx, func() { s.button(true) })
		case "release":
			s.do(ctx, func() { s.button(false) })
		case "click":
			s.do(ctx, func() { s.button(true) })
			time.AfterFunc(100*time.Millisecond, func() {
				s.do(ctx, func() { s.button(false) })
			})
		case "set":
			if len(f) != 4 {
				fmt.Fprintln(out, "usage: set <node> <prop> <value>")
				continue
			}
			s.set(f[1], f[2], f[3])
		case "status":
			s.do(ctx, func() { s.status(out) })
		case "watch":
			on := !watching.Load()
			watching.Store(on)
			fmt.Fprintln(out, "watch:", on)
		case "help", "?":
			fmt.Fprint(out, consoleHelp)
		case "quit", "exit":
			return nil
		default:
			fmt.Fprintf(out, "unknown command %q (try help)\n", f[0])
		}
	}
}
