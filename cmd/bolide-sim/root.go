package main

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"bolide-go/services/config"
)

var opts struct {
	board   string
	device  string
	envFile string
	tick    time.Duration
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bolide-sim",
	Short: "Run the bolide car firmware on the host.",
	Long: `bolide-sim runs the car firmware against in-memory pins. ` +
		`The console command drives the button and prints pin levels; ` +
		`the link command speaks the serial bridge protocol on stdin/stdout.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnv(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&opts.board, "board", config.DefaultBoard, "embedded board config (env BOLIDE_BOARD)")
	f.StringVar(&opts.device, "device", "", "override the Homie device id (env BOLIDE_DEVICE_ID)")
	f.StringVar(&opts.envFile, "env", ".env", "dotenv file read before flags are applied")
	f.DurationVar(&opts.tick, "tick", time.Millisecond, "main loop period")
}

// loadEnv reads the dotenv file, if any, and lets BOLIDE_* fill flags the
// user did not set.
func loadEnv(cmd *cobra.Command) error {
	if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	flags := cmd.Flags()
	if v := os.Getenv("BOLIDE_BOARD"); v != "" && !flags.Changed("board") {
		opts.board = v
	}
	if v := os.Getenv("BOLIDE_DEVICE_ID"); v != "" && !flags.Changed("device") {
		opts.device = v
	}
	return nil
}
