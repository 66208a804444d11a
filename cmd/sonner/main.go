// Command sonner serves a toast store to renderers and replays scripted
// toast sequences.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/sonner/internal/config"
	"github.com/vango-dev/sonner/internal/errors"
	"github.com/vango-dev/sonner/internal/logging"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔═╗┌─┐┌┐┌┌┐┌┌─┐┬─┐
  ╚═╗│ │││││││├┤ ├┬┘
  ╚═╝└─┘┘└┘┘└┘└─┘┴└─
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "sonner",
		Short: "Toast notification state for server-driven UIs",
		Long: `Sonner keeps the toast notifications of a server-driven UI.

It holds the active toasts and their rendered heights, tracks
long-running work as loading toasts, and streams every change to
connected renderers over WebSocket.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to sonner.json")
	rootCmd.PersistentFlags().StringVar(&errorFormat, "error-format", "",
		"error output: text, compact or json (default: text on a terminal, compact otherwise)")

	if !logging.IsTerminal(os.Stderr) {
		errors.SetColors(false)
	}

	rootCmd.AddCommand(
		serveCmd(),
		replayCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		errors.Write(os.Stderr, err, errorStyle(logging.IsTerminal(os.Stderr)))
		os.Exit(1)
	}
}

var (
	configPath  string
	errorFormat string
)

// errorStyle picks the error output style from --error-format, or from
// whether stderr is a terminal.
func errorStyle(terminal bool) string {
	if errorFormat != "" {
		return errorFormat
	}
	if terminal {
		return errors.StyleText
	}
	return errors.StyleCompact
}

// loadConfig reads --config, or sonner.json in the working directory, or
// falls back to defaults plus environment overrides.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	cfg, err := config.Load(".")
	if errors.HasCode(err, "E141") {
		return config.FromEnv()
	}
	return cfg, err
}

// setupLogging installs the console logger described by cfg and turns off
// colored error output when the logger is uncolored.
func setupLogging(cfg *config.Config, verbose bool) error {
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	opts := logging.Options{Level: level, NoColor: cfg.Log.NoColor}
	if verbose {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}
	if opts.NoColor || !logging.IsTerminal(os.Stderr) {
		errors.SetColors(false)
	}
	logging.Setup(opts)
	return nil
}

// printBanner prints the sonner ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
