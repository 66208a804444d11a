package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vango-dev/sonner/internal/config"
	"github.com/vango-dev/sonner/internal/replay"
	"github.com/vango-dev/sonner/pkg/toast"
)

func replayCmd() *cobra.Command {
	var (
		verbose bool
		final   bool
	)

	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Replay a toast script and print the resulting state",
		Long: `Replay runs the steps of a YAML script against a fresh store and
prints one JSON snapshot of the toasts and heights per step.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := setupLogging(cfg, verbose); err != nil {
				return err
			}
			store, err := replayStore(cfg)
			if err != nil {
				return err
			}
			script, err := replay.LoadFile(args[0])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			return runReplay(ctx, cmd.OutOrStdout(), store, script, final)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log each step")
	cmd.Flags().BoolVar(&final, "final", false, "print only the state after the last step")

	return cmd
}

// replayStore validates cfg and builds the store a script runs against.
func replayStore(cfg *config.Config) (*toast.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := []toast.Option{toast.WithDefaultDuration(cfg.ToastDuration())}
	if cfg.Toasts.IDs == config.IDsUUID {
		opts = append(opts, toast.WithIDGenerator(toast.UUIDGenerator{}))
	}
	return toast.NewStore(opts...), nil
}

// runReplay writes snapshots to w as JSON lines.
func runReplay(ctx context.Context, w io.Writer, store *toast.Store, script *replay.Script, final bool) error {
	enc := json.NewEncoder(w)

	var last replay.Snapshot
	var encErr error
	err := replay.NewRunner(toast.New(store), nil).Run(ctx, script, func(s replay.Snapshot) {
		if final {
			last = s
			return
		}
		if encErr == nil {
			encErr = enc.Encode(s)
		}
	})
	if err != nil {
		return err
	}
	if final {
		return enc.Encode(last)
	}
	return encErr
}
