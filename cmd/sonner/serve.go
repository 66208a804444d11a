package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/sonner/internal/config"
	"github.com/vango-dev/sonner/internal/errors"
	"github.com/vango-dev/sonner/pkg/feed"
	"github.com/vango-dev/sonner/pkg/metrics"
	"github.com/vango-dev/sonner/pkg/toast"
)

func serveCmd() *cobra.Command {
	var (
		addr    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a toast store to renderers",
		Long: `Start the feed server.

Renderers connect to <mount>/ws and receive a snapshot of the toasts
and heights on connect and after every change. The HTTP routes under
<mount> create and dismiss toasts and report heights.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := setupLogging(cfg, verbose); err != nil {
				return err
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides server.addr)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level with source locations")

	return cmd
}

// app is a configured store with its HTTP surface.
type app struct {
	store   *toast.Store
	feed    *feed.Server
	handler http.Handler
}

// newApp wires a store, its metrics and the feed routes from cfg.
// Metrics are registered on reg; a nil reg disables them.
func newApp(cfg *config.Config, reg *prometheus.Registry) *app {
	logger := slog.Default()

	opts := []toast.Option{
		toast.WithLogger(logger),
		toast.WithDefaultDuration(cfg.ToastDuration()),
	}
	if cfg.Toasts.IDs == config.IDsUUID {
		opts = append(opts, toast.WithIDGenerator(toast.UUIDGenerator{}))
	}
	if cfg.Metrics.Enabled && reg != nil {
		collector := metrics.New(
			metrics.WithNamespace(cfg.Metrics.Namespace),
			metrics.WithRegistry(reg),
		)
		opts = append(opts, toast.WithObserver(collector))
	}
	store := toast.NewStore(opts...)

	fs := feed.New(store,
		feed.WithLogger(logger),
		feed.WithAllowedOrigins(cfg.Server.AllowedOrigins),
	)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Mount(cfg.Server.MountPath, fs.Routes())
	if cfg.Metrics.Enabled && reg != nil {
		r.Handle(cfg.Metrics.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	return &app{store: store, feed: fs, handler: r}
}

func runServe(cfg *config.Config) error {
	reg := prometheus.NewRegistry()
	a := newApp(cfg, reg)
	defer a.feed.Close()

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return errors.New("E160").Wrap(err).
			WithSuggestion("Pick another address with --addr")
	}

	srv := &http.Server{Handler: a.handler}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printBanner()
	fmt.Println("  serve")
	fmt.Println()
	success("Feed on http://%s%s", ln.Addr(), cfg.Server.MountPath)
	if cfg.Metrics.Enabled {
		info("Metrics on http://%s%s", ln.Addr(), cfg.Metrics.Path)
	}
	fmt.Println()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.New("E160").Wrap(err)
		}
		return nil
	case <-ctx.Done():
	}

	fmt.Println("\n\n  Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.New("E160").Wrap(err)
	}
	return nil
}
