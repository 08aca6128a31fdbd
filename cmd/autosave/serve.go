package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/aretw0/autosave"
	"github.com/aretw0/autosave/internal/metrics"
	lcadapter "github.com/aretw0/autosave/pkg/adapters/lifecycle"
	"github.com/aretw0/autosave/pkg/adapters/stdio"
	"github.com/aretw0/autosave/pkg/core"
	"github.com/aretw0/autosave/pkg/settings"
)

var (
	serveWatch       bool
	serveDecisions   bool
	serveMetricsAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the engine against an editor speaking JSON lines on stdio",
	Long: `Serve reads focus events from stdin, one JSON object per line, and
answers with save requests and log lines on stdout.

  {"type":"focus_transferred","losing":{"path":"a.cs","saved":false}}
  {"type":"host_lost_focus","surfaces":[...]}

The settings file is reloaded when it changes unless --watch=false.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		session := uuid.NewString()
		logger := slog.Default().With("session", session)

		store, err := openSettings()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		warnInvalid(store)

		if serveWatch && store.Path() != "" {
			w := settings.NewWatcher(store, settings.WatcherConfig{
				Logger: logger,
				OnReload: func(settings.Settings) {
					logger.Info("settings reloaded", "path", store.Path())
					warnInvalid(store)
				},
			})
			if err := w.Start(ctx); err != nil {
				return fmt.Errorf("failed to watch settings: %w", err)
			}
			defer func() {
				stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				_ = w.Stop(stopCtx)
			}()
		}

		var recorder core.Recorder
		if serveMetricsAddr != "" {
			reg := prometheus.NewRegistry()
			recorder = metrics.New(reg)
			serveMetrics(ctx, serveMetricsAddr, reg, logger)
		}

		host := stdio.NewHost(cmd.InOrStdin(), cmd.OutOrStdout(), logger)
		opts := []autosave.Option{
			autosave.WithSaver(host),
			autosave.WithSink(host),
			autosave.WithLogger(logger),
		}
		if recorder != nil {
			opts = append(opts, autosave.WithRecorder(recorder))
		}
		engine := autosave.NewEngine(opts...)

		decisions := make(chan core.Decision, 16)
		src := lcadapter.NewSource(decisions)
		if err := src.Start(ctx); err != nil {
			return err
		}
		done := make(chan struct{})
		go func() {
			defer close(done)
			for ev := range src.Events() {
				d, ok := ev.(core.Decision)
				if !ok {
					continue
				}
				logger.Debug("decision", "outcome", d.Outcome, "path", d.Path)
				if serveDecisions {
					if err := host.Report(d); err != nil {
						logger.Warn("failed to report decision", "error", err)
					}
				}
			}
		}()

		if err := host.Start(ctx); err != nil {
			return err
		}
		logger.Info("serving", "settings", store.Path())

		err = engine.Run(ctx, host, store, decisions)
		close(decisions)
		<-done

		logger.Info("stopped", "state", engine.State())
		return err
	},
}

// serveMetrics exposes reg on addr until ctx ends.
func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	onError := lifecycle.WithErrorHandler(func(err error) {
		logger.Error("metrics server failed", "addr", addr, "error", err)
	})
	lifecycle.Go(ctx, func(ctx context.Context) error {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}, onError)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}, onError)
}

func init() {
	serveCmd.Flags().BoolVar(&serveWatch, "watch", true, "Reload the settings file when it changes")
	serveCmd.Flags().BoolVar(&serveDecisions, "decisions", false, "Report every decision to the editor")
	serveCmd.Flags().StringVar(&serveMetricsAddr, "metrics-addr", "", "Expose Prometheus metrics on this address (e.g. :9090)")
	rootCmd.AddCommand(serveCmd)
}
