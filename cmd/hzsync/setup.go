package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hzsync/hzsync-go/internal/config"
	"github.com/hzsync/hzsync-go/pkg/action"
	"github.com/hzsync/hzsync-go/pkg/brightness"
	"github.com/hzsync/hzsync-go/pkg/display"
	"github.com/hzsync/hzsync-go/pkg/display/simulated"
	"github.com/hzsync/hzsync-go/pkg/display/xrandr"
	"github.com/hzsync/hzsync-go/pkg/log"
)

// ErrNoBackend is returned when no display backend is usable.
var ErrNoBackend = errors.New("no supported display backend (try -simulate)")

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", s)
	}
}

func newLogger(w io.Writer, level string) *slog.Logger {
	lvl, err := parseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// openEvents returns the event sink: debug-level slog output, plus a CBOR
// event log when path is set.
func openEvents(path string, logger *slog.Logger) (log.Logger, func(), error) {
	adapter := log.NewSlogAdapter(logger)
	if path == "" {
		return adapter, func() {}, nil
	}

	fl, err := log.NewFileLogger(path)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("writing event log", "path", path)
	closeFn := func() {
		if err := fl.Close(); err != nil {
			logger.Warn("failed to close event log", "error", err)
		}
	}
	return log.NewMultiLogger(adapter, fl), closeFn, nil
}

// serveMetrics serves reg on addr until the returned stop function is called.
// metricsHandler registers the runtime collectors on reg and returns a mux
// serving it on /metrics.
func metricsHandler(reg *prometheus.Registry) http.Handler {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	return mux
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) func() {
	srv := &http.Server{
		Addr:              addr,
		Handler:           metricsHandler(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server stopped", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

// newBackend selects the display backend and its brightness provider.
func newBackend(cfg *Config, file *config.File, logger *slog.Logger) (display.Backend, brightness.Provider, error) {
	name := cfg.Backend
	if name == config.BackendAuto {
		name = detectBackend(exec.LookPath, os.Getenv)
		if name == "" {
			return nil, nil, ErrNoBackend
		}
	}

	switch name {
	case config.BackendSimulated:
		sim := simulated.New(file.Simulated)
		return sim, brightness.NewProber(logger, sim), nil

	case config.BackendXrandr:
		xr := xrandr.New(xrandr.Config{
			Binary:  file.Xrandr.Binary,
			Timeout: file.Xrandr.Timeout,
			Logger:  logger,
		})
		return xr, brightness.NewProber(logger, newProviders(file, xr)...), nil

	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrNoBackend, name)
	}
}

// detectBackend picks xrandr when an X display and the tool are available.
func detectBackend(lookPath func(string) (string, error), getenv func(string) string) string {
	if getenv("DISPLAY") == "" {
		return ""
	}
	if _, err := lookPath("xrandr"); err != nil {
		return ""
	}
	return config.BackendXrandr
}

// newProviders builds brightness providers in the configured probe order.
func newProviders(file *config.File, xr *xrandr.Backend) []brightness.Provider {
	var out []brightness.Provider
	for _, name := range file.BrightnessProviders() {
		switch name {
		case config.ProviderSysfs:
			out = append(out, &brightness.Sysfs{
				Root:   file.Brightness.BacklightRoot,
				Device: file.Brightness.BacklightDevice,
			})
		case config.ProviderBrightnessctl:
			out = append(out, &brightness.Brightnessctl{Device: file.Brightness.BacklightDevice})
		case config.ProviderGamma:
			if xr != nil {
				out = append(out, xrandr.NewGammaBrightness(xr))
			}
		}
	}
	return out
}

// newPlayer returns the click player, or nil when no audio tool is installed.
func newPlayer(logger *slog.Logger) action.Player {
	p, err := action.NewExecPlayer("")
	if err != nil {
		logger.Debug("click sound unavailable", "error", err)
		return nil
	}
	logger.Debug("click player selected", "command", p.Command())
	return p
}
