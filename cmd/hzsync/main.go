// Command hzsync sets display refresh rates, emulating rates the hardware
// cannot produce with a software cadence.
//
// A rate request first tries the hardware: the exact mode, then a forced
// custom timing, then the closest standard mode. When none of them yields the
// exact rate, a software session ticks at the requested rate and plays a
// click and/or pulses the brightness on every tick until it is reset.
//
// Usage:
//
//	hzsync [flags]
//
// Flags:
//
//	-list               List active displays and their rates
//	-modes              List every mode of -display
//	-display string     Target display (default: first active display)
//	-rate float         Requested refresh rate in Hz
//	-width int          Preferred resolution width
//	-height int         Preferred resolution height
//	-tolerance float    Exact-match tolerance in Hz (default 0.1)
//	-software           Skip the hardware and emulate the rate
//	-for duration       Reset the software session after this long
//	-click              Enable the click sound for software sessions
//	-pulse              Enable the brightness pulse for software sessions
//	-pulse-amount float Brightness pulse amount in [0,1]
//	-reset              Reset all software sessions, including stale ones
//	-status             Show software sessions and saved settings
//	-interactive        Run an interactive shell
//	-simulate           Use the simulated display backend
//	-config string      Configuration file path
//	-state string       State file path
//	-event-log string   Write a structured event log to this file
//	-log-level string   Log level: debug, info, warn, error (default "info")
//	-metrics-addr string Serve Prometheus metrics on this address
//	-version            Print the version and exit
//
// Examples:
//
//	# Show displays
//	hzsync -list
//
//	# Run the built-in panel at 120 Hz
//	hzsync -display eDP-1 -rate 120
//
//	# Emulate 40 Hz with a click for ten minutes
//	hzsync -rate 40 -click -for 10m
//
//	# Clean up after a crashed run
//	hzsync -reset
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hzsync/hzsync-go/cmd/hzsync/interactive"
	"github.com/hzsync/hzsync-go/internal/config"
	"github.com/hzsync/hzsync-go/pkg/action"
	"github.com/hzsync/hzsync-go/pkg/cadence"
	"github.com/hzsync/hzsync-go/pkg/display"
	"github.com/hzsync/hzsync-go/pkg/inspect"
	"github.com/hzsync/hzsync-go/pkg/mode"
	"github.com/hzsync/hzsync-go/pkg/persistence"
	"github.com/hzsync/hzsync-go/pkg/service"
	"github.com/hzsync/hzsync-go/pkg/session"
	"github.com/hzsync/hzsync-go/pkg/version"
)

// Config holds the command-line configuration.
type Config struct {
	List        bool
	Modes       bool
	Display     string
	Rate        float64
	Width       int
	Height      int
	Tolerance   float64
	Software    bool
	For         time.Duration
	Click       bool
	Pulse       bool
	PulseAmount float64
	Reset       bool
	Status      bool
	Interactive bool
	Simulate    bool
	Backend     string
	ConfigFile  string
	StatePath   string
	EventLog    string
	LogLevel    string
	MetricsAddr string
	Help        bool
	Version     bool

	// set holds the names of flags given on the command line.
	set map[string]bool
}

func newFlagSet(cfg *Config, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("hzsync", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.BoolVar(&cfg.List, "list", false, "List active displays and their rates")
	fs.BoolVar(&cfg.Modes, "modes", false, "List every mode of -display")
	fs.StringVar(&cfg.Display, "display", "", "Target display (default: first active display)")
	fs.Float64Var(&cfg.Rate, "rate", 0, "Requested refresh rate in Hz")
	fs.IntVar(&cfg.Width, "width", 0, "Preferred resolution width")
	fs.IntVar(&cfg.Height, "height", 0, "Preferred resolution height")
	fs.Float64Var(&cfg.Tolerance, "tolerance", mode.DefaultTolerance, "Exact-match tolerance in Hz")
	fs.BoolVar(&cfg.Software, "software", false, "Skip the hardware and emulate the rate")
	fs.DurationVar(&cfg.For, "for", 0, "Reset the software session after this long (e.g. 10m)")
	fs.BoolVar(&cfg.Click, "click", false, "Enable the click sound for software sessions (-click=false disables)")
	fs.BoolVar(&cfg.Pulse, "pulse", false, "Enable the brightness pulse for software sessions (-pulse=false disables)")
	fs.Float64Var(&cfg.PulseAmount, "pulse-amount", 0, "Brightness pulse amount in [0,1]")
	fs.BoolVar(&cfg.Reset, "reset", false, "Reset all software sessions, including stale ones")
	fs.BoolVar(&cfg.Status, "status", false, "Show software sessions and saved settings")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "Run an interactive shell")
	fs.BoolVar(&cfg.Simulate, "simulate", false, "Use the simulated display backend")
	fs.StringVar(&cfg.Backend, "backend", config.BackendAuto, "Display backend: auto, xrandr, simulated")
	fs.StringVar(&cfg.ConfigFile, "config", "", "Configuration file path")
	fs.StringVar(&cfg.StatePath, "state", "", "State file path (default: $XDG_CONFIG_HOME/hzsync/state.json)")
	fs.StringVar(&cfg.EventLog, "event-log", "", "Write a structured event log to this file")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9310)")
	fs.BoolVar(&cfg.Help, "help", false, "Show help")
	fs.BoolVar(&cfg.Version, "version", false, "Print the version and exit")
	return fs
}

// parseFlags parses args into a Config.
func parseFlags(args []string, output io.Writer) (*Config, *flag.FlagSet, error) {
	cfg := &Config{set: make(map[string]bool)}
	fs := newFlagSet(cfg, output)
	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	if fs.NArg() > 0 {
		return nil, fs, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	fs.Visit(func(f *flag.Flag) { cfg.set[f.Name] = true })
	return cfg, fs, nil
}

// mergeFile fills values not given on the command line from the file.
func mergeFile(cfg *Config, f *config.File) {
	if f.Backend != "" && !cfg.set["backend"] {
		cfg.Backend = f.Backend
	}
	if f.Tolerance > 0 && !cfg.set["tolerance"] {
		cfg.Tolerance = f.Tolerance
	}
	if f.PulseAmount > 0 && !cfg.set["pulse-amount"] {
		cfg.PulseAmount = f.PulseAmount
	}
	if f.StatePath != "" && !cfg.set["state"] {
		cfg.StatePath = f.StatePath
	}
	if f.EventLog != "" && !cfg.set["event-log"] {
		cfg.EventLog = f.EventLog
	}
	if f.LogLevel != "" && !cfg.set["log-level"] {
		cfg.LogLevel = f.LogLevel
	}
	if f.MetricsAddr != "" && !cfg.set["metrics-addr"] {
		cfg.MetricsAddr = f.MetricsAddr
	}
}

func applyDefaults(cfg *Config) error {
	if cfg.Simulate {
		cfg.Backend = config.BackendSimulated
	}
	if cfg.Backend == "" {
		cfg.Backend = config.BackendAuto
	}
	if cfg.StatePath == "" {
		path, err := persistence.DefaultPath()
		if err != nil {
			return err
		}
		cfg.StatePath = path
	}
	return nil
}

func validateConfig(cfg *Config) error {
	actions := 0
	for _, on := range []bool{cfg.List, cfg.Modes, cfg.Rate != 0, cfg.Reset, cfg.Status, cfg.Interactive} {
		if on {
			actions++
		}
	}
	if actions > 1 {
		return errors.New("choose one of -list, -modes, -rate, -reset, -status, -interactive")
	}
	if cfg.Rate < 0 || cfg.Rate > cadence.MaxRate {
		return fmt.Errorf("rate must be in (0, %v], got %v", cadence.MaxRate, cfg.Rate)
	}
	if cfg.Width < 0 || cfg.Height < 0 {
		return errors.New("width and height must not be negative")
	}
	if (cfg.Width > 0) != (cfg.Height > 0) {
		return errors.New("-width and -height must be given together")
	}
	if cfg.Tolerance < 0 {
		return fmt.Errorf("tolerance must not be negative, got %v", cfg.Tolerance)
	}
	if cfg.PulseAmount < 0 || cfg.PulseAmount > 1 {
		return fmt.Errorf("pulse amount must be in [0,1], got %v", cfg.PulseAmount)
	}
	if cfg.For < 0 {
		return errors.New("-for must not be negative")
	}
	if cfg.For > 0 && cfg.Rate == 0 {
		return errors.New("-for requires -rate")
	}
	if (cfg.Software || cfg.Width > 0) && cfg.Rate == 0 {
		return errors.New("-software, -width and -height require -rate")
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return err
	}
	switch cfg.Backend {
	case config.BackendAuto, config.BackendXrandr, config.BackendSimulated:
	default:
		return fmt.Errorf("unknown backend: %s", cfg.Backend)
	}
	return nil
}

func hasAction(cfg *Config) bool {
	return cfg.List || cfg.Modes || cfg.Rate > 0 || cfg.Reset || cfg.Status || cfg.Interactive ||
		cfg.set["click"] || cfg.set["pulse"] || cfg.set["pulse-amount"]
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, fs, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if cfg.Help {
		fs.SetOutput(stdout)
		fs.Usage()
		return 0
	}
	if cfg.Version {
		fmt.Fprintln(stdout, version.Banner("hzsync"))
		return 0
	}

	file, err := config.Load(cfg.ConfigFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	mergeFile(cfg, file)
	if err := applyDefaults(cfg); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := validateConfig(cfg); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return 1
	}
	if !hasAction(cfg) {
		fs.SetOutput(stdout)
		fs.Usage()
		return 0
	}

	var rl *readline.Instance
	logOut := stderr
	if cfg.Interactive {
		rl, err = interactive.NewReadline()
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer rl.Close()
		logOut = rl.Stdout()
	}

	logger := newLogger(logOut, cfg.LogLevel)
	slog.SetDefault(logger)

	events, closeEvents, err := openEvents(cfg.EventLog, logger)
	if err != nil {
		logger.Error("failed to open event log", "path", cfg.EventLog, "error", err)
		return 1
	}
	defer closeEvents()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *cadence.Metrics
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics = cadence.NewMetrics(reg)
		stopMetrics := serveMetrics(cfg.MetricsAddr, reg, logger)
		defer stopMetrics()
	}

	backend, provider, err := newBackend(cfg, file, logger)
	if err != nil {
		logger.Error("no display backend", "error", err)
		return 1
	}
	logger.Debug("display backend selected", "backend", backend.Name(), "brightness", provider.Name())

	state := session.Open(persistence.NewStateStore(cfg.StatePath), session.Options{
		Logger: logger,
		Events: events,
	})

	player := newPlayer(logger)
	if c, ok := player.(io.Closer); ok {
		defer func() {
			if err := c.Close(); err != nil {
				logger.Debug("click player cleanup", "error", err)
			}
		}()
	}

	svc, err := service.NewRateService(service.Config{
		Backend:    backend,
		State:      state,
		Brightness: provider,
		Player:     player,
		Driver: cadence.NewDriver(cadence.Config{
			Logger:  logger,
			Events:  events,
			Beeper:  action.NewBeeper(),
			Metrics: metrics,
		}),
		Tolerance: cfg.Tolerance,
		PoolSize:  file.PoolSize,
		Logger:    logger,
		Events:    events,
	})
	if err != nil {
		logger.Error("failed to create service", "error", err)
		return 1
	}

	if err := applySettings(cfg, svc); err != nil {
		logger.Warn("settings not saved", "error", err)
	}

	f := inspect.NewFormatter()
	switch {
	case cfg.Reset:
		if err := svc.ResetAll(); err != nil {
			logger.Warn("reset incomplete", "error", err)
		}
		fmt.Fprintln(stdout, "All software sessions reset.")
		return 0

	case cfg.Status:
		fmt.Fprint(stdout, f.FormatStatus(svc.Status()))
		return 0

	case cfg.List:
		infos, err := svc.List()
		if err != nil {
			logger.Error("failed to list displays", "error", err)
			return 1
		}
		fmt.Fprint(stdout, f.FormatDisplays(infos))
		return 0

	case cfg.Modes:
		cat, err := svc.Modes(display.ID(cfg.Display))
		if err != nil {
			logger.Error("failed to read modes", "display_id", cfg.Display, "error", err)
			return 1
		}
		fmt.Fprintf(stdout, "%s:\n", cat.DisplayID)
		fmt.Fprint(stdout, f.FormatCatalog(cat))
		return 0

	case cfg.Interactive:
		shell := interactive.New(rl, svc)
		shellCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go shell.Run(shellCtx, cancel)
		<-shellCtx.Done()
		return shutdown(svc, logger)

	case cfg.Rate > 0:
		out, err := svc.SetRate(ctx, service.SetRequest{
			DisplayID:  display.ID(cfg.Display),
			TargetRate: cfg.Rate,
			Width:      cfg.Width,
			Height:     cfg.Height,
			Software:   cfg.Software,
			Duration:   cfg.For,
		})
		if out.Note != "" {
			fmt.Fprint(stdout, f.FormatOutcome(out))
		}
		if err != nil {
			logger.Error("failed to set rate", "display_id", cfg.Display, "target_hz", cfg.Rate, "error", err)
			return 1
		}
		if out.Software == nil {
			return 0
		}

		fmt.Fprintln(stdout, "Software session running; press Ctrl+C to stop.")
		select {
		case <-ctx.Done():
			logger.Info("signal received, resetting software sessions")
		case <-svc.Idle():
			logger.Info("software session ended")
		}
		return shutdown(svc, logger)
	}
	return 0
}

// applySettings persists the click and pulse flags given on the command line.
func applySettings(cfg *Config, svc *service.RateService) error {
	var errs []error
	if cfg.set["click"] {
		errs = append(errs, svc.SetClick(cfg.Click))
	}
	if cfg.set["pulse"] || cfg.set["pulse-amount"] {
		enabled := cfg.Pulse
		if !cfg.set["pulse"] {
			enabled = svc.State().Snapshot().BrightnessPulseEnabled
		}
		errs = append(errs, svc.SetPulse(enabled, cfg.PulseAmount))
	}
	return errors.Join(errs...)
}

// shutdown tears everything down. Cleanup failures are logged and the
// process still exits zero.
func shutdown(svc *service.RateService, logger *slog.Logger) int {
	if err := svc.Shutdown(); err != nil {
		logger.Warn("cleanup incomplete", "error", err)
	}
	return 0
}
