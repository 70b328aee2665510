// Package interactive provides the interactive command-line interface
// for hzsync.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/hzsync/hzsync-go/pkg/cadence"
	"github.com/hzsync/hzsync-go/pkg/display"
	"github.com/hzsync/hzsync-go/pkg/inspect"
	"github.com/hzsync/hzsync-go/pkg/service"
)

// Shell handles interactive mode for hzsync.
type Shell struct {
	svc       *service.RateService
	formatter *inspect.Formatter
	rl        *readline.Instance
}

// NewReadline creates the line editor. It is created before the service so
// log output can be routed through it from the start.
func NewReadline() (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "hzsync> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("list"),
			readline.PcItem("modes"),
			readline.PcItem("set"),
			readline.PcItem("software"),
			readline.PcItem("click", readline.PcItem("on"), readline.PcItem("off")),
			readline.PcItem("pulse", readline.PcItem("on"), readline.PcItem("off")),
			readline.PcItem("status"),
			readline.PcItem("reset", readline.PcItem("all")),
			readline.PcItem("help"),
			readline.PcItem("exit"),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return rl, nil
}

// New creates a shell on rl.
func New(rl *readline.Instance, svc *service.RateService) *Shell {
	return &Shell{
		svc:       svc,
		formatter: inspect.NewFormatter(),
		rl:        rl,
	}
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run starts the interactive command loop. It calls cancel when the user
// exits.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "list", "ls", "l":
			s.cmdList()

		case "modes", "m":
			s.cmdModes(args)

		case "set", "s":
			s.cmdSet(ctx, args, false)

		case "software", "sw":
			s.cmdSet(ctx, args, true)

		case "click":
			s.cmdClick(args)

		case "pulse":
			s.cmdPulse(args)

		case "status", "st":
			s.cmdStatus()

		case "reset":
			s.cmdReset(args)

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
hzsync Commands:
  Displays:
    list                          - List active displays and their rates
    modes [display]               - Show every mode of a display

  Rates:
    set <hz> [display] [WxH] [dur]      - Set a rate, falling back to software
    software <hz> [display] [dur]       - Emulate a rate in software only
    reset [display|all]                 - Stop software sessions and restore brightness

  Actions:
    click on|off                  - Toggle the click sound for new sessions
    pulse on|off [amount]         - Toggle the brightness pulse (amount 0-1)

  General:
    status                        - Show sessions and saved settings
    help                          - Show this help
    exit                          - Reset all sessions and exit

  Durations use Go syntax: 30s, 10m, 1h.`)
}

func (s *Shell) cmdList() {
	infos, err := s.svc.List()
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprint(s.rl.Stdout(), s.formatter.FormatDisplays(infos))
}

func (s *Shell) cmdModes(args []string) {
	var id display.ID
	if len(args) > 0 {
		id = display.ID(args[0])
	}
	cat, err := s.svc.Modes(id)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "%s:\n", cat.DisplayID)
	fmt.Fprint(s.rl.Stdout(), s.formatter.FormatCatalog(cat))
}

func (s *Shell) cmdSet(ctx context.Context, args []string, software bool) {
	req, err := ParseSetArgs(args)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		fmt.Fprintln(s.rl.Stdout(), "Usage: set <hz> [display] [WxH] [duration]")
		return
	}
	req.Software = software

	out, err := s.svc.SetRate(ctx, req)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprint(s.rl.Stdout(), s.formatter.FormatOutcome(out))
}

func (s *Shell) cmdClick(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: click on|off")
		return
	}
	on, err := ParseOnOff(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	if err := s.svc.SetClick(on); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Warning: %v\n", err)
	}
	fmt.Fprintf(s.rl.Stdout(), "Click sound %s for new sessions\n", args[0])
}

func (s *Shell) cmdPulse(args []string) {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: pulse on|off [amount]")
		return
	}
	on, err := ParseOnOff(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	var amount float64
	if len(args) == 2 {
		amount, err = strconv.ParseFloat(args[1], 64)
		if err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Invalid amount: %v\n", err)
			return
		}
	}
	if err := s.svc.SetPulse(on, amount); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	snap := s.svc.State().Snapshot()
	fmt.Fprintf(s.rl.Stdout(), "Brightness pulse %s (amount %.0f%%) for new sessions\n",
		args[0], snap.BrightnessPulseAmount*100)
}

func (s *Shell) cmdStatus() {
	fmt.Fprint(s.rl.Stdout(), s.formatter.FormatStatus(s.svc.Status()))
}

func (s *Shell) cmdReset(args []string) {
	if len(args) == 0 || args[0] == "all" {
		if err := s.svc.ResetAll(); err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
			return
		}
		fmt.Fprintln(s.rl.Stdout(), "All software sessions reset")
		return
	}

	id := display.ID(args[0])
	if err := s.svc.Reset(id); err != nil {
		if errors.Is(err, cadence.ErrNoSession) {
			fmt.Fprintf(s.rl.Stdout(), "No software session on %s\n", id)
			return
		}
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "%s reset\n", id)
}

// ParseSetArgs parses "<hz> [display] [WxH] [duration]". The optional
// arguments may come in any order.
func ParseSetArgs(args []string) (service.SetRequest, error) {
	var req service.SetRequest
	if len(args) == 0 {
		return req, errors.New("missing rate")
	}

	rate, err := strconv.ParseFloat(args[0], 64)
	if err != nil || rate <= 0 {
		return req, fmt.Errorf("invalid rate %q", args[0])
	}
	req.TargetRate = rate

	for _, arg := range args[1:] {
		if w, h, ok := ParseResolution(arg); ok {
			req.Width, req.Height = w, h
			continue
		}
		if d, err := time.ParseDuration(arg); err == nil {
			req.Duration = d
			continue
		}
		if req.DisplayID != "" {
			return req, fmt.Errorf("unexpected argument %q", arg)
		}
		req.DisplayID = display.ID(arg)
	}
	return req, nil
}

// ParseResolution parses "WxH".
func ParseResolution(s string) (int, int, bool) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, false
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w <= 0 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// ParseOnOff parses on/off style switches.
func ParseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", s)
	}
}
