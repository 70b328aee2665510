package brightness

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/hzsync/hzsync-go/pkg/display"
)

// Runner executes an external command and returns its stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes the command and returns its standard output.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// Brightnessctl drives the backlight through the brightnessctl tool, which
// works for unprivileged users via logind.
type Brightnessctl struct {
	// Binary is the executable. Default: "brightnessctl".
	Binary string

	// Device selects a device (-d). Empty lets brightnessctl choose.
	Device string

	Runner  Runner
	Timeout time.Duration
}

// Name returns "brightnessctl".
func (b *Brightnessctl) Name() string {
	return "brightnessctl"
}

func (b *Brightnessctl) run(args ...string) ([]byte, error) {
	bin := b.Binary
	if bin == "" {
		bin = "brightnessctl"
	}
	runner := b.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	timeout := b.Timeout
	if timeout == 0 {
		timeout = 2 * time.Second
	}
	if b.Device != "" {
		args = append([]string{"-d", b.Device}, args...)
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return runner.Run(ctx, bin, args...)
}

// Probe checks that brightnessctl reports a backlight for an internal panel.
func (b *Brightnessctl) Probe(id display.ID) error {
	_, err := b.Get(id)
	return err
}

// Get parses machine-readable output: "device,class,current,percent,max".
func (b *Brightnessctl) Get(id display.ID) (float64, error) {
	if !IsInternal(id) {
		return 0, fmt.Errorf("%s is not an internal panel: %w", id, display.ErrUnsupported)
	}
	out, err := b.run("-m", "info")
	if err != nil {
		return 0, err
	}
	return parseMachineInfo(string(out))
}

// Set applies level as a percentage.
func (b *Brightnessctl) Set(id display.ID, level float64) error {
	if err := CheckLevel(level); err != nil {
		return err
	}
	if !IsInternal(id) {
		return fmt.Errorf("%s is not an internal panel: %w", id, display.ErrUnsupported)
	}
	pct := strconv.FormatFloat(level*100, 'f', 0, 64) + "%"
	_, err := b.run("-q", "set", pct)
	return err
}

var errMalformedInfo = errors.New("malformed brightnessctl output")

func parseMachineInfo(out string) (float64, error) {
	line := strings.TrimSpace(strings.SplitN(out, "\n", 2)[0])
	fields := strings.Split(line, ",")
	if len(fields) < 5 {
		return 0, fmt.Errorf("%w: %q", errMalformedInfo, line)
	}
	cur, err := strconv.Atoi(fields[2])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errMalformedInfo, line)
	}
	maxLevel, err := strconv.Atoi(fields[4])
	if err != nil || maxLevel <= 0 {
		return 0, fmt.Errorf("%w: %q", errMalformedInfo, line)
	}
	return Clamp(float64(cur) / float64(maxLevel)), nil
}

var _ Provider = (*Brightnessctl)(nil)
