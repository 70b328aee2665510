//go:build linux

package action

import (
	"os"

	"golang.org/x/sys/unix"
)

// Console tone parameters.
const (
	kdMkTone       = 0x4B30 // KDMKTONE
	pitClock       = 1193180
	toneFrequency  = 880
	toneDurationMs = 40
)

var consolePaths = []string{"/dev/tty0", "/dev/console"}

// consoleBeeper sounds the PC speaker through the KDMKTONE ioctl.
type consoleBeeper struct {
	f *os.File
}

func newConsoleBeeper() (Beeper, error) {
	var lastErr error
	for _, p := range consolePaths {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		return &consoleBeeper{f: f}, nil
	}
	return nil, lastErr
}

// Beep plays a short tone; the kernel stops it after the duration.
func (c *consoleBeeper) Beep() error {
	arg := toneDurationMs<<16 | pitClock/toneFrequency
	return unix.IoctlSetInt(int(c.f.Fd()), kdMkTone, arg)
}
