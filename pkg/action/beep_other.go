//go:build !linux

package action

import (
	"errors"
)

func newConsoleBeeper() (Beeper, error) {
	return nil, errors.New("console tone not supported on this platform")
}
