package action

import (
	"io"
	"os"
	"sync"
)

// Beeper sounds a short alert. It substitutes for a failing action.
type Beeper interface {
	Beep() error
}

// BellBeeper writes the terminal BEL character.
type BellBeeper struct {
	W io.Writer

	mu sync.Mutex
}

// Beep writes BEL to W, or to stderr when W is nil.
func (b *BellBeeper) Beep() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	w := b.W
	if w == nil {
		w = os.Stderr
	}
	_, err := w.Write([]byte{'\a'})
	return err
}

// NewBeeper returns the console tone beeper where the platform offers one,
// falling back to BellBeeper.
func NewBeeper() Beeper {
	if b, err := newConsoleBeeper(); err == nil {
		return b
	}
	return &BellBeeper{}
}
