package brightness

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hzsync/hzsync-go/pkg/display"
)

// Prober selects a provider per display by capability probing.
// The outcome of the first probe for a display, success or failure, is
// cached for the lifetime of the Prober.
type Prober struct {
	providers []Provider
	logger    *slog.Logger

	mu     sync.Mutex
	chosen map[display.ID]Provider
	errs   map[display.ID]error
}

// NewProber creates a Prober over providers, tried in the given order.
// Nil providers are skipped.
func NewProber(logger *slog.Logger, providers ...Provider) *Prober {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Prober{
		logger: logger,
		chosen: make(map[display.ID]Provider),
		errs:   make(map[display.ID]error),
	}
	for _, pr := range providers {
		if pr != nil {
			p.providers = append(p.providers, pr)
		}
	}
	return p
}

// Name returns "auto".
func (p *Prober) Name() string {
	return "auto"
}

// Provider returns the provider for id, probing on first use.
func (p *Prober) Provider(id display.ID) (Provider, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pr, ok := p.chosen[id]; ok {
		return pr, nil
	}
	if err, ok := p.errs[id]; ok {
		return nil, err
	}

	var failures []error
	for _, pr := range p.providers {
		err := pr.Probe(id)
		if err == nil {
			p.logger.Debug("brightness provider selected", "display_id", id, "provider", pr.Name())
			p.chosen[id] = pr
			return pr, nil
		}
		failures = append(failures, fmt.Errorf("%s: %w", pr.Name(), err))
	}

	err := fmt.Errorf("%w for %s", ErrNoProvider, id)
	if len(failures) > 0 {
		err = fmt.Errorf("%w for %s: %w", ErrNoProvider, id, errors.Join(failures...))
	}
	p.logger.Debug("no brightness provider", "display_id", id, "error", err)
	p.errs[id] = err
	return nil, err
}

// Probe returns nil when some provider can control id.
func (p *Prober) Probe(id display.ID) error {
	_, err := p.Provider(id)
	return err
}

// Get reads the level through the display's provider.
func (p *Prober) Get(id display.ID) (float64, error) {
	pr, err := p.Provider(id)
	if err != nil {
		return 0, err
	}
	return pr.Get(id)
}

// Set writes the level through the display's provider.
func (p *Prober) Set(id display.ID, level float64) error {
	if err := CheckLevel(level); err != nil {
		return err
	}
	pr, err := p.Provider(id)
	if err != nil {
		return err
	}
	return pr.Set(id, level)
}

var _ Provider = (*Prober)(nil)
