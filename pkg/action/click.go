package action

import (
	"context"
	"fmt"
	"sync"
)

// Player starts sound playbacks.
type Player interface {
	// Play starts one playback and returns without waiting for it.
	Play(ctx context.Context) (Handle, error)
}

// Click plays a short click on every tick. Playbacks overlap freely; the
// pool caps how many run at once.
type Click struct {
	player Player
	pool   *Pool

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClick creates a click action. A nil pool gets DefaultPoolSize.
func NewClick(player Player, pool *Pool) *Click {
	if pool == nil {
		pool = NewPool(DefaultPoolSize)
	}
	return &Click{player: player, pool: pool}
}

// Name returns "click".
func (c *Click) Name() string {
	return "click"
}

// Pool returns the playback pool.
func (c *Click) Pool() *Pool {
	return c.pool
}

// Arm prepares the action for ticking.
func (c *Click) Arm() error {
	if c.player == nil {
		return ErrNoPlayer
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ctx, c.cancel = context.WithCancel(context.Background())
	return nil
}

// Tick starts a new playback.
func (c *Click) Tick(seq uint64) error {
	c.mu.Lock()
	ctx := c.ctx
	c.mu.Unlock()
	if ctx == nil {
		return ErrNotArmed
	}

	h, err := c.player.Play(ctx)
	if err != nil {
		return fmt.Errorf("click %d: %w", seq, err)
	}
	id := c.pool.Add(h)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		select {
		case <-h.Done():
		case <-ctx.Done():
		}
		c.pool.Remove(id)
	}()
	return nil
}

// Release stops all playbacks and waits for their watchers.
func (c *Click) Release() error {
	c.mu.Lock()
	cancel := c.cancel
	c.ctx, c.cancel = nil, nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	err := c.pool.StopAll()
	c.wg.Wait()
	return err
}

var _ Action = (*Click)(nil)
