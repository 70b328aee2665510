package action

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlayer struct {
	mu      sync.Mutex
	handles []*fakeHandle
	err     error
}

func (p *fakePlayer) Play(context.Context) (Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	h := newFakeHandle()
	p.handles = append(p.handles, h)
	return h, nil
}

func (p *fakePlayer) started() []*fakeHandle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*fakeHandle(nil), p.handles...)
}

func TestClickStartsIndependentPlaybackPerTick(t *testing.T) {
	player := &fakePlayer{}
	c := NewClick(player, NewPool(4))
	require.NoError(t, c.Arm())

	for seq := uint64(1); seq <= 3; seq++ {
		require.NoError(t, c.Tick(seq))
	}

	assert.Len(t, player.started(), 3)
	assert.Equal(t, 3, c.Pool().Len())

	require.NoError(t, c.Release())
	assert.Equal(t, 0, c.Pool().Len())
	for _, h := range player.started() {
		assert.Equal(t, 1, h.stopCount())
	}
}

func TestClickRemovesCompletedPlayback(t *testing.T) {
	player := &fakePlayer{}
	c := NewClick(player, NewPool(4))
	require.NoError(t, c.Arm())
	require.NoError(t, c.Tick(1))

	player.started()[0].finish()

	assert.Eventually(t, func() bool { return c.Pool().Len() == 0 }, time.Second, 5*time.Millisecond)
	require.NoError(t, c.Release())
}

func TestClickBoundedByPool(t *testing.T) {
	player := &fakePlayer{}
	c := NewClick(player, NewPool(2))
	require.NoError(t, c.Arm())

	for seq := uint64(1); seq <= 5; seq++ {
		require.NoError(t, c.Tick(seq))
	}
	assert.LessOrEqual(t, c.Pool().Len(), 2)

	started := player.started()
	assert.Equal(t, 1, started[0].stopCount())
	assert.Equal(t, 1, started[2].stopCount())
	require.NoError(t, c.Release())
}

func TestClickTickBeforeArm(t *testing.T) {
	c := NewClick(&fakePlayer{}, nil)
	assert.ErrorIs(t, c.Tick(1), ErrNotArmed)
}

func TestClickPlayerError(t *testing.T) {
	boom := errors.New("device busy")
	c := NewClick(&fakePlayer{err: boom}, nil)
	require.NoError(t, c.Arm())

	assert.ErrorIs(t, c.Tick(1), boom)
	require.NoError(t, c.Release())
}

func TestClickArmWithoutPlayer(t *testing.T) {
	assert.ErrorIs(t, NewClick(nil, nil).Arm(), ErrNoPlayer)
}
