package action

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHandle struct {
	mu      sync.Mutex
	done    chan struct{}
	stopped int
}

func newFakeHandle() *fakeHandle {
	return &fakeHandle{done: make(chan struct{})}
}

func (h *fakeHandle) Done() <-chan struct{} { return h.done }

func (h *fakeHandle) Stop() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped++
	return nil
}

func (h *fakeHandle) stopCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopped
}

func (h *fakeHandle) finish() { close(h.done) }

func TestPoolEvictsOldestWhenFull(t *testing.T) {
	p := NewPool(2)
	a, b, c := newFakeHandle(), newFakeHandle(), newFakeHandle()

	p.Add(a)
	p.Add(b)
	assert.Equal(t, 2, p.Len())

	p.Add(c)
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, 1, a.stopCount())
	assert.Equal(t, 0, b.stopCount())
	assert.Equal(t, 0, c.stopCount())
}

func TestPoolRemove(t *testing.T) {
	p := NewPool(3)
	a, b, c := newFakeHandle(), newFakeHandle(), newFakeHandle()

	p.Add(a)
	idB := p.Add(b)
	p.Add(c)

	require.True(t, p.Remove(idB))
	assert.False(t, p.Remove(idB))
	assert.Equal(t, 2, p.Len())

	// The ring stays ordered: adding two more evicts a, then c.
	d, e := newFakeHandle(), newFakeHandle()
	p.Add(d)
	assert.Equal(t, 0, a.stopCount())
	p.Add(e)
	assert.Equal(t, 1, a.stopCount())
	assert.Equal(t, 0, c.stopCount())
	assert.Equal(t, 0, b.stopCount())
}

func TestPoolRemoveAfterWrap(t *testing.T) {
	p := NewPool(2)
	p.Add(newFakeHandle())
	p.Add(newFakeHandle())
	id3 := p.Add(newFakeHandle())
	id4 := p.Add(newFakeHandle())

	assert.True(t, p.Remove(id4))
	assert.True(t, p.Remove(id3))
	assert.Equal(t, 0, p.Len())
}

func TestPoolStopAll(t *testing.T) {
	p := NewPool(4)
	hs := []*fakeHandle{newFakeHandle(), newFakeHandle(), newFakeHandle()}
	for _, h := range hs {
		p.Add(h)
	}

	require.NoError(t, p.StopAll())
	assert.Equal(t, 0, p.Len())
	for _, h := range hs {
		assert.Equal(t, 1, h.stopCount())
	}
}

func TestPoolDefaultSize(t *testing.T) {
	assert.Equal(t, DefaultPoolSize, NewPool(0).Cap())
}
