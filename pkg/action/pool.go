package action

import (
	"sync"
)

// DefaultPoolSize bounds the number of concurrent click playbacks.
const DefaultPoolSize = 8

// Handle is an in-flight playback.
type Handle interface {
	// Done is closed when playback finishes.
	Done() <-chan struct{}

	// Stop ends playback early. It is safe to call after completion.
	Stop() error
}

// Pool is a fixed-capacity ring of live handles. Adding to a full pool
// evicts and stops the oldest handle.
type Pool struct {
	mu    sync.Mutex
	slots []poolEntry
	head  int
	count int
	seq   uint64
}

type poolEntry struct {
	id uint64
	h  Handle
}

// NewPool creates a pool holding at most size handles.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = DefaultPoolSize
	}
	return &Pool{slots: make([]poolEntry, size)}
}

// Cap returns the pool capacity.
func (p *Pool) Cap() int {
	return len(p.slots)
}

// Len returns the number of live handles.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

// Add tracks h and returns its id. When the pool is full the oldest handle
// is removed and stopped.
func (p *Pool) Add(h Handle) uint64 {
	p.mu.Lock()
	var evicted Handle
	if p.count == len(p.slots) {
		evicted = p.slots[p.head].h
		p.slots[p.head] = poolEntry{}
		p.head = (p.head + 1) % len(p.slots)
		p.count--
	}
	p.seq++
	id := p.seq
	p.slots[(p.head+p.count)%len(p.slots)] = poolEntry{id: id, h: h}
	p.count++
	p.mu.Unlock()

	if evicted != nil {
		_ = evicted.Stop()
	}
	return id
}

// Remove drops the handle with id, if still tracked. It does not stop it.
func (p *Pool) Remove(id uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.slots)
	for i := 0; i < p.count; i++ {
		idx := (p.head + i) % n
		if p.slots[idx].id != id {
			continue
		}
		// Shift later entries down to keep the ring contiguous.
		for j := i; j < p.count-1; j++ {
			p.slots[(p.head+j)%n] = p.slots[(p.head+j+1)%n]
		}
		p.slots[(p.head+p.count-1)%n] = poolEntry{}
		p.count--
		return true
	}
	return false
}

// StopAll stops and removes every handle.
func (p *Pool) StopAll() error {
	p.mu.Lock()
	handles := make([]Handle, 0, p.count)
	n := len(p.slots)
	for i := 0; i < p.count; i++ {
		idx := (p.head + i) % n
		handles = append(handles, p.slots[idx].h)
		p.slots[idx] = poolEntry{}
	}
	p.head, p.count = 0, 0
	p.mu.Unlock()

	var firstErr error
	for _, h := range handles {
		if err := h.Stop(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
