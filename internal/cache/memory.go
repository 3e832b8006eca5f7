package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	val     []byte
	expires time.Time
}

// memoryStore is a process-local Store. Expired entries are dropped on read
// and, when a sweeper runs, periodically.
type memoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryEntry
	now   func() time.Time

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

var _ Store = (*memoryStore)(nil)

// NewMemory returns an in-process Store.
func NewMemory() Store {
	return newMemory(time.Now)
}

// NewMemoryWithSweep returns an in-process Store that also drops expired
// entries every interval, so keys nobody reads again do not pile up. Close
// stops the sweeper.
func NewMemoryWithSweep(every time.Duration) Store {
	m := newMemory(time.Now)
	if every > 0 {
		m.stop = make(chan struct{})
		m.done = make(chan struct{})
		go m.sweepEvery(every)
	}
	return m
}

func newMemory(now func() time.Time) *memoryStore {
	return &memoryStore{items: make(map[string]memoryEntry), now: now}
}

func (m *memoryStore) sweepEvery(every time.Duration) {
	defer close(m.done)
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			m.sweep()
		case <-m.stop:
			return
		}
	}
}

// sweep deletes expired entries and reports how many went.
func (m *memoryStore) sweep() int {
	now := m.now()
	n := 0
	m.mu.Lock()
	for k, e := range m.items {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(m.items, k)
			n++
		}
	}
	m.mu.Unlock()
	return n
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrMiss
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		m.mu.Lock()
		if cur, ok := m.items[key]; ok && cur.expires.Equal(e.expires) {
			delete(m.items, key)
		}
		m.mu.Unlock()
		return nil, ErrMiss
	}
	out := make([]byte, len(e.val))
	copy(out, e.val)
	return out, nil
}

func (m *memoryStore) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	e := memoryEntry{val: append([]byte(nil), val...)}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.items[key] = e
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) Update(_ context.Context, key string, ttl time.Duration, fn UpdateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var cur []byte
	if e, ok := m.items[key]; ok && (e.expires.IsZero() || m.now().Before(e.expires)) {
		cur = append([]byte(nil), e.val...)
	}
	next, err := fn(cur)
	if err != nil {
		return err
	}
	e := memoryEntry{val: append([]byte(nil), next...)}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.items[key] = e
	return nil
}

func (m *memoryStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.items, k)
	}
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	for k := range m.items {
		if strings.HasPrefix(k, prefix) {
			delete(m.items, k)
		}
	}
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) Ping(context.Context) error { return nil }

func (m *memoryStore) Close() error {
	m.closeOnce.Do(func() {
		if m.stop != nil {
			close(m.stop)
			<-m.done
		}
	})
	return nil
}
