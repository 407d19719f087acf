// internal/app/store/intents/memory.go
package intents

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dalemusser/luctportal/internal/domain/models"
)

// Memory keeps intents in process. Used when Redis is not configured; a
// restart forgets pending work.
type Memory struct {
	mu     sync.Mutex
	items  map[string]Intent
	leases map[string]lease
	seq    uint64
	now    func() time.Time
}

type lease struct {
	token   uint64
	expires time.Time
}

// NewMemory returns an empty in-process store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]Intent), leases: make(map[string]lease), now: time.Now}
}

// Lock takes the in-process lease on id.
func (m *Memory) Lock(_ context.Context, id string, ttl time.Duration) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if l, ok := m.leases[id]; ok && now.Before(l.expires) {
		return nil, ErrBusy
	}
	m.seq++
	token := m.seq
	m.leases[id] = lease{token: token, expires: now.Add(ttl)}
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if l, ok := m.leases[id]; ok && l.token == token {
			delete(m.leases, id)
		}
	}, nil
}

func (m *Memory) Save(_ context.Context, in Intent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stamp(&in, m.now().UTC())
	m.items[in.ID] = clone(in)
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (Intent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	in, ok := m.items[id]
	if !ok || m.expired(in) {
		return Intent{}, ErrNotFound
	}
	return clone(in), nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

// List returns live intents, oldest first.
func (m *Memory) List(_ context.Context) ([]Intent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Intent, 0, len(m.items))
	for id, in := range m.items {
		if m.expired(in) {
			delete(m.items, id)
			continue
		}
		out = append(out, clone(in))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) expired(in Intent) bool {
	return m.now().UTC().Sub(in.UpdatedAt) > TTL
}

func clone(in Intent) Intent {
	in.Pending = append([]models.ID(nil), in.Pending...)
	in.Confirmed = append([]models.ID(nil), in.Confirmed...)
	return in
}
