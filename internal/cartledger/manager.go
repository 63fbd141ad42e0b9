package cartledger

import (
	"sync"

	"github.com/redis/go-redis/v9"
)

// Opener builds the backing store for one owner's cart.
type Opener func(owner string) Store

// MemoryOpener gives every owner an independent in-memory store.
func MemoryOpener() Opener {
	var mu sync.Mutex
	stores := make(map[string]*MemoryStore)
	return func(owner string) Store {
		mu.Lock()
		defer mu.Unlock()
		s, ok := stores[owner]
		if !ok {
			s = NewMemoryStore()
			stores[owner] = s
		}
		return s
	}
}

// RedisOpener keys every owner's cart under prefix:owner.
func RedisOpener(client *redis.Client, prefix string) Opener {
	return func(owner string) Store {
		return NewRedisStore(client, prefix+":"+owner)
	}
}

// Manager hands out one Ledger per cart owner, memoized so listeners
// registered on an owner's ledger survive across requests.
type Manager struct {
	open Opener

	mu      sync.Mutex
	ledgers map[string]*Ledger
}

func NewManager(open Opener) *Manager {
	return &Manager{open: open, ledgers: make(map[string]*Ledger)}
}

func (m *Manager) For(owner string) *Ledger {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.ledgers[owner]
	if !ok {
		l = New(m.open(owner))
		m.ledgers[owner] = l
	}
	return l
}
