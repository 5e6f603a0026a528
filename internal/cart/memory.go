package cart

import (
	"context"
	"sync"

	"github.com/int-arsh/akash-ecom/internal/domain"
)

// MemoryStore is the fallback when Redis is not reachable, and the store
// used by tests. Entries never expire; carts are short-lived enough that
// this only matters for long-running processes without Redis.
type MemoryStore struct {
	mu        sync.RWMutex
	carts     map[string][]domain.CartLine
	checkouts map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts:     make(map[string][]domain.CartLine),
		checkouts: make(map[string]string),
	}
}

func (m *MemoryStore) Get(_ context.Context, cartID string) (domain.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lines, ok := m.carts[cartID]
	if !ok {
		return nil, ErrCartNotFound
	}
	return domain.CartFromLines(lines), nil
}

func (m *MemoryStore) Save(_ context.Context, cartID string, c domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[cartID] = c.Lines()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, cartID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, cartID)
	return nil
}

func (m *MemoryStore) GetCheckout(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	url, ok := m.checkouts[key]
	if !ok {
		return "", ErrCheckoutNotFound
	}
	return url, nil
}

func (m *MemoryStore) SaveCheckout(_ context.Context, key, redirectURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkouts[key] = redirectURL
	return nil
}
