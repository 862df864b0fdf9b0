package cart

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/andriwidy/backend-troli/internal/common"
)

// Store holds carts in memory keyed by id. The lock guards the map only;
// each cart assumes a single logical owner.
type Store struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]*Cart
	now   func() time.Time
}

// NewStore constructs an empty cart store.
func NewStore() *Store {
	return &Store{carts: make(map[uuid.UUID]*Cart), now: time.Now}
}

// Create opens an empty cart for the given user.
func (s *Store) Create(userID uuid.UUID) *Cart {
	now := s.now()
	c := &Cart{ID: uuid.New(), UserID: userID, CreatedAt: now, UpdatedAt: now}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[c.ID] = c
	return c
}

// Get returns the cart with the given id.
func (s *Store) Get(id uuid.UUID) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[id]
	if !ok {
		return nil, fmt.Errorf("cart %s: %w", id, common.ErrNotFound)
	}
	return c, nil
}

// Delete removes the cart with the given id.
func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[id]; !ok {
		return fmt.Errorf("cart %s: %w", id, common.ErrNotFound)
	}
	delete(s.carts, id)
	return nil
}

// Touch records a mutation timestamp on the cart.
func (s *Store) Touch(c *Cart) {
	c.UpdatedAt = s.now()
}
