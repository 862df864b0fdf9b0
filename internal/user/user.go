package user

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/andriwidy/backend-troli/internal/common"
)

// User is a plain account record. IsLoyal drives the loyalty discount; there
// is no authentication attached to these records.
type User struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	IsLoyal bool      `json:"isLoyal"`
}

// Store holds users in memory keyed by id. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	users map[uuid.UUID]User
}

// NewStore constructs an empty user store.
func NewStore() *Store {
	return &Store{users: make(map[uuid.UUID]User)}
}

// Create registers a user and assigns it an id.
func (s *Store) Create(name, email string, loyal bool) (User, error) {
	u := User{ID: uuid.New(), Name: name, Email: email, IsLoyal: loyal}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return u, nil
}

// Get returns the user with the given id.
func (s *Store) Get(id uuid.UUID) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return User{}, fmt.Errorf("user %s: %w", id, common.ErrNotFound)
	}
	return u, nil
}

// List returns all registered users.
func (s *Store) List() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out
}
