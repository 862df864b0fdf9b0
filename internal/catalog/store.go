package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/andriwidy/backend-troli/internal/common"
)

// Store holds products in memory keyed by SKU. All methods are safe for
// concurrent use.
type Store struct {
	mu       sync.RWMutex
	products map[string]Product
}

// NewStore constructs an empty product store.
func NewStore() *Store {
	return &Store{products: make(map[string]Product)}
}

// Create inserts a new product. Re-using an existing SKU is a conflict; SKUs
// are immutable once published.
func (s *Store) Create(p Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.SKU]; ok {
		return fmt.Errorf("product %s already exists: %w", p.SKU, common.ErrConflict)
	}
	s.products[p.SKU] = p
	return nil
}

// Get returns the product with the given SKU.
func (s *Store) Get(sku string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[sku]
	if !ok {
		return Product{}, fmt.Errorf("product %s: %w", sku, common.ErrNotFound)
	}
	return p, nil
}

// List returns all products ordered by SKU.
func (s *Store) List() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}

// Delete removes the product with the given SKU.
func (s *Store) Delete(sku string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[sku]; !ok {
		return fmt.Errorf("product %s: %w", sku, common.ErrNotFound)
	}
	delete(s.products, sku)
	return nil
}
