package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andriwidy/backend-troli/internal/common"
	"github.com/andriwidy/backend-troli/internal/events"
	"github.com/andriwidy/backend-troli/internal/pricing"
	"github.com/andriwidy/backend-troli/internal/user"
)

// Service encapsulates cart domain operations. Mutations emit domain events
// best-effort; an event sink failure never fails the mutation.
type Service struct {
	Carts    *Store
	Users    *user.Store
	Events   *events.Bus
	Currency string

	// TotalsCounter, when set, counts pricing computations served.
	TotalsCounter prometheus.Counter
}

// Create opens an empty cart for an existing user.
func (s *Service) Create(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	if s == nil || s.Carts == nil || s.Users == nil {
		return nil, errors.New("cart service not configured")
	}
	if _, err := s.Users.Get(userID); err != nil {
		return nil, fmt.Errorf("resolve cart owner: %w", err)
	}
	return s.Carts.Create(userID), nil
}

// Get returns the cart with the given id.
func (s *Service) Get(_ context.Context, cartID uuid.UUID) (*Cart, error) {
	if s == nil || s.Carts == nil {
		return nil, errors.New("cart service not configured")
	}
	return s.Carts.Get(cartID)
}

// Delete removes the cart entirely.
func (s *Service) Delete(_ context.Context, cartID uuid.UUID) error {
	if s == nil || s.Carts == nil {
		return errors.New("cart service not configured")
	}
	return s.Carts.Delete(cartID)
}

// AddItem inserts or increments a cart line.
func (s *Service) AddItem(ctx context.Context, cartID uuid.UUID, item LineItem) error {
	if s == nil || s.Carts == nil {
		return errors.New("cart service not configured")
	}
	c, err := s.Carts.Get(cartID)
	if err != nil {
		return err
	}
	if err := c.AddItem(item.Product, item.Qty); err != nil {
		return err
	}
	s.Carts.Touch(c)
	s.emit(ctx, events.TopicCartItemAdded, c.ID, map[string]any{"sku": item.Product.SKU, "qty": item.Qty})
	return nil
}

// RemoveItem decrements a cart line by SKU.
func (s *Service) RemoveItem(ctx context.Context, cartID uuid.UUID, sku string, qty int) error {
	if s == nil || s.Carts == nil {
		return errors.New("cart service not configured")
	}
	c, err := s.Carts.Get(cartID)
	if err != nil {
		return err
	}
	if err := c.RemoveItem(sku, qty); err != nil {
		return err
	}
	s.Carts.Touch(c)
	s.emit(ctx, events.TopicCartItemRemoved, c.ID, map[string]any{"sku": sku, "qty": qty})
	return nil
}

// AddDiscount enables a discount rule on the cart.
func (s *Service) AddDiscount(ctx context.Context, cartID uuid.UUID, id pricing.Identifier) error {
	if s == nil || s.Carts == nil {
		return errors.New("cart service not configured")
	}
	c, err := s.Carts.Get(cartID)
	if err != nil {
		return err
	}
	if err := c.AddDiscount(id); err != nil {
		return err
	}
	s.Carts.Touch(c)
	s.emit(ctx, events.TopicCartDiscountApplied, c.ID, map[string]any{"code": string(id)})
	return nil
}

// RemoveDiscount disables an active discount rule.
func (s *Service) RemoveDiscount(ctx context.Context, cartID uuid.UUID, id pricing.Identifier) error {
	if s == nil || s.Carts == nil {
		return errors.New("cart service not configured")
	}
	c, err := s.Carts.Get(cartID)
	if err != nil {
		return err
	}
	if err := c.RemoveDiscount(id); err != nil {
		return err
	}
	s.Carts.Touch(c)
	s.emit(ctx, events.TopicCartDiscountRemoved, c.ID, map[string]any{"code": string(id)})
	return nil
}

// Empty clears the cart's items and discounts.
func (s *Service) Empty(ctx context.Context, cartID uuid.UUID) error {
	if s == nil || s.Carts == nil {
		return errors.New("cart service not configured")
	}
	c, err := s.Carts.Get(cartID)
	if err != nil {
		return err
	}
	c.Empty()
	s.Carts.Touch(c)
	s.emit(ctx, events.TopicCartEmptied, c.ID, nil)
	return nil
}

// Total recomputes the cart's pricing from its current items and discounts.
// The computation is pure: reading the total twice without a mutation in
// between yields the identical value.
func (s *Service) Total(_ context.Context, cartID uuid.UUID) (pricing.Summary, error) {
	if s == nil || s.Carts == nil || s.Users == nil {
		return pricing.Summary{}, errors.New("cart service not configured")
	}
	c, err := s.Carts.Get(cartID)
	if err != nil {
		return pricing.Summary{}, err
	}
	loyal := false
	owner, err := s.Users.Get(c.UserID)
	switch {
	case err == nil:
		loyal = owner.IsLoyal
	case errors.Is(err, common.ErrNotFound):
		// Owner record gone; price without the loyalty flag.
	default:
		return pricing.Summary{}, err
	}
	summary := pricing.Compute(c.PricingItems(), c.Discounts, loyal)
	// Counts served computations only; failed lookups above do not reach here.
	if s.TotalsCounter != nil {
		s.TotalsCounter.Inc()
	}
	return summary, nil
}

func (s *Service) emit(ctx context.Context, topic string, aggregateID uuid.UUID, payload any) {
	if s.Events == nil {
		return
	}
	_, _ = s.Events.Emit(ctx, topic, aggregateID, payload)
}
