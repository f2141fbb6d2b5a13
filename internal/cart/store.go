package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	pkgerrors "github.com/acarreras/tienda-backend/pkg/errors"
)

// Storage persists cart snapshots keyed by the shopper's session id.
// A missing snapshot is not an error; Load returns an empty cart.
type Storage interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, cart *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// Store owns the load/mutate/save cycle for a session's cart. Every
// mutating operation persists the resulting collection before returning,
// so state survives process and client restarts.
type Store struct {
	storage Storage
}

// NewStore builds a cart store backed by the given storage.
func NewStore(storage Storage) (*Store, error) {
	if storage == nil {
		return nil, fmt.Errorf("cart storage required")
	}
	return &Store{storage: storage}, nil
}

// NewSessionID issues a fresh cart session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// Get returns the session's current cart, empty if none was saved yet.
func (s *Store) Get(ctx context.Context, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart session id required")
	}
	return s.storage.Load(ctx, sessionID)
}

// AddItem adds one unit of the product to the session's cart.
func (s *Store) AddItem(ctx context.Context, sessionID string, p Product) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.AddItem(p)
	})
}

// RemoveItem removes the product's line from the session's cart.
func (s *Store) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.RemoveItem(productID)
	})
}

// SetQuantity sets the product's line quantity; zero or less removes the line.
func (s *Store) SetQuantity(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.SetQuantity(productID, quantity)
	})
}

// Clear drops the session's cart entirely, including the stored snapshot.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart session id required")
	}
	return s.storage.Delete(ctx, sessionID)
}

func (s *Store) mutate(ctx context.Context, sessionID string, fn func(*Cart)) (*Cart, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart session id required")
	}

	cart, err := s.storage.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	fn(cart)

	if err := s.storage.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
