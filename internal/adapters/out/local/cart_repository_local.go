// backend/internal/adapters/out/local/cart_repository_local.go
package local

import (
	"context"
	"errors"
	"strings"

	cartdom "verseone/internal/domain/cart"
)

// CartRepositoryLocal implements cart.Repository.
// The stored value is the bare line array, so the default cart stays
// readable as [{productId, quantity}] under "cart".
type CartRepositoryLocal struct {
	store Store
}

func NewCartRepositoryLocal(store Store) *CartRepositoryLocal {
	return &CartRepositoryLocal{store: store}
}

func (r *CartRepositoryLocal) Get(ctx context.Context, id string) (*cartdom.Cart, error) {
	if r == nil || r.store == nil {
		return nil, errors.New("cart_repository_local: store is nil")
	}
	lines := NewCollection[cartdom.Line](r.store, cartKey(id)).Load(ctx)
	return cartdom.NewCart(id, lines), nil
}

func (r *CartRepositoryLocal) Save(ctx context.Context, c *cartdom.Cart) error {
	if r == nil || r.store == nil {
		return errors.New("cart_repository_local: store is nil")
	}
	if c == nil {
		return errors.New("cart_repository_local: cart is nil")
	}
	return NewCollection[cartdom.Line](r.store, cartKey(c.ID)).Save(ctx, c.Lines)
}

func cartKey(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || id == cartdom.DefaultID {
		return KeyCart
	}
	return KeyCart + ":" + id
}
