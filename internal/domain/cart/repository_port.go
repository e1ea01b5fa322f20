// backend/internal/domain/cart/repository_port.go
package cart

import "context"

// Repository is a persistence port for Cart.
//
// Storage (local store):
//   - key: "cart" for DefaultID, "cart:<id>" otherwise
//   - value: JSON array of {productId, quantity}
//
// Carts are never mirrored to the remote store.
type Repository interface {
	// Get returns the cart for id; a missing cart is returned empty, not as an error.
	Get(ctx context.Context, id string) (*Cart, error)
	// Save overwrites the cart snapshot.
	Save(ctx context.Context, c *Cart) error
}
