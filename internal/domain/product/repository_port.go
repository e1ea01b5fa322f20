package product

import "context"

// Repository is the persistence port for the local product collection.
// The local collection is always read and written as a whole snapshot.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	// GetByID returns ErrNotFound when id is absent.
	GetByID(ctx context.Context, id string) (Product, error)
	Append(ctx context.Context, p Product) error
	// Replace overwrites the record with the same id; ErrNotFound when absent.
	Replace(ctx context.Context, p Product) error
	// Remove reports whether a record was removed.
	Remove(ctx context.Context, id string) (bool, error)
	// ReplaceAll overwrites the entire collection.
	ReplaceAll(ctx context.Context, items []Product) error
}
