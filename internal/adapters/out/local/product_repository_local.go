// backend/internal/adapters/out/local/product_repository_local.go
package local

import (
	"context"
	"strings"
	"sync"

	productdom "verseone/internal/domain/product"
)

// ProductRepositoryLocal implements product.Repository over the "products" key.
// Every mutation is a read-modify-write of the whole array, serialized by mu.
type ProductRepositoryLocal struct {
	col *Collection[productdom.Product]
	mu  sync.Mutex
}

func NewProductRepositoryLocal(store Store) *ProductRepositoryLocal {
	return &ProductRepositoryLocal{col: NewCollection[productdom.Product](store, KeyProducts)}
}

func (r *ProductRepositoryLocal) List(ctx context.Context) ([]productdom.Product, error) {
	return r.col.Load(ctx), nil
}

// GetByID is a linear scan of the local snapshot.
func (r *ProductRepositoryLocal) GetByID(ctx context.Context, id string) (productdom.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return productdom.Product{}, productdom.ErrNotFound
	}
	for _, p := range r.col.Load(ctx) {
		if p.ID == id {
			return p, nil
		}
	}
	return productdom.Product{}, productdom.ErrNotFound
}

func (r *ProductRepositoryLocal) Append(ctx context.Context, p productdom.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.col.Load(ctx)
	items = append(items, p)
	return r.col.Save(ctx, items)
}

func (r *ProductRepositoryLocal) Replace(ctx context.Context, p productdom.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.col.Load(ctx)
	for i := range items {
		if items[i].ID == p.ID {
			items[i] = p
			return r.col.Save(ctx, items)
		}
	}
	return productdom.ErrNotFound
}

func (r *ProductRepositoryLocal) Remove(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.col.Load(ctx)
	kept := make([]productdom.Product, 0, len(items))
	for _, p := range items {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}
	return true, r.col.Save(ctx, kept)
}

func (r *ProductRepositoryLocal) ReplaceAll(ctx context.Context, items []productdom.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.col.Save(ctx, items)
}
