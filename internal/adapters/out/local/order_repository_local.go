// backend/internal/adapters/out/local/order_repository_local.go
package local

import (
	"context"
	"sync"

	orderdom "verseone/internal/domain/order"
)

// OrderRepositoryLocal implements order.Repository over the "orders" key.
type OrderRepositoryLocal struct {
	col *Collection[orderdom.Record]
	mu  sync.Mutex
}

func NewOrderRepositoryLocal(store Store) *OrderRepositoryLocal {
	return &OrderRepositoryLocal{col: NewCollection[orderdom.Record](store, KeyOrders)}
}

func (r *OrderRepositoryLocal) ListRecords(ctx context.Context) ([]orderdom.Record, error) {
	return r.col.Load(ctx), nil
}

func (r *OrderRepositoryLocal) AppendRecords(ctx context.Context, recs []orderdom.Record) error {
	if len(recs) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.col.Load(ctx)
	items = append(items, recs...)
	return r.col.Save(ctx, items)
}

func (r *OrderRepositoryLocal) SaveRecords(ctx context.Context, recs []orderdom.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.col.Save(ctx, recs)
}
