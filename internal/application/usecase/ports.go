// backend/internal/application/usecase/ports.go
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	orderdom "verseone/internal/domain/order"
	productdom "verseone/internal/domain/product"
)

// ============================================================
// Remote store ports
//
// A nil port means "remote not configured": usecases check for nil and
// run local-only. A non-nil port returning an error means "remote
// unreachable": usecases log it and degrade, they never fail the caller
// because of it.
// ============================================================

// ProductRemote is the remote "products" document collection.
type ProductRemote interface {
	List(ctx context.Context) ([]productdom.Product, error)
	// Put merge-upserts at p.ID when productdom.LooksLikeRemoteID(p.ID),
	// otherwise inserts a new document. Returns the document id.
	Put(ctx context.Context, p productdom.Product) (string, error)
	// Update merge-upserts the well-known fields of p at id.
	Update(ctx context.Context, id string, p productdom.Product) error
	Delete(ctx context.Context, id string) error
}

// OrderRemote is the remote "orders" document collection (flat records).
type OrderRemote interface {
	// ListOrders returns records ordered by date descending.
	ListOrders(ctx context.Context) ([]orderdom.Record, error)
	InsertOrder(ctx context.Context, rec orderdom.Record) (string, error)
	UpdateOrderStatus(ctx context.Context, id string, status orderdom.Status) error
}

// OrderStatusBatchUpdater is an optional OrderRemote capability: update the
// status of several records atomically (all or none).
type OrderStatusBatchUpdater interface {
	UpdateOrderStatuses(ctx context.Context, ids []string, status orderdom.Status) error
}

// ProgressFunc receives upload progress as a fraction in [0, 1].
type ProgressFunc func(fraction float64)

// ImageStore is the remote blob store for product images.
type ImageStore interface {
	// Put uploads data at objectPath and returns a publicly resolvable URL.
	Put(ctx context.Context, objectPath, contentType string, data []byte, onProgress ProgressFunc) (string, error)
	// Delete removes the object behind url. URLs not owned by the store are
	// a no-op: (false, nil).
	Delete(ctx context.Context, url string) (bool, error)
}

// OrderNotifier is told about placed orders (e-mail etc.). Best effort.
type OrderNotifier interface {
	NotifyOrderPlaced(ctx context.Context, o orderdom.Order, csv string, filename string) error
}

// IDGenerator issues opaque unique ids (review ids).
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random UUIDv4 strings.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

// ============================================================
// Clock
// ============================================================

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
