// backend/internal/application/usecase/order_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	orderdom "verseone/internal/domain/order"
)

var (
	ErrEmptyCart         = errors.New("order_usecase: cart is empty")
	ErrRemoteUnavailable = errors.New("order_usecase: remote store is not configured")
)

// OrderUsecase places and reads orders. The local store is written first;
// the remote copy is best effort.
type OrderUsecase struct {
	repo     orderdom.Repository
	remote   OrderRemote   // nil = not configured
	carts    *CartUsecase  // Checkout only
	notifier OrderNotifier // optional
	clock    Clock

	// guards the local order collection: orderId numbering is
	// read-then-append, and sync replaces the collection wholesale.
	// Shared with SyncUsecase through StoreLock.
	mu *sync.Mutex
}

func NewOrderUsecase(repo orderdom.Repository, remote OrderRemote, carts *CartUsecase) *OrderUsecase {
	return NewOrderUsecaseWithClock(repo, remote, carts, nil)
}

// NewOrderUsecaseWithClock is useful for tests.
func NewOrderUsecaseWithClock(repo orderdom.Repository, remote OrderRemote, carts *CartUsecase, clock Clock) *OrderUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &OrderUsecase{repo: repo, remote: remote, carts: carts, clock: clock, mu: &sync.Mutex{}}
}

// StoreLock returns the lock guarding the local order collection.
func (uc *OrderUsecase) StoreLock() sync.Locker {
	return uc.mu
}

// WithNotifier attaches an order-placed notifier.
func (uc *OrderUsecase) WithNotifier(n OrderNotifier) *OrderUsecase {
	uc.notifier = n
	return uc
}

// CheckoutResult is what Checkout hands back to the caller.
type CheckoutResult struct {
	Order    orderdom.Order `json:"order"`
	Total    float64        `json:"total"`
	CSV      string         `json:"-"`
	Filename string         `json:"csvFilename"`
}

// PlaceOrder stores one record per item, all sharing a fresh orderId and a
// single timestamp, and returns the orderId.
func (uc *OrderUsecase) PlaceOrder(ctx context.Context, customer orderdom.Customer, items []orderdom.LineItem) (string, error) {
	o, err := uc.place(ctx, customer, items)
	if err != nil {
		return "", err
	}
	return o.OrderID, nil
}

func (uc *OrderUsecase) place(ctx context.Context, customer orderdom.Customer, items []orderdom.LineItem) (orderdom.Order, error) {
	// held until the remote ids are written back, so a concurrent sync never
	// sees the local records without their remote copies.
	uc.mu.Lock()
	defer uc.mu.Unlock()

	existing, err := uc.repo.ListRecords(ctx)
	if err != nil {
		return orderdom.Order{}, err
	}

	o, err := orderdom.New(orderdom.NextOrderID(existing), customer, items, uc.clock.Now())
	if err != nil {
		return orderdom.Order{}, err
	}

	recs := orderdom.Expand(o)
	if err := uc.repo.AppendRecords(ctx, recs); err != nil {
		return orderdom.Order{}, fmt.Errorf("order_usecase: append records: %w", err)
	}

	log.Printf("[order] placed orderId=%s items=%d", o.OrderID, len(recs))
	uc.mirrorLocked(ctx, o.OrderID, recs)
	return o, nil
}

// mirrorLocked inserts recs into the remote store and writes the issued ids
// back onto the matching local records. uc.mu must be held.
func (uc *OrderUsecase) mirrorLocked(ctx context.Context, orderID string, recs []orderdom.Record) {
	if uc.remote == nil {
		return
	}

	ids := make([]string, len(recs))
	inserted := 0
	for i, r := range recs {
		if r.Status == "" {
			r.Status = orderdom.StatusPending
		}
		id, err := uc.remote.InsertOrder(ctx, r)
		if err != nil {
			log.Printf("[order] WARN: remote insert failed orderId=%s line=%d: %v", orderID, i, err)
			continue
		}
		ids[i] = id
		inserted++
	}
	if inserted == 0 {
		return
	}

	all, err := uc.repo.ListRecords(ctx)
	if err != nil {
		log.Printf("[order] WARN: reload for remote ids failed orderId=%s: %v", orderID, err)
		return
	}
	line := 0
	for i := range all {
		if all[i].OrderID != orderID || all[i].ID != "" {
			continue
		}
		if line < len(ids) && ids[line] != "" {
			all[i].ID = ids[line]
			all[i].Status = orderdom.StatusPending
		}
		line++
	}
	if err := uc.repo.SaveRecords(ctx, all); err != nil {
		log.Printf("[order] WARN: save remote ids failed orderId=%s: %v", orderID, err)
	}
}

// Checkout turns the cart into an order, clears the cart and notifies.
// Nothing is written when the customer is invalid or the cart is empty.
func (uc *OrderUsecase) Checkout(ctx context.Context, cartID string, customer orderdom.Customer) (CheckoutResult, error) {
	if uc.carts == nil {
		return CheckoutResult{}, errors.New("order_usecase: cart usecase is not configured")
	}
	if err := orderdom.ValidateCustomer(customer); err != nil {
		return CheckoutResult{}, err
	}

	views, err := uc.carts.Materialize(ctx, cartID)
	if err != nil {
		return CheckoutResult{}, err
	}
	if len(views) == 0 {
		return CheckoutResult{}, ErrEmptyCart
	}

	items := make([]orderdom.LineItem, 0, len(views))
	for _, v := range views {
		items = append(items, v.LineItem())
	}

	o, err := uc.place(ctx, customer, items)
	if err != nil {
		return CheckoutResult{}, err
	}

	if err := uc.carts.Clear(ctx, cartID); err != nil {
		log.Printf("[order] WARN: clear cart failed cartId=%s: %v", cartID, err)
	}

	res := CheckoutResult{
		Order:    o,
		Total:    o.Total().InexactFloat64(),
		CSV:      orderdom.RenderCSV(o),
		Filename: orderdom.CSVFilename(o.OrderID, uc.clock.Now()),
	}

	if uc.notifier != nil {
		if err := uc.notifier.NotifyOrderPlaced(ctx, o, res.CSV, res.Filename); err != nil {
			log.Printf("[order] WARN: notify failed orderId=%s: %v", o.OrderID, err)
		}
	}
	return res, nil
}

// List returns local orders regrouped by orderId.
func (uc *OrderUsecase) List(ctx context.Context) ([]orderdom.Order, error) {
	recs, err := uc.repo.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	return orderdom.Group(recs), nil
}

// Get returns one order or orderdom.ErrNotFound.
func (uc *OrderUsecase) Get(ctx context.Context, orderID string) (orderdom.Order, error) {
	recs, err := uc.repo.ListRecords(ctx)
	if err != nil {
		return orderdom.Order{}, err
	}
	o, ok := orderdom.Find(recs, orderID)
	if !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	return o, nil
}

// ExportCSV renders the order and returns (filename, csv).
func (uc *OrderUsecase) ExportCSV(ctx context.Context, orderID string) (string, string, error) {
	o, err := uc.Get(ctx, orderID)
	if err != nil {
		return "", "", err
	}
	return orderdom.CSVFilename(o.OrderID, uc.clock.Now()), orderdom.RenderCSV(o), nil
}

// UpdateStatus sets status on every remote record of orderID and mirrors it
// locally. Remotes implementing OrderStatusBatchUpdater change all records of
// the order at once; others are updated record by record. Status lives on the remote store, so a missing remote is an error
// here. Returns how many records were updated.
func (uc *OrderUsecase) UpdateStatus(ctx context.Context, orderID string, status orderdom.Status) (int, error) {
	if !status.Valid() {
		return 0, orderdom.ErrInvalidStatus
	}
	if uc.remote == nil {
		return 0, ErrRemoteUnavailable
	}
	orderID = strings.TrimSpace(orderID)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	all, err := uc.repo.ListRecords(ctx)
	if err != nil {
		return 0, err
	}

	var idx []int
	found := 0
	for i := range all {
		if all[i].OrderID != orderID {
			continue
		}
		found++
		if all[i].ID != "" {
			idx = append(idx, i)
		}
	}
	if found == 0 {
		return 0, orderdom.ErrNotFound
	}
	if len(idx) == 0 {
		return 0, fmt.Errorf("order_usecase: order %s has no remote records", orderID)
	}

	var updated int
	if batch, ok := uc.remote.(OrderStatusBatchUpdater); ok {
		ids := make([]string, len(idx))
		for k, i := range idx {
			ids[k] = all[i].ID
		}
		if err := batch.UpdateOrderStatuses(ctx, ids, status); err != nil {
			log.Printf("[order] WARN: remote status update failed orderId=%s: %v", orderID, err)
			return 0, fmt.Errorf("order_usecase: update status: %w", err)
		}
		for _, i := range idx {
			all[i].Status = status
		}
		updated = len(idx)
	} else {
		var lastErr error
		for _, i := range idx {
			if err := uc.remote.UpdateOrderStatus(ctx, all[i].ID, status); err != nil {
				log.Printf("[order] WARN: remote status update failed id=%s: %v", all[i].ID, err)
				lastErr = err
				continue
			}
			all[i].Status = status
			updated++
		}
		if updated == 0 {
			return 0, fmt.Errorf("order_usecase: update status: %w", lastErr)
		}
	}

	if err := uc.repo.SaveRecords(ctx, all); err != nil {
		return updated, err
	}
	log.Printf("[order] status updated orderId=%s status=%s records=%d", orderID, status, updated)
	return updated, nil
}
