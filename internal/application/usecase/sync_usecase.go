// backend/internal/application/usecase/sync_usecase.go
package usecase

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	orderdom "verseone/internal/domain/order"
	productdom "verseone/internal/domain/product"
)

// SyncReport summarises one pipeline run.
type SyncReport struct {
	Collection    string `json:"collection"`
	Skipped       bool   `json:"skipped"` // remote unconfigured or list failed
	Migrated      int    `json:"migrated"`
	MigrateFailed int    `json:"migrateFailed"`
	Refreshed     int    `json:"refreshed"` // local records replaced from remote (0 = untouched)
}

// SyncUsecase runs the one-shot migrate-then-refresh pipelines.
//
//  1. migrate: remote empty and local non-empty -> insert every local record
//     (best effort, no retry)
//  2. refresh: remote non-empty -> replace local wholesale
//
// A failing remote List skips the pipeline entirely, so an unreachable remote
// never looks like an empty one.
type SyncUsecase struct {
	products      productdom.Repository
	orders        orderdom.Repository
	productRemote ProductRemote
	orderRemote   OrderRemote

	// held from the remote list until local is replaced; see WithOrderLock
	orderLock sync.Locker
}

func NewSyncUsecase(
	products productdom.Repository,
	orders orderdom.Repository,
	productRemote ProductRemote,
	orderRemote OrderRemote,
) *SyncUsecase {
	return &SyncUsecase{
		products:      products,
		orders:        orders,
		productRemote: productRemote,
		orderRemote:   orderRemote,
		orderLock:     &sync.Mutex{},
	}
}

// WithOrderLock shares the local order collection lock with the order
// usecase, so an order placed during a refresh is not overwritten.
func (uc *SyncUsecase) WithOrderLock(l sync.Locker) *SyncUsecase {
	if l != nil {
		uc.orderLock = l
	}
	return uc
}

// Run executes both pipelines concurrently. There is no ordering between the
// two and a failure in one does not cancel the other; the first local store
// error is returned once both have finished.
func (uc *SyncUsecase) Run(ctx context.Context) (SyncReport, SyncReport, error) {
	var pr, ordRep SyncReport
	var g errgroup.Group
	g.Go(func() error {
		var err error
		pr, err = uc.SyncProducts(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		ordRep, err = uc.SyncOrders(ctx)
		return err
	})
	err := g.Wait()
	return pr, ordRep, err
}

// SyncProducts runs the product pipeline.
func (uc *SyncUsecase) SyncProducts(ctx context.Context) (SyncReport, error) {
	rep := SyncReport{Collection: "products"}
	if uc.productRemote == nil {
		rep.Skipped = true
		return rep, nil
	}

	remote, err := uc.productRemote.List(ctx)
	if err != nil {
		log.Printf("[sync] WARN: products: remote list failed, skipping: %v", err)
		rep.Skipped = true
		return rep, nil
	}

	if len(remote) == 0 {
		local, err := uc.products.List(ctx)
		if err != nil {
			return rep, err
		}
		if len(local) == 0 {
			return rep, nil
		}

		for _, p := range local {
			if _, err := uc.productRemote.Put(ctx, p); err != nil {
				log.Printf("[sync] WARN: products: migrate id=%s failed: %v", p.ID, err)
				rep.MigrateFailed++
				continue
			}
			rep.Migrated++
		}
		log.Printf("[sync] products: migrated %d/%d local records", rep.Migrated, len(local))

		remote, err = uc.productRemote.List(ctx)
		if err != nil {
			log.Printf("[sync] WARN: products: re-list after migrate failed: %v", err)
			return rep, nil
		}
	}

	if len(remote) == 0 {
		return rep, nil
	}
	if err := uc.products.ReplaceAll(ctx, remote); err != nil {
		return rep, err
	}
	rep.Refreshed = len(remote)
	log.Printf("[sync] products: local refreshed from remote (%d)", rep.Refreshed)
	return rep, nil
}

// SyncOrders runs the order pipeline over flat records.
func (uc *SyncUsecase) SyncOrders(ctx context.Context) (SyncReport, error) {
	rep := SyncReport{Collection: "orders"}
	if uc.orderRemote == nil {
		rep.Skipped = true
		return rep, nil
	}

	uc.orderLock.Lock()
	defer uc.orderLock.Unlock()

	remote, err := uc.orderRemote.ListOrders(ctx)
	if err != nil {
		log.Printf("[sync] WARN: orders: remote list failed, skipping: %v", err)
		rep.Skipped = true
		return rep, nil
	}

	if len(remote) == 0 {
		local, err := uc.orders.ListRecords(ctx)
		if err != nil {
			return rep, err
		}
		if len(local) == 0 {
			return rep, nil
		}

		for _, r := range local {
			if _, err := uc.orderRemote.InsertOrder(ctx, r); err != nil {
				log.Printf("[sync] WARN: orders: migrate orderId=%s failed: %v", r.OrderID, err)
				rep.MigrateFailed++
				continue
			}
			rep.Migrated++
		}
		log.Printf("[sync] orders: migrated %d/%d local records", rep.Migrated, len(local))

		remote, err = uc.orderRemote.ListOrders(ctx)
		if err != nil {
			log.Printf("[sync] WARN: orders: re-list after migrate failed: %v", err)
			return rep, nil
		}
	}

	if len(remote) == 0 {
		return rep, nil
	}
	if err := uc.orders.SaveRecords(ctx, remote); err != nil {
		return rep, err
	}
	rep.Refreshed = len(remote)
	log.Printf("[sync] orders: local refreshed from remote (%d)", rep.Refreshed)
	return rep, nil
}
