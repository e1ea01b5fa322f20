// backend/internal/application/usecase/catalog_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	productdom "verseone/internal/domain/product"
)

// CatalogUsecase owns product CRUD over the local store, mirrored to the
// remote store when one is configured.
//
// Write policy:
//   - Create: remote first (its id wins), local-only fallback with a
//     time-derived id
//   - Update / Delete: remote best effort, local always applied
type CatalogUsecase struct {
	repo   productdom.Repository
	remote ProductRemote // nil = not configured
	clock  Clock
	ids    IDGenerator

	mu          sync.Mutex
	lastLocalID int64
}

func NewCatalogUsecase(repo productdom.Repository, remote ProductRemote, ids IDGenerator) *CatalogUsecase {
	return NewCatalogUsecaseWithClock(repo, remote, ids, nil)
}

// NewCatalogUsecaseWithClock is useful for tests.
func NewCatalogUsecaseWithClock(repo productdom.Repository, remote ProductRemote, ids IDGenerator, clock Clock) *CatalogUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &CatalogUsecase{repo: repo, remote: remote, clock: clock, ids: ids}
}

// List returns the local catalog snapshot.
func (uc *CatalogUsecase) List(ctx context.Context) ([]productdom.Product, error) {
	return uc.repo.List(ctx)
}

// GetByID is a local-store-only lookup.
func (uc *CatalogUsecase) GetByID(ctx context.Context, id string) (productdom.Product, error) {
	return uc.repo.GetByID(ctx, id)
}

// Create validates f and stores a new product. Exactly one local record is
// appended on success.
func (uc *CatalogUsecase) Create(ctx context.Context, f productdom.Fields) (productdom.Product, error) {
	p, err := productdom.New("", f)
	if err != nil {
		return productdom.Product{}, err
	}

	if uc.remote != nil {
		id, rerr := uc.remote.Put(ctx, p)
		if rerr == nil && strings.TrimSpace(id) != "" {
			p = p.WithID(id)
			if err := uc.repo.Append(ctx, p); err != nil {
				return productdom.Product{}, fmt.Errorf("catalog: append local: %w", err)
			}
			log.Printf("[catalog] product created id=%s (remote)", p.ID)
			return p, nil
		}
		log.Printf("[catalog] WARN: remote create failed, using local store: %v", rerr)
	}

	id, err := uc.newLocalID(ctx)
	if err != nil {
		return productdom.Product{}, err
	}
	p = p.WithID(id)
	if err := uc.repo.Append(ctx, p); err != nil {
		return productdom.Product{}, fmt.Errorf("catalog: append local: %w", err)
	}
	log.Printf("[catalog] product created id=%s (local)", p.ID)
	return p, nil
}

// Update merges f into the product with id. productdom.ErrNotFound when the
// id is not in the local store; remote failures do not block the local write.
func (uc *CatalogUsecase) Update(ctx context.Context, id string, f productdom.Fields) (productdom.Product, error) {
	id = strings.TrimSpace(id)
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return productdom.Product{}, err
	}

	updated := existing.Apply(f)
	if err := updated.Validate(); err != nil {
		return productdom.Product{}, err
	}

	if uc.remote != nil {
		if rerr := uc.remote.Update(ctx, id, updated); rerr != nil {
			log.Printf("[catalog] WARN: remote update failed id=%s: %v (local only)", id, rerr)
		}
	}

	if err := uc.repo.Replace(ctx, updated); err != nil {
		return productdom.Product{}, err
	}
	return updated, nil
}

// Delete removes id from both stores. The remote delete is always attempted
// and its failure ignored; false means id was not in the local store.
func (uc *CatalogUsecase) Delete(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if uc.remote != nil {
		if rerr := uc.remote.Delete(ctx, id); rerr != nil {
			log.Printf("[catalog] WARN: remote delete failed id=%s: %v", id, rerr)
		}
	}
	return uc.repo.Remove(ctx, id)
}

// EnsureDefaults seeds the default catalog into an empty local store.
func (uc *CatalogUsecase) EnsureDefaults(ctx context.Context) (bool, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return false, err
	}
	if len(items) > 0 {
		return false, nil
	}
	if err := uc.repo.ReplaceAll(ctx, productdom.DefaultCatalog()); err != nil {
		return false, err
	}
	log.Printf("[catalog] seeded %d default products", len(productdom.DefaultCatalog()))
	return true, nil
}

// AddReview appends a review to the product and saves it through Update.
func (uc *CatalogUsecase) AddReview(ctx context.Context, productID, customer, comment string, rating int) (productdom.Product, error) {
	existing, err := uc.repo.GetByID(ctx, productID)
	if err != nil {
		return productdom.Product{}, err
	}
	if uc.ids == nil {
		return productdom.Product{}, errors.New("catalog: id generator is not configured")
	}

	rv, err := productdom.NewReview(uc.ids.NewID(), customer, comment, rating, uc.clock.Now())
	if err != nil {
		return productdom.Product{}, err
	}

	f := existing.Fields()
	f.Reviews = append(f.Reviews, rv)
	return uc.Update(ctx, existing.ID, f)
}

// newLocalID returns a millisecond timestamp id that is strictly greater than
// the previous one issued and not used by any local product.
func (uc *CatalogUsecase) newLocalID(ctx context.Context) (string, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return "", err
	}
	used := make(map[string]struct{}, len(items))
	for _, p := range items {
		used[p.ID] = struct{}{}
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	n := uc.clock.Now().UnixMilli()
	if n <= uc.lastLocalID {
		n = uc.lastLocalID + 1
	}
	for {
		id := strconv.FormatInt(n, 10)
		if _, taken := used[id]; !taken {
			uc.lastLocalID = n
			return id, nil
		}
		n++
	}
}
