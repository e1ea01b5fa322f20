package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"verseone/internal/adapters/out/local"
	"verseone/internal/application/usecase"
	orderdom "verseone/internal/domain/order"
	productdom "verseone/internal/domain/product"
)

var (
	errRemoteDown = errors.New("remote down")
	errLocalWrite = errors.New("local write failed")
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (s *seqIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("rv-%d", s.n)
}

// ------------------------------------------------------------
// fakeProductRemote
// ------------------------------------------------------------

type fakeProductRemote struct {
	mu      sync.Mutex
	docs    []productdom.Product
	nextID  int
	down    bool
	listErr bool
	failPut map[string]bool // by local id

	deleted []string
	updated []string
}

func newFakeProductRemote(docs ...productdom.Product) *fakeProductRemote {
	return &fakeProductRemote{docs: docs, failPut: map[string]bool{}}
}

func (f *fakeProductRemote) List(context.Context) ([]productdom.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down || f.listErr {
		return nil, errRemoteDown
	}
	out := make([]productdom.Product, len(f.docs))
	copy(out, f.docs)
	return out, nil
}

func (f *fakeProductRemote) Put(_ context.Context, p productdom.Product) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down || f.failPut[p.ID] {
		return "", errRemoteDown
	}
	if productdom.LooksLikeRemoteID(p.ID) {
		for i := range f.docs {
			if f.docs[i].ID == p.ID {
				f.docs[i] = p
				return p.ID, nil
			}
		}
		f.docs = append(f.docs, p)
		return p.ID, nil
	}
	f.nextID++
	id := fmt.Sprintf("remote%014d", f.nextID)
	f.docs = append(f.docs, p.WithID(id))
	return id, nil
}

func (f *fakeProductRemote) Update(_ context.Context, id string, p productdom.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, id)
	if f.down {
		return errRemoteDown
	}
	for i := range f.docs {
		if f.docs[i].ID == id {
			f.docs[i] = p.WithID(id)
			return nil
		}
	}
	f.docs = append(f.docs, p.WithID(id))
	return nil
}

func (f *fakeProductRemote) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	if f.down {
		return errRemoteDown
	}
	for i := range f.docs {
		if f.docs[i].ID == id {
			f.docs = append(f.docs[:i], f.docs[i+1:]...)
			break
		}
	}
	return nil
}

// ------------------------------------------------------------
// fakeOrderRemote
// ------------------------------------------------------------

type fakeOrderRemote struct {
	mu       sync.Mutex
	recs     []orderdom.Record
	nextID   int
	down     bool
	statuses map[string]orderdom.Status
}

func newFakeOrderRemote(recs ...orderdom.Record) *fakeOrderRemote {
	return &fakeOrderRemote{recs: recs, statuses: map[string]orderdom.Status{}}
}

func (f *fakeOrderRemote) ListOrders(context.Context) ([]orderdom.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return nil, errRemoteDown
	}
	out := make([]orderdom.Record, len(f.recs))
	copy(out, f.recs)
	return out, nil
}

func (f *fakeOrderRemote) InsertOrder(_ context.Context, rec orderdom.Record) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return "", errRemoteDown
	}
	f.nextID++
	rec.ID = fmt.Sprintf("ord%017d", f.nextID)
	if rec.Status == "" {
		rec.Status = orderdom.StatusPending
	}
	f.recs = append(f.recs, rec)
	return rec.ID, nil
}

func (f *fakeOrderRemote) UpdateOrderStatus(_ context.Context, id string, status orderdom.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return errRemoteDown
	}
	f.statuses[id] = status
	return nil
}

// ------------------------------------------------------------
// fakeImageStore
// ------------------------------------------------------------

type fakeImageStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{objects: map[string][]byte{}}
}

func (f *fakeImageStore) Put(_ context.Context, objectPath, _ string, data []byte, onProgress usecase.ProgressFunc) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	if onProgress != nil {
		onProgress(0.5)
		onProgress(1)
	}
	f.objects[objectPath] = data
	return "https://blob.test/" + objectPath, nil
}

func (f *fakeImageStore) Delete(_ context.Context, url string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key, ok := strings.CutPrefix(url, "https://blob.test/")
	if !ok {
		return false, nil
	}
	_, existed := f.objects[key]
	delete(f.objects, key)
	return existed, nil
}

// ------------------------------------------------------------
// fakeNotifier
// ------------------------------------------------------------

type fakeNotifier struct {
	calls    int
	filename string
	csv      string
}

func (n *fakeNotifier) NotifyOrderPlaced(_ context.Context, _ orderdom.Order, csv, filename string) error {
	n.calls++
	n.csv = csv
	n.filename = filename
	return nil
}

// ------------------------------------------------------------
// local fixtures
// ------------------------------------------------------------

type localRepos struct {
	store    *local.MemoryStore
	products *local.ProductRepositoryLocal
	orders   *local.OrderRepositoryLocal
	carts    *local.CartRepositoryLocal
}

func newLocalRepos() localRepos {
	st := local.NewMemoryStore()
	return localRepos{
		store:    st,
		products: local.NewProductRepositoryLocal(st),
		orders:   local.NewOrderRepositoryLocal(st),
		carts:    local.NewCartRepositoryLocal(st),
	}
}

func boardFields(title string, price float64) productdom.Fields {
	return productdom.Fields{
		Title:     title,
		VerseText: "The Lord is my shepherd",
		Category:  "Faith",
		Size:      "12 x 18 inches",
		Price:     price,
	}
}

func mustProduct(id, title string, price float64) productdom.Product {
	p, err := productdom.New(id, boardFields(title, price))
	if err != nil {
		panic(err)
	}
	return p
}
