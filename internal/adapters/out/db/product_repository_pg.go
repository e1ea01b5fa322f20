// backend/internal/adapters/out/db/product_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	dbcommon "verseone/internal/adapters/out/db/common"
	productdom "verseone/internal/domain/product"
)

// ProductRepositoryPG is the remote "products" collection on PostgreSQL.
// It implements usecase.ProductRemote.
type ProductRepositoryPG struct {
	DB *sql.DB
}

func NewProductRepositoryPG(db *sql.DB) *ProductRepositoryPG {
	return &ProductRepositoryPG{DB: db}
}

// ========================
// usecase.ProductRemote
// ========================

func (r *ProductRepositoryPG) List(ctx context.Context) ([]productdom.Product, error) {
	if r == nil || r.DB == nil {
		return nil, errors.New("db is nil")
	}
	run := dbcommon.GetRunner(ctx, r.DB)

	const q = `
SELECT id, doc, created_at, updated_at
FROM products
ORDER BY created_at ASC, id ASC`
	rows, err := run.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []productdom.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *ProductRepositoryPG) GetByID(ctx context.Context, id string) (productdom.Product, error) {
	if r == nil || r.DB == nil {
		return productdom.Product{}, errors.New("db is nil")
	}
	run := dbcommon.GetRunner(ctx, r.DB)

	const q = `
SELECT id, doc, created_at, updated_at
FROM products
WHERE id = $1`
	p, err := scanProduct(run.QueryRowContext(ctx, q, strings.TrimSpace(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return productdom.Product{}, productdom.ErrNotFound
		}
		return productdom.Product{}, err
	}
	return p, nil
}

// Put merge-upserts at p.ID when it looks like a document id, otherwise it
// inserts under a new id.
func (r *ProductRepositoryPG) Put(ctx context.Context, p productdom.Product) (string, error) {
	if r == nil || r.DB == nil {
		return "", errors.New("db is nil")
	}
	if productdom.LooksLikeRemoteID(p.ID) {
		id := strings.TrimSpace(p.ID)
		if err := r.Update(ctx, id, p); err != nil {
			return "", err
		}
		return id, nil
	}

	doc, err := productDoc(p)
	if err != nil {
		return "", err
	}
	run := dbcommon.GetRunner(ctx, r.DB)

	id := dbcommon.NewDocID()
	const q = `INSERT INTO products (id, doc) VALUES ($1, $2::jsonb)`
	if _, err := run.ExecContext(ctx, q, id, doc); err != nil {
		if dbcommon.IsUniqueViolation(err) {
			return "", productdom.ErrConflict
		}
		return "", err
	}
	return id, nil
}

// Update merges the well-known fields into the stored document (jsonb ||),
// creating it when absent.
func (r *ProductRepositoryPG) Update(ctx context.Context, id string, p productdom.Product) error {
	if r == nil || r.DB == nil {
		return errors.New("db is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return productdom.ErrNotFound
	}
	doc, err := productDoc(p)
	if err != nil {
		return err
	}
	run := dbcommon.GetRunner(ctx, r.DB)

	const q = `
INSERT INTO products (id, doc) VALUES ($1, $2::jsonb)
ON CONFLICT (id) DO UPDATE
SET doc = products.doc || EXCLUDED.doc, updated_at = now()`
	_, err = run.ExecContext(ctx, q, id, doc)
	return err
}

func (r *ProductRepositoryPG) Delete(ctx context.Context, id string) error {
	if r == nil || r.DB == nil {
		return errors.New("db is nil")
	}
	run := dbcommon.GetRunner(ctx, r.DB)
	_, err := run.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, strings.TrimSpace(id))
	return err
}

// ========================
// Helpers
// ========================

// productDoc encodes only the well-known fields.
func productDoc(p productdom.Product) (string, error) {
	f := p.Fields()
	if f.ImagePath == "" {
		f.ImagePath = f.Image
	}
	if f.Reviews == nil {
		f.Reviews = []productdom.Review{}
	}
	b, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func scanProduct(s dbcommon.RowScanner) (productdom.Product, error) {
	var (
		id                   string
		doc                  []byte
		createdAt, updatedAt time.Time
	)
	if err := s.Scan(&id, &doc, &createdAt, &updatedAt); err != nil {
		return productdom.Product{}, err
	}

	var p productdom.Product
	if err := json.Unmarshal(doc, &p); err != nil {
		return productdom.Product{}, err
	}
	p.ID = id
	if p.ImagePath == "" {
		p.ImagePath = p.Image
	}
	if p.Rating == 0 {
		p.Rating = productdom.DefaultRating
	}
	ca, ua := createdAt.UTC(), updatedAt.UTC()
	p.CreatedAt, p.UpdatedAt = &ca, &ua
	return p, nil
}
