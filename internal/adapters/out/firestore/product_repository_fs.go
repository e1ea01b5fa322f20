// backend/internal/adapters/out/firestore/product_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	productdom "verseone/internal/domain/product"
	firestoreinfra "verseone/internal/infra/firestore"
)

// ProductRepositoryFS is the remote "products" collection.
// It implements usecase.ProductRemote.
type ProductRepositoryFS struct {
	Client *firestore.Client
}

func NewProductRepositoryFS(client *firestore.Client) *ProductRepositoryFS {
	return &ProductRepositoryFS{Client: client}
}

func (r *ProductRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(firestoreinfra.CollectionProducts)
}

// ============================================================
// usecase.ProductRemote
// ============================================================

// List returns every product document (no ordering guarantee).
func (r *ProductRepositoryFS) List(ctx context.Context) ([]productdom.Product, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	it := r.col().Documents(ctx)
	defer it.Stop()

	items := []productdom.Product{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		items = append(items, docToProduct(doc))
	}
	return items, nil
}

// GetByID returns one product document.
func (r *ProductRepositoryFS) GetByID(ctx context.Context, id string) (productdom.Product, error) {
	if r == nil || r.Client == nil {
		return productdom.Product{}, errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return productdom.Product{}, productdom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return productdom.Product{}, productdom.ErrNotFound
		}
		return productdom.Product{}, err
	}
	return docToProduct(snap), nil
}

// Put merge-upserts at p.ID when it looks like a document id, otherwise it
// inserts with an auto-ID. Only the well-known fields are written.
func (r *ProductRepositoryFS) Put(ctx context.Context, p productdom.Product) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("firestore client is nil")
	}

	if productdom.LooksLikeRemoteID(p.ID) {
		id := strings.TrimSpace(p.ID)
		if err := r.Update(ctx, id, p); err != nil {
			return "", err
		}
		return id, nil
	}

	data := productToDoc(p)
	data["createdAt"] = firestore.ServerTimestamp

	docRef := r.col().NewDoc()
	if _, err := docRef.Create(ctx, data); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return "", productdom.ErrConflict
		}
		return "", err
	}
	log.Printf("[product_repository_fs] inserted id=%s", docRef.ID)
	return docRef.ID, nil
}

// Update merge-upserts the well-known fields of p at id.
func (r *ProductRepositoryFS) Update(ctx context.Context, id string, p productdom.Product) error {
	if r == nil || r.Client == nil {
		return errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return productdom.ErrNotFound
	}

	_, err := r.col().Doc(id).Set(ctx, productToDoc(p), firestore.MergeAll)
	return err
}

// Delete removes the document. A missing document is not an error.
func (r *ProductRepositoryFS) Delete(ctx context.Context, id string) error {
	if r == nil || r.Client == nil {
		return errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}

	_, err := r.col().Doc(id).Delete(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return err
	}
	return nil
}

// ============================================================
// Mapping
// ============================================================

// productToDoc keeps only the well-known fields; extraneous local fields
// never reach Firestore.
func productToDoc(p productdom.Product) map[string]any {
	reviews := make([]map[string]any, 0, len(p.Reviews))
	for _, rv := range p.Reviews {
		reviews = append(reviews, map[string]any{
			"id":       rv.ID,
			"customer": rv.Customer,
			"comment":  rv.Comment,
			"rating":   rv.Rating,
			"date":     rv.Date,
		})
	}

	imagePath := p.ImagePath
	if imagePath == "" {
		imagePath = p.Image
	}

	return map[string]any{
		"title":       p.Title,
		"verseText":   p.VerseText,
		"category":    p.Category,
		"size":        p.Size,
		"price":       p.Price,
		"description": p.Description,
		"image":       p.Image,
		"imagePath":   imagePath,
		"rating":      p.Rating,
		"reviews":     reviews,
		"updatedAt":   firestore.ServerTimestamp,
	}
}

func docToProduct(doc *firestore.DocumentSnapshot) productdom.Product {
	data := doc.Data()

	p := productdom.Product{
		ID:          doc.Ref.ID,
		Title:       asString(data["title"]),
		VerseText:   asString(data["verseText"]),
		Category:    asString(data["category"]),
		Size:        asString(data["size"]),
		Price:       asFloat(data["price"]),
		Description: asString(data["description"]),
		Image:       asString(data["image"]),
		ImagePath:   asString(data["imagePath"]),
		Rating:      asInt(data["rating"]),
		Reviews:     asReviews(data["reviews"]),
	}
	if p.ImagePath == "" {
		p.ImagePath = p.Image
	}
	if p.Rating == 0 {
		p.Rating = productdom.DefaultRating
	}
	if t, ok := asTime(data["createdAt"]); ok {
		p.CreatedAt = &t
	}
	if t, ok := asTime(data["updatedAt"]); ok {
		p.UpdatedAt = &t
	}
	return p
}

func asReviews(v any) []productdom.Review {
	raw, ok := v.([]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	out := make([]productdom.Review, 0, len(raw))
	for _, x := range raw {
		m, ok := x.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, productdom.Review{
			ID:       asString(m["id"]),
			Customer: asString(m["customer"]),
			Comment:  asString(m["comment"]),
			Rating:   asInt(m["rating"]),
			Date:     asString(m["date"]),
		})
	}
	return out
}
