// backend/internal/adapters/out/firestore/order_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	orderdom "verseone/internal/domain/order"
	firestoreinfra "verseone/internal/infra/firestore"
)

// OrderRepositoryFS is the remote "orders" collection of flat records.
// It implements usecase.OrderRemote.
type OrderRepositoryFS struct {
	Client *firestore.Client
}

func NewOrderRepositoryFS(client *firestore.Client) *OrderRepositoryFS {
	return &OrderRepositoryFS{Client: client}
}

func (r *OrderRepositoryFS) ordersCol() *firestore.CollectionRef {
	return r.Client.Collection(firestoreinfra.CollectionOrders)
}

// ListOrders returns records ordered by date descending.
func (r *OrderRepositoryFS) ListOrders(ctx context.Context) ([]orderdom.Record, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	it := r.ordersCol().OrderBy("date", firestore.Desc).Documents(ctx)
	defer it.Stop()

	recs := []orderdom.Record{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		recs = append(recs, docToRecord(doc))
	}
	return recs, nil
}

// InsertOrder stores rec under a new auto-ID. Status defaults to pending.
func (r *OrderRepositoryFS) InsertOrder(ctx context.Context, rec orderdom.Record) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("firestore client is nil")
	}

	data := recordToDoc(rec)
	data["createdAt"] = firestore.ServerTimestamp
	data["updatedAt"] = firestore.ServerTimestamp

	docRef := r.ordersCol().NewDoc()
	if _, err := docRef.Create(ctx, data); err != nil {
		return "", err
	}
	return docRef.ID, nil
}

// UpdateOrderStatus patches status on one record document.
func (r *OrderRepositoryFS) UpdateOrderStatus(ctx context.Context, id string, st orderdom.Status) error {
	if r == nil || r.Client == nil {
		return errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return orderdom.ErrNotFound
	}
	if !st.Valid() {
		return orderdom.ErrInvalidStatus
	}

	_, err := r.ordersCol().Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(st)},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return orderdom.ErrNotFound
		}
		return err
	}
	return nil
}

// ============================================================
// Mapping
// ============================================================

func recordToDoc(rec orderdom.Record) map[string]any {
	items := make([]map[string]any, 0, len(rec.Items))
	for _, it := range rec.Items {
		items = append(items, map[string]any{
			"id":         it.ProductID,
			"title":      it.Title,
			"verseText":  it.VerseText,
			"category":   it.Category,
			"size":       it.Size,
			"price":      it.Price,
			"image":      it.Image,
			"imagePath":  it.ImagePath,
			"quantity":   it.Quantity,
			"totalPrice": it.TotalPrice,
		})
	}

	st := rec.Status
	if st == "" {
		st = orderdom.StatusPending
	}

	return map[string]any{
		"orderId":      rec.OrderID,
		"customerName": rec.CustomerName,
		"phone":        rec.Phone,
		"email":        rec.Email,
		"address":      rec.Address,
		"items":        items,
		"total":        rec.Total,
		"date":         rec.Date,
		"status":       string(st),
	}
}

func docToRecord(doc *firestore.DocumentSnapshot) orderdom.Record {
	data := doc.Data()

	rec := orderdom.Record{
		ID:           doc.Ref.ID,
		OrderID:      asString(data["orderId"]),
		CustomerName: asString(data["customerName"]),
		Phone:        asString(data["phone"]),
		Email:        asString(data["email"]),
		Address:      asString(data["address"]),
		Total:        asFloat(data["total"]),
		Date:         asDateString(data["date"]),
		Status:       orderdom.Status(asString(data["status"])),
	}

	if raw, ok := data["items"].([]any); ok {
		for _, x := range raw {
			m, ok := x.(map[string]any)
			if !ok {
				continue
			}
			rec.Items = append(rec.Items, orderdom.LineItem{
				ProductID:  asString(m["id"]),
				Title:      asString(m["title"]),
				VerseText:  asString(m["verseText"]),
				Category:   asString(m["category"]),
				Size:       asString(m["size"]),
				Price:      asFloat(m["price"]),
				Image:      asString(m["image"]),
				ImagePath:  asString(m["imagePath"]),
				Quantity:   asInt(m["quantity"]),
				TotalPrice: asFloat(m["totalPrice"]),
			})
		}
	}
	return rec
}
