package firestore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdom "verseone/internal/domain/order"
	productdom "verseone/internal/domain/product"
)

// newEmulatorClient connects to the Firestore emulator or skips the test.
// Each test gets its own project id so collections never collide.
func newEmulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	project := fmt.Sprintf("verseone-test-%d", time.Now().UnixNano())
	client, err := firestore.NewClient(ctx, project)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestProductRepositoryFS_PutListUpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepositoryFS(newEmulatorClient(t))

	p, err := productdom.New("", productdom.Fields{
		Title: "Psalm 23", VerseText: "The Lord is my shepherd", Category: "Faith",
		Size: "12 x 18 inches", Price: 1299, Image: "https://img/a.png",
	})
	require.NoError(t, err)

	id, err := repo.Put(ctx, p)
	require.NoError(t, err)
	assert.Len(t, id, 20)

	// a short local id is reused as the document id
	legacy := p.WithID("1741944413000")
	legacyID, err := repo.Put(ctx, legacy)
	require.NoError(t, err)
	assert.Equal(t, "1741944413000", legacyID)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Psalm 23", got.Title)
	assert.Equal(t, "https://img/a.png", got.ImagePath)
	assert.NotNil(t, got.UpdatedAt)

	updated := got.Apply(productdom.Fields{
		Title: "Psalm 23:1", VerseText: got.VerseText, Category: got.Category,
		Size: got.Size, Price: 1499,
	})
	require.NoError(t, repo.Update(ctx, id, updated))

	got, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Psalm 23:1", got.Title)
	assert.Equal(t, 1499.0, got.Price)

	require.NoError(t, repo.Delete(ctx, id))
	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, productdom.ErrNotFound)
}

func TestOrderRepositoryFS_InsertListStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepositoryFS(newEmulatorClient(t))

	item := orderdom.LineItem{ProductID: "p1", Title: "Board", Category: "Faith", Price: 100, Quantity: 2, TotalPrice: 200}
	older := orderdom.Record{OrderID: "001", CustomerName: "Ruth", Phone: "1", Items: []orderdom.LineItem{item}, Total: 200, Date: "2025-01-01T00:00:00.000Z"}
	newer := older
	newer.OrderID = "002"
	newer.Date = "2025-02-01T00:00:00.000Z"

	_, err := repo.InsertOrder(ctx, older)
	require.NoError(t, err)
	newID, err := repo.InsertOrder(ctx, newer)
	require.NoError(t, err)

	recs, err := repo.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "002", recs[0].OrderID)
	assert.Equal(t, orderdom.StatusPending, recs[0].Status)
	assert.Equal(t, []orderdom.LineItem{item}, recs[1].Items)

	require.NoError(t, repo.UpdateOrderStatus(ctx, newID, orderdom.StatusShipped))
	recs, err = repo.ListOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, orderdom.StatusShipped, recs[0].Status)

	assert.ErrorIs(t, repo.UpdateOrderStatus(ctx, "missing-doc", orderdom.StatusShipped), orderdom.ErrNotFound)
}
