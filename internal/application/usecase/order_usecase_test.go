package usecase_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verseone/internal/application/usecase"
	cartdom "verseone/internal/domain/cart"
	orderdom "verseone/internal/domain/order"
)

var testCustomer = orderdom.Customer{Name: "Ruth", Phone: "555-0101", Email: "ruth@example.com"}

func items(n int) []orderdom.LineItem {
	out := make([]orderdom.LineItem, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, orderdom.LineItem{
			ProductID: "p" + strconv.Itoa(i),
			Title:     "Board " + strconv.Itoa(i),
			Category:  "Faith",
			Price:     100,
			Quantity:  i,
		})
	}
	return out
}

func TestOrder_PlaceOrderCreatesOneRecordPerLine(t *testing.T) {
	ctx := context.Background()
	repos := newLocalRepos()
	uc := usecase.NewOrderUsecaseWithClock(repos.orders, nil, nil, fixedClock{testNow})

	prev := 0
	for k := 1; k <= 4; k++ {
		before, err := repos.orders.ListRecords(ctx)
		require.NoError(t, err)

		id, err := uc.PlaceOrder(ctx, testCustomer, items(k))
		require.NoError(t, err)

		n, err := strconv.Atoi(id)
		require.NoError(t, err)
		assert.Greater(t, n, prev)
		prev = n

		after, err := repos.orders.ListRecords(ctx)
		require.NoError(t, err)
		added := after[len(before):]
		require.Len(t, added, k)
		for _, r := range added {
			assert.Equal(t, id, r.OrderID)
			assert.Equal(t, added[0].Date, r.Date)
			assert.Len(t, r.Items, 1)
		}
	}
	assert.Equal(t, 4, prev)
}

func TestOrder_PlaceOrderPadsAndGrows(t *testing.T) {
	ctx := context.Background()
	repos := newLocalRepos()
	require.NoError(t, repos.orders.SaveRecords(ctx, []orderdom.Record{
		{OrderID: "998", CustomerName: "x", Phone: "1", Items: items(1)},
	}))
	uc := usecase.NewOrderUsecaseWithClock(repos.orders, nil, nil, fixedClock{testNow})

	id, err := uc.PlaceOrder(ctx, testCustomer, items(1))
	require.NoError(t, err)
	assert.Equal(t, "999", id)

	id, err = uc.PlaceOrder(ctx, testCustomer, items(1))
	require.NoError(t, err)
	assert.Equal(t, "1000", id)
}

func TestOrder_PlaceOrderRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	repos := newLocalRepos()
	uc := usecase.NewOrderUsecase(repos.orders, nil, nil)

	_, err := uc.PlaceOrder(ctx, orderdom.Customer{Name: "Ruth"}, items(1))
	assert.ErrorIs(t, err, orderdom.ErrInvalidCustomer)

	_, err = uc.PlaceOrder(ctx, testCustomer, nil)
	assert.ErrorIs(t, err, orderdom.ErrInvalidItems)

	recs, _ := repos.orders.ListRecords(ctx)
	assert.Empty(t, recs)
}

func TestOrder_PlaceOrderMirrorsToRemoteAndKeepsIDs(t *testing.T) {
	ctx := context.Background()
	repos := newLocalRepos()
	remote := newFakeOrderRemote()
	uc := usecase.NewOrderUsecaseWithClock(repos.orders, remote, nil, fixedClock{testNow})

	id, err := uc.PlaceOrder(ctx, testCustomer, items(2))
	require.NoError(t, err)

	remoteRecs, _ := remote.ListOrders(ctx)
	require.Len(t, remoteRecs, 2)

	local, err := repos.orders.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, local, 2)
	for i, r := range local {
		assert.Equal(t, id, r.OrderID)
		assert.Equal(t, remoteRecs[i].ID, r.ID)
		assert.Equal(t, orderdom.StatusPending, r.Status)
	}
}

func TestOrder_PlaceOrderSurvivesRemoteFailure(t *testing.T) {
	ctx := context.Background()
	repos := newLocalRepos()
	remote := newFakeOrderRemote()
	remote.down = true
	uc := usecase.NewOrderUsecase(repos.orders, remote, nil)

	_, err := uc.PlaceOrder(ctx, testCustomer, items(2))
	require.NoError(t, err)

	local, _ := repos.orders.ListRecords(ctx)
	require.Len(t, local, 2)
	assert.Empty(t, local[0].ID)
}

func TestOrder_CheckoutClearsCartAndNotifies(t *testing.T) {
	ctx := context.Background()
	carts, repos := newCartFixture(t)
	_, err := carts.Add(ctx, cartdom.DefaultID, "p1", 2)
	require.NoError(t, err)
	_, err = carts.Add(ctx, cartdom.DefaultID, "p2", 1)
	require.NoError(t, err)

	n := &fakeNotifier{}
	uc := usecase.NewOrderUsecaseWithClock(repos.orders, nil, carts, fixedClock{testNow}).WithNotifier(n)

	res, err := uc.Checkout(ctx, cartdom.DefaultID, testCustomer)
	require.NoError(t, err)
	assert.Equal(t, "001", res.Order.OrderID)
	assert.Equal(t, 212.5, res.Total)
	assert.Equal(t, "order_001_1741944413000.csv", res.Filename)
	assert.Equal(t, orderdom.CSVHeader+
		"001,Ruth,555-0101,ruth@example.com,\"Psalm 23\",\"Faith\",2,100,200\n"+
		"001,Ruth,555-0101,ruth@example.com,\"John 3:16\",\"Faith\",1,12.5,12.5\n", res.CSV)

	assert.Equal(t, 1, n.calls)
	assert.Equal(t, res.Filename, n.filename)

	count, err := carts.Count(ctx, cartdom.DefaultID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestOrder_CheckoutEmptyCartWritesNothing(t *testing.T) {
	ctx := context.Background()
	carts, repos := newCartFixture(t)
	uc := usecase.NewOrderUsecase(repos.orders, nil, carts)

	_, err := uc.Checkout(ctx, cartdom.DefaultID, testCustomer)
	assert.ErrorIs(t, err, usecase.ErrEmptyCart)

	_, err = carts.Add(ctx, cartdom.DefaultID, "p1", 1)
	require.NoError(t, err)
	_, err = uc.Checkout(ctx, cartdom.DefaultID, orderdom.Customer{Phone: "1"})
	assert.ErrorIs(t, err, orderdom.ErrInvalidCustomer)

	recs, _ := repos.orders.ListRecords(ctx)
	assert.Empty(t, recs)
	count, _ := carts.Count(ctx, cartdom.DefaultID)
	assert.Equal(t, 1, count)
}

func TestOrder_ListGroupsAndExport(t *testing.T) {
	ctx := context.Background()
	repos := newLocalRepos()
	uc := usecase.NewOrderUsecaseWithClock(repos.orders, nil, nil, fixedClock{testNow})

	_, err := uc.PlaceOrder(ctx, testCustomer, items(2))
	require.NoError(t, err)
	_, err = uc.PlaceOrder(ctx, orderdom.Customer{Name: "Boaz", Phone: "2"}, items(3))
	require.NoError(t, err)

	orders, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "001", orders[0].OrderID)
	assert.Len(t, orders[0].Items, 2)
	assert.Equal(t, "Boaz", orders[1].Customer.Name)
	assert.Equal(t, "600", orders[1].Total().String())

	name, csv, err := uc.ExportCSV(ctx, "002")
	require.NoError(t, err)
	assert.Equal(t, "order_002_1741944413000.csv", name)
	assert.Contains(t, csv, "002,Boaz,2,,\"Board 3\",\"Faith\",3,100,300\n")

	_, err = uc.Get(ctx, "404")
	assert.ErrorIs(t, err, orderdom.ErrNotFound)
}

func TestOrder_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repos := newLocalRepos()
	remote := newFakeOrderRemote()
	uc := usecase.NewOrderUsecase(repos.orders, remote, nil)

	id, err := uc.PlaceOrder(ctx, testCustomer, items(2))
	require.NoError(t, err)

	n, err := uc.UpdateStatus(ctx, id, orderdom.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, remote.statuses, 2)

	o, err := uc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, orderdom.StatusShipped, o.Status)

	_, err = uc.UpdateStatus(ctx, id, "lost")
	assert.ErrorIs(t, err, orderdom.ErrInvalidStatus)
	_, err = uc.UpdateStatus(ctx, "777", orderdom.StatusShipped)
	assert.ErrorIs(t, err, orderdom.ErrNotFound)

	localOnly := usecase.NewOrderUsecase(repos.orders, nil, nil)
	_, err = localOnly.UpdateStatus(ctx, id, orderdom.StatusShipped)
	assert.ErrorIs(t, err, usecase.ErrRemoteUnavailable)
}

// batchOrderRemote updates all records of an order at once, or none.
type batchOrderRemote struct {
	*fakeOrderRemote
	batches [][]string
	fail    bool
}

func (b *batchOrderRemote) UpdateOrderStatuses(_ context.Context, ids []string, status orderdom.Status) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail {
		return errRemoteDown
	}
	b.batches = append(b.batches, ids)
	for _, id := range ids {
		b.statuses[id] = status
	}
	return nil
}

func TestOrder_UpdateStatusUsesBatchRemote(t *testing.T) {
	ctx := context.Background()
	repos := newLocalRepos()
	remote := &batchOrderRemote{fakeOrderRemote: newFakeOrderRemote()}
	uc := usecase.NewOrderUsecase(repos.orders, remote, nil)

	id, err := uc.PlaceOrder(ctx, testCustomer, items(3))
	require.NoError(t, err)

	n, err := uc.UpdateStatus(ctx, id, orderdom.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.Len(t, remote.batches, 1)
	assert.Len(t, remote.batches[0], 3)

	remote.fail = true
	_, err = uc.UpdateStatus(ctx, id, orderdom.StatusDelivered)
	require.ErrorIs(t, err, errRemoteDown)

	o, err := uc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, orderdom.StatusShipped, o.Status, "failed batch leaves local status alone")
}
