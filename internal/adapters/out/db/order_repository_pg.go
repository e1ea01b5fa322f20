// backend/internal/adapters/out/db/order_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	dbcommon "verseone/internal/adapters/out/db/common"
	orderdom "verseone/internal/domain/order"
)

// OrderRepositoryPG is the remote "orders" collection on PostgreSQL.
// It implements usecase.OrderRemote.
type OrderRepositoryPG struct {
	DB *sql.DB
}

func NewOrderRepositoryPG(db *sql.DB) *OrderRepositoryPG {
	return &OrderRepositoryPG{DB: db}
}

// ListOrders returns records ordered by date descending.
func (r *OrderRepositoryPG) ListOrders(ctx context.Context) ([]orderdom.Record, error) {
	if r == nil || r.DB == nil {
		return nil, errors.New("db is nil")
	}
	run := dbcommon.GetRunner(ctx, r.DB)

	const q = `
SELECT id, status, doc
FROM orders
ORDER BY date DESC, id ASC`
	rows, err := run.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []orderdom.Record{}
	for rows.Next() {
		var (
			id, st string
			doc    []byte
		)
		if err := rows.Scan(&id, &st, &doc); err != nil {
			return nil, err
		}
		var rec orderdom.Record
		if err := json.Unmarshal(doc, &rec); err != nil {
			return nil, err
		}
		rec.ID = id
		rec.Status = orderdom.Status(st)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// InsertOrder stores rec under a new id. Status defaults to pending.
func (r *OrderRepositoryPG) InsertOrder(ctx context.Context, rec orderdom.Record) (string, error) {
	if r == nil || r.DB == nil {
		return "", errors.New("db is nil")
	}
	st := rec.Status
	if st == "" {
		st = orderdom.StatusPending
	}
	rec.ID = ""
	rec.Status = ""
	doc, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	run := dbcommon.GetRunner(ctx, r.DB)

	id := dbcommon.NewDocID()
	const q = `
INSERT INTO orders (id, order_id, date, status, doc)
VALUES ($1, $2, $3, $4, $5::jsonb)`
	if _, err := run.ExecContext(ctx, q, id, rec.OrderID, rec.Date, string(st), string(doc)); err != nil {
		return "", err
	}
	return id, nil
}

// UpdateOrderStatus sets status on one record row.
func (r *OrderRepositoryPG) UpdateOrderStatus(ctx context.Context, id string, st orderdom.Status) error {
	if r == nil || r.DB == nil {
		return errors.New("db is nil")
	}
	if !st.Valid() {
		return orderdom.ErrInvalidStatus
	}
	run := dbcommon.GetRunner(ctx, r.DB)

	const q = `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`
	res, err := run.ExecContext(ctx, q, strings.TrimSpace(id), string(st))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return orderdom.ErrNotFound
	}
	return nil
}

// UpdateOrderStatuses sets status on every record row in ids inside one
// transaction: either all rows change or none do.
func (r *OrderRepositoryPG) UpdateOrderStatuses(ctx context.Context, ids []string, st orderdom.Status) error {
	if r == nil || r.DB == nil {
		return errors.New("db is nil")
	}
	if !st.Valid() {
		return orderdom.ErrInvalidStatus
	}
	return dbcommon.WithTx(ctx, r.DB, func(ctx context.Context) error {
		for _, id := range ids {
			if err := r.UpdateOrderStatus(ctx, id, st); err != nil {
				return fmt.Errorf("update status id=%s: %w", id, err)
			}
		}
		return nil
	})
}
