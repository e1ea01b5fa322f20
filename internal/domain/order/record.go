package order

import (
	"strconv"
	"strings"
)

// Record is the stored shape of one line item of an order: the customer
// fields are repeated on every record and Items holds exactly one item.
// This flat layout is what the local store and the remote "orders" collection
// hold; it maps 1:1 onto CSV rows.
type Record struct {
	ID           string     `json:"id,omitempty"` // remote document id, once known
	OrderID      string     `json:"orderId"`
	CustomerName string     `json:"customerName"`
	Phone        string     `json:"phone"`
	Email        string     `json:"email"`
	Address      string     `json:"address,omitempty"`
	Items        []LineItem `json:"items"`
	Total        float64    `json:"total,omitempty"`
	Date         string     `json:"date"`
	Status       Status     `json:"status,omitempty"`
}

// Expand flattens o into one record per line item.
func Expand(o Order) []Record {
	out := make([]Record, 0, len(o.Items))
	for _, it := range o.Items {
		out = append(out, Record{
			OrderID:      o.OrderID,
			CustomerName: o.Customer.Name,
			Phone:        o.Customer.Phone,
			Email:        o.Customer.Email,
			Address:      o.Customer.Address,
			Items:        []LineItem{it},
			Total:        it.LineTotal().InexactFloat64(),
			Date:         o.Date,
			Status:       o.Status,
		})
	}
	return out
}

// Group regroups records by orderId. Orders keep the position of their first
// record; customer fields and date come from that first record.
func Group(records []Record) []Order {
	index := map[string]int{}
	var out []Order
	for _, r := range records {
		idx, ok := index[r.OrderID]
		if !ok {
			idx = len(out)
			index[r.OrderID] = idx
			out = append(out, Order{
				OrderID: r.OrderID,
				Customer: Customer{
					Name:    r.CustomerName,
					Phone:   r.Phone,
					Email:   r.Email,
					Address: r.Address,
				},
				Date:   r.Date,
				Status: r.Status,
				Items:  []LineItem{},
			})
		}
		out[idx].Items = append(out[idx].Items, r.Items...)
		if out[idx].Status == "" {
			out[idx].Status = r.Status
		}
	}
	return out
}

// Find returns the grouped order for orderID.
func Find(records []Record, orderID string) (Order, bool) {
	orderID = strings.TrimSpace(orderID)
	var matched []Record
	for _, r := range records {
		if r.OrderID == orderID {
			matched = append(matched, r)
		}
	}
	if len(matched) == 0 {
		return Order{}, false
	}
	return Group(matched)[0], true
}

// NextOrderID returns the zero-padded (width 3) successor of the highest
// numeric orderId in records, or "001" when there is none. Width grows past
// three digits naturally ("1000").
func NextOrderID(records []Record) string {
	max := 0
	for _, r := range records {
		if n, ok := leadingInt(r.OrderID); ok && n > max {
			max = n
		}
	}
	s := strconv.Itoa(max + 1)
	if len(s) < 3 {
		s = strings.Repeat("0", 3-len(s)) + s
	}
	return s
}

// leadingInt parses the leading decimal digits of s ("007" -> 7, "12a" -> 12).
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
