// backend/internal/domain/order/entity.go
package order

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ========================================
// Value types
// ========================================

// Customer is the contact captured at checkout.
type Customer struct {
	Name    string `json:"customerName"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address,omitempty"`
}

// LineItem is a cart line frozen at checkout (product fields + quantity).
type LineItem struct {
	ProductID  string  `json:"id" firestore:"id"`
	Title      string  `json:"title" firestore:"title"`
	VerseText  string  `json:"verseText,omitempty" firestore:"verseText"`
	Category   string  `json:"category" firestore:"category"`
	Size       string  `json:"size,omitempty" firestore:"size"`
	Price      float64 `json:"price" firestore:"price"`
	Image      string  `json:"image,omitempty" firestore:"image"`
	ImagePath  string  `json:"imagePath,omitempty" firestore:"imagePath"`
	Quantity   int     `json:"quantity" firestore:"quantity"`
	TotalPrice float64 `json:"totalPrice" firestore:"totalPrice"`
}

// LineTotal returns TotalPrice, or price*quantity for items stored without one.
func (it LineItem) LineTotal() decimal.Decimal {
	if it.TotalPrice != 0 {
		return decimal.NewFromFloat(it.TotalPrice)
	}
	return decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Status is the fulfilment state. It is only ever changed on the remote store.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// ========================================
// Entity
// ========================================

// Order is the in-memory aggregate of one checkout. Storage keeps it as one
// Record per line item (see record.go).
type Order struct {
	OrderID  string     `json:"orderId"`
	Customer Customer   `json:"customer"`
	Date     string     `json:"date"`
	Status   Status     `json:"status,omitempty"`
	Items    []LineItem `json:"items"`
}

// ========================================
// Errors
// ========================================

var (
	ErrNotFound        = errors.New("order: not found")
	ErrInvalidOrder    = errors.New("order: invalid")
	ErrInvalidCustomer = errors.New("order: customer name and phone are required")
	ErrInvalidItems    = errors.New("order: at least one item is required")
	ErrInvalidItem     = errors.New("order: invalid item")
	ErrInvalidStatus   = errors.New("order: invalid status")
)

// ========================================
// Constructors
// ========================================

// New builds an order placed at placedAt. All its records share that instant.
func New(orderID string, c Customer, items []LineItem, placedAt time.Time) (Order, error) {
	o := Order{
		OrderID:  strings.TrimSpace(orderID),
		Customer: normalizeCustomer(c),
		Date:     FormatDate(placedAt),
		Items:    normalizeItems(items),
	}
	if err := o.validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}

// Total is the sum of line totals.
func (o Order) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// ItemCount is the number of line items.
func (o Order) ItemCount() int { return len(o.Items) }

// ========================================
// Validation
// ========================================

func (o Order) validate() error {
	if o.OrderID == "" {
		return ErrInvalidOrder
	}
	if err := ValidateCustomer(o.Customer); err != nil {
		return err
	}
	if len(o.Items) == 0 {
		return ErrInvalidItems
	}
	for _, it := range o.Items {
		if it.Quantity <= 0 || it.Price < 0 {
			return ErrInvalidItem
		}
	}
	return nil
}

// ValidateCustomer checks the contact fields required at checkout.
func ValidateCustomer(c Customer) error {
	if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Phone) == "" {
		return ErrInvalidCustomer
	}
	return nil
}

// ========================================
// Helpers
// ========================================

// dateLayout matches a JavaScript Date#toISOString value.
const dateLayout = "2006-01-02T15:04:05.000Z"

// FormatDate renders t as an ISO-8601 UTC timestamp with milliseconds.
func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func normalizeCustomer(c Customer) Customer {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
	c.Address = strings.TrimSpace(c.Address)
	return c
}

func normalizeItems(items []LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		it.ProductID = strings.TrimSpace(it.ProductID)
		it.Title = strings.TrimSpace(it.Title)
		it.Category = strings.TrimSpace(it.Category)
		if it.TotalPrice == 0 {
			it.TotalPrice = it.LineTotal().InexactFloat64()
		}
		// 空は validate で弾くのでここでは落とさない
		out = append(out, it)
	}
	return out
}
