// backend/internal/domain/cart/entity.go
package cart

import (
	"errors"
	"math"
	"strings"
)

var (
	ErrInvalidCart     = errors.New("cart: invalid")
	ErrInvalidQuantity = errors.New("cart: quantity must be a positive integer")
)

// DefaultID is the cart of the default storefront session.
const DefaultID = "default"

// Line represents "one line item" in a cart.
// Uniqueness is defined by productId.
type Line struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Cart is an ordered list of lines, one per product.
//   - ID identifies the storefront session owning the cart (DefaultID for the
//     single-session storefront)
//   - quantity >= 1 for every stored line; a line reaching 0 is removed
type Cart struct {
	ID    string `json:"id"`
	Lines []Line `json:"lines"`
}

// NewCart creates a cart. lines can be nil (treated as empty); invalid lines
// are dropped and duplicates are merged keeping first-appearance order.
func NewCart(id string, lines []Line) *Cart {
	cid := strings.TrimSpace(id)
	if cid == "" {
		cid = DefaultID
	}
	return &Cart{ID: cid, Lines: normalizeAndMerge(lines)}
}

// Add increases quantity for productID, appending a new line when absent.
// qty must be >= 1, and the resulting quantity must fit in an int.
func (c *Cart) Add(productID string, qty int) error {
	if c == nil {
		return ErrInvalidCart
	}
	pid := strings.TrimSpace(productID)
	if pid == "" {
		return ErrInvalidCart
	}
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	if idx := findLineIndex(c.Lines, pid); idx >= 0 {
		if qty > math.MaxInt-c.Lines[idx].Quantity {
			return ErrInvalidQuantity
		}
		c.Lines[idx].Quantity += qty
		return nil
	}
	c.Lines = append(c.Lines, Line{ProductID: pid, Quantity: qty})
	return nil
}

// SetQty sets quantity for productID.
// If qty <= 0, it removes the line. A productID that is not in the cart is
// left alone (nothing to update).
func (c *Cart) SetQty(productID string, qty int) error {
	if c == nil {
		return ErrInvalidCart
	}
	pid := strings.TrimSpace(productID)
	if pid == "" {
		return ErrInvalidCart
	}

	idx := findLineIndex(c.Lines, pid)
	if qty <= 0 {
		if idx >= 0 {
			c.Lines = removeIndex(c.Lines, idx)
		}
		return nil
	}
	if idx >= 0 {
		c.Lines[idx].Quantity = qty
	}
	return nil
}

// Remove removes productID from the cart.
func (c *Cart) Remove(productID string) error {
	return c.SetQty(productID, 0)
}

// ConsumeAll clears the lines and returns a snapshot of them (used at checkout).
func (c *Cart) ConsumeAll() []Line {
	if c == nil {
		return nil
	}
	snap := cloneLines(c.Lines)
	c.Lines = []Line{}
	return snap
}

// Quantity returns the quantity for productID (0 when absent).
func (c *Cart) Quantity(productID string) int {
	if c == nil {
		return 0
	}
	if idx := findLineIndex(c.Lines, strings.TrimSpace(productID)); idx >= 0 {
		return c.Lines[idx].Quantity
	}
	return 0
}

// Count is the sum of quantities (not the number of distinct lines),
// saturating at math.MaxInt.
func (c *Cart) Count() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, l := range c.Lines {
		n = addSat(n, l.Quantity)
	}
	return n
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Lines) == 0
}

// ----------------------------
// Helpers
// ----------------------------

func findLineIndex(lines []Line, pid string) int {
	for i := range lines {
		if lines[i].ProductID == pid {
			return i
		}
	}
	return -1
}

func removeIndex(lines []Line, idx int) []Line {
	if idx < 0 || idx >= len(lines) {
		return lines
	}
	// preserve order
	return append(lines[:idx], lines[idx+1:]...)
}

func normalizeAndMerge(src []Line) []Line {
	out := make([]Line, 0, len(src))
	for _, l := range src {
		pid := strings.TrimSpace(l.ProductID)
		if pid == "" || l.Quantity <= 0 {
			continue
		}
		if idx := findLineIndex(out, pid); idx >= 0 {
			out[idx].Quantity = addSat(out[idx].Quantity, l.Quantity)
			continue
		}
		out = append(out, Line{ProductID: pid, Quantity: l.Quantity})
	}
	return out
}

// addSat adds two non-negative ints, clamping at math.MaxInt.
func addSat(a, b int) int {
	if b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}

func cloneLines(src []Line) []Line {
	out := make([]Line, len(src))
	copy(out, src)
	return out
}
