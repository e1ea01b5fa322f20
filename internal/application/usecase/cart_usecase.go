// backend/internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	cartdom "verseone/internal/domain/cart"
	orderdom "verseone/internal/domain/order"
	productdom "verseone/internal/domain/product"
)

// CartItemView is a cart line joined with its product.
// JSON flattens the product fields next to quantity and totalPrice.
type CartItemView struct {
	productdom.Product
	DisplayImage string  `json:"displayImage"`
	Quantity     int     `json:"quantity"`
	TotalPrice   float64 `json:"totalPrice"`
}

// LineItem freezes the view into an order line.
func (v CartItemView) LineItem() orderdom.LineItem {
	return orderdom.LineItem{
		ProductID:  v.ID,
		Title:      v.Title,
		VerseText:  v.VerseText,
		Category:   v.Category,
		Size:       v.Size,
		Price:      v.Price,
		Image:      v.Image,
		ImagePath:  v.ImagePath,
		Quantity:   v.Quantity,
		TotalPrice: v.TotalPrice,
	}
}

// CartUsecase coordinates cart operations.
// Carts live only in the local store.
type CartUsecase struct {
	repo     cartdom.Repository
	products productdom.Repository

	// serializes read-modify-write of cart snapshots
	mu sync.Mutex
}

func NewCartUsecase(repo cartdom.Repository, products productdom.Repository) *CartUsecase {
	return &CartUsecase{repo: repo, products: products}
}

// Get returns the cart (empty when it was never written).
func (uc *CartUsecase) Get(ctx context.Context, cartID string) (*cartdom.Cart, error) {
	return uc.repo.Get(ctx, strings.TrimSpace(cartID))
}

// Add increments qty for productID. qty must be >= 1.
func (uc *CartUsecase) Add(ctx context.Context, cartID, productID string, qty int) (*cartdom.Cart, error) {
	return uc.mutate(ctx, cartID, func(c *cartdom.Cart) error {
		return c.Add(productID, qty)
	})
}

// SetQuantity overwrites qty for productID; qty <= 0 removes the line.
func (uc *CartUsecase) SetQuantity(ctx context.Context, cartID, productID string, qty int) (*cartdom.Cart, error) {
	return uc.mutate(ctx, cartID, func(c *cartdom.Cart) error {
		return c.SetQty(productID, qty)
	})
}

// Remove removes productID from the cart.
func (uc *CartUsecase) Remove(ctx context.Context, cartID, productID string) (*cartdom.Cart, error) {
	return uc.mutate(ctx, cartID, func(c *cartdom.Cart) error {
		return c.Remove(productID)
	})
}

// Clear empties the cart.
func (uc *CartUsecase) Clear(ctx context.Context, cartID string) error {
	_, err := uc.mutate(ctx, cartID, func(c *cartdom.Cart) error {
		c.ConsumeAll()
		return nil
	})
	return err
}

// Materialize joins the cart with the current catalog. Lines whose product no
// longer exists are dropped silently.
func (uc *CartUsecase) Materialize(ctx context.Context, cartID string) ([]CartItemView, error) {
	c, err := uc.repo.Get(ctx, strings.TrimSpace(cartID))
	if err != nil {
		return nil, err
	}
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]productdom.Product, len(products))
	for _, p := range products {
		if _, dup := byID[p.ID]; !dup {
			byID[p.ID] = p
		}
	}

	out := make([]CartItemView, 0, len(c.Lines))
	for _, l := range c.Lines {
		p, ok := byID[l.ProductID]
		if !ok {
			continue
		}
		total := decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(l.Quantity)))
		out = append(out, CartItemView{
			Product:      p,
			DisplayImage: p.DisplayImage(),
			Quantity:     l.Quantity,
			TotalPrice:   total.InexactFloat64(),
		})
	}
	return out, nil
}

// Total is the sum of totalPrice over materialized lines.
func (uc *CartUsecase) Total(ctx context.Context, cartID string) (decimal.Decimal, error) {
	items, err := uc.Materialize(ctx, cartID)
	if err != nil {
		return decimal.Zero, err
	}
	return SumItems(items), nil
}

// Count is the sum of quantities of the stored lines.
func (uc *CartUsecase) Count(ctx context.Context, cartID string) (int, error) {
	c, err := uc.repo.Get(ctx, strings.TrimSpace(cartID))
	if err != nil {
		return 0, err
	}
	return c.Count(), nil
}

// SumItems adds up TotalPrice of items.
func SumItems(items []CartItemView) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(decimal.NewFromFloat(it.TotalPrice))
	}
	return sum
}

func (uc *CartUsecase) mutate(ctx context.Context, cartID string, fn func(*cartdom.Cart) error) (*cartdom.Cart, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	c, err := uc.repo.Get(ctx, strings.TrimSpace(cartID))
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := uc.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
