// backend/internal/domain/product/entity.go
package product

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ===============================
// Types
// ===============================

// Review is a customer review shown on the product page.
type Review struct {
	ID       string `json:"id" firestore:"id"`
	Customer string `json:"customer" firestore:"customer"`
	Comment  string `json:"comment" firestore:"comment"`
	Rating   int    `json:"rating" firestore:"rating"`
	Date     string `json:"date" firestore:"date"` // YYYY-MM-DD
}

// Product is one verse board in the catalog.
//
// Image and ImagePath are redundant on purpose:
//   - ImagePath is the authoritative reference (URL or data: URL)
//   - Image is the legacy display URL and is kept for older records
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	VerseText   string   `json:"verseText"`
	Category    string   `json:"category"`
	Size        string   `json:"size"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	ImagePath   string   `json:"imagePath"`
	Rating      int      `json:"rating"`
	Reviews     []Review `json:"reviews"`

	// set by the remote store; absent for local-only records
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Fields is the well-known, writable field set of a Product (everything but id
// and timestamps). Remote merge-upserts write exactly these fields.
type Fields struct {
	Title       string   `json:"title"`
	VerseText   string   `json:"verseText"`
	Category    string   `json:"category"`
	Size        string   `json:"size"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	ImagePath   string   `json:"imagePath"`
	Rating      int      `json:"rating"`
	Reviews     []Review `json:"reviews"`
}

// ===============================
// Policy
// ===============================

const (
	DefaultRating = 5
	MinRating     = 1
	MaxRating     = 5

	// MaxRemoteIDLength: ids up to this length are treated as already issued by
	// the remote store (Firestore auto-ids are 20 chars).
	MaxRemoteIDLength = 30
)

// ===============================
// Errors
// ===============================

var (
	ErrNotFound   = errors.New("product: not found")
	ErrConflict   = errors.New("product: conflict")
	ErrValidation = errors.New("product: validation failed")
)

// ValidationError carries the user-facing message of a rejected product.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("product: invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ===============================
// Constructors / behavior
// ===============================

// New builds a validated product from its fields. id may be empty.
func New(id string, f Fields) (Product, error) {
	p := Product{ID: strings.TrimSpace(id)}
	p.setFields(normalizeFields(f))
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Fields returns the writable field set of p.
func (p Product) Fields() Fields {
	return Fields{
		Title:       p.Title,
		VerseText:   p.VerseText,
		Category:    p.Category,
		Size:        p.Size,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
		ImagePath:   p.ImagePath,
		Rating:      p.Rating,
		Reviews:     cloneReviews(p.Reviews),
	}
}

// Apply merges f over p and returns the result. The id never changes.
// When f carries no image at all the existing one is kept, and nil reviews keep
// the existing reviews (an edit form does not resend them).
func (p Product) Apply(f Fields) Product {
	f = normalizeFields(f)
	if strings.TrimSpace(f.Image) == "" && strings.TrimSpace(f.ImagePath) == "" {
		f.Image = p.Image
		f.ImagePath = p.ImagePath
		if f.ImagePath == "" {
			f.ImagePath = p.Image
		}
	}
	if f.Reviews == nil {
		f.Reviews = cloneReviews(p.Reviews)
	}
	out := p
	out.setFields(f)
	return out
}

// DisplayImage prefers ImagePath, then Image.
func (p Product) DisplayImage() string {
	if s := strings.TrimSpace(p.ImagePath); s != "" {
		return s
	}
	return strings.TrimSpace(p.Image)
}

// WithID returns a copy of p carrying id.
func (p Product) WithID(id string) Product {
	p.ID = strings.TrimSpace(id)
	return p
}

// LooksLikeRemoteID reports whether id can be used as a remote document id
// directly (merge-upsert) instead of inserting a new document.
func LooksLikeRemoteID(id string) bool {
	id = strings.TrimSpace(id)
	return id != "" && len(id) <= MaxRemoteIDLength
}

// Validate checks the fields required by the admin form.
func (p Product) Validate() error {
	switch {
	case strings.TrimSpace(p.Title) == "":
		return &ValidationError{Field: "title", Message: "Title is required"}
	case strings.TrimSpace(p.VerseText) == "":
		return &ValidationError{Field: "verseText", Message: "Verse Text is required"}
	case strings.TrimSpace(p.Category) == "":
		return &ValidationError{Field: "category", Message: "Category is required"}
	case strings.TrimSpace(p.Size) == "":
		return &ValidationError{Field: "size", Message: "Size is required"}
	case !(p.Price > 0):
		return &ValidationError{Field: "price", Message: "Price must be a positive number"}
	case p.Rating < MinRating || p.Rating > MaxRating:
		return &ValidationError{Field: "rating", Message: "Rating must be between 1 and 5"}
	}
	for _, r := range p.Reviews {
		if r.Rating < MinRating || r.Rating > MaxRating {
			return &ValidationError{Field: "reviews", Message: "Review rating must be between 1 and 5"}
		}
	}
	return nil
}

// NewReview builds a review dated on now (UTC).
func NewReview(id, customer, comment string, rating int, now time.Time) (Review, error) {
	r := Review{
		ID:       strings.TrimSpace(id),
		Customer: strings.TrimSpace(customer),
		Comment:  strings.TrimSpace(comment),
		Rating:   rating,
		Date:     now.UTC().Format("2006-01-02"),
	}
	if r.ID == "" {
		return Review{}, &ValidationError{Field: "reviews", Message: "Review id is required"}
	}
	if r.Customer == "" {
		return Review{}, &ValidationError{Field: "reviews", Message: "Customer name is required"}
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return Review{}, &ValidationError{Field: "reviews", Message: "Review rating must be between 1 and 5"}
	}
	return r, nil
}

// ===============================
// Helpers
// ===============================

func (p *Product) setFields(f Fields) {
	p.Title = f.Title
	p.VerseText = f.VerseText
	p.Category = f.Category
	p.Size = f.Size
	p.Price = f.Price
	p.Description = f.Description
	p.Image = f.Image
	p.ImagePath = f.ImagePath
	p.Rating = f.Rating
	p.Reviews = f.Reviews
}

func normalizeFields(f Fields) Fields {
	f.Title = strings.TrimSpace(f.Title)
	f.VerseText = strings.TrimSpace(f.VerseText)
	f.Category = strings.TrimSpace(f.Category)
	f.Size = strings.TrimSpace(f.Size)
	f.Description = strings.TrimSpace(f.Description)
	f.Image = strings.TrimSpace(f.Image)
	f.ImagePath = strings.TrimSpace(f.ImagePath)
	if f.ImagePath == "" {
		f.ImagePath = f.Image
	}
	if f.Rating == 0 {
		f.Rating = DefaultRating
	}
	if f.Reviews != nil {
		f.Reviews = cloneReviews(f.Reviews)
	}
	return f
}

func cloneReviews(src []Review) []Review {
	if src == nil {
		return nil
	}
	out := make([]Review, len(src))
	copy(out, src)
	return out
}
