package common

// Page はオフセットページング指定
type Page struct {
	Number  int // 1-based
	PerPage int // 0 以下は実装側デフォルト
}

const (
	DefaultPerPage = 20
	MaxPerPage     = 200
)

// Normalize fills defaults and clamps PerPage.
func (p Page) Normalize() Page {
	if p.Number <= 0 {
		p.Number = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// PageResult はページング結果（ジェネリクスでアイテム型を受け取る）
type PageResult[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
}

// Paginate slices items already held in memory (the local store keeps whole
// collections). A page past the end yields an empty, non-nil Items.
func Paginate[T any](items []T, page Page) PageResult[T] {
	page = page.Normalize()
	total := len(items)

	start := (page.Number - 1) * page.PerPage
	if start > total {
		start = total
	}
	end := start + page.PerPage
	if end > total {
		end = total
	}

	out := make([]T, end-start)
	copy(out, items[start:end])

	return PageResult[T]{
		Items:      out,
		TotalCount: total,
		TotalPages: (total + page.PerPage - 1) / page.PerPage,
		Page:       page.Number,
		PerPage:    page.PerPage,
	}
}
