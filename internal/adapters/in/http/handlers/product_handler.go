// backend/internal/adapters/in/http/handlers/product_handler.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	usecase "verseone/internal/application/usecase"
	productdom "verseone/internal/domain/product"
)

// ProductHandler は /products と /admin/products を担当します。
type ProductHandler struct {
	uc *usecase.CatalogUsecase
}

func NewProductHandler(uc *usecase.CatalogUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// productView is the storefront rendering of a product: displayImage is the
// image to show (imagePath when set, else image).
type productView struct {
	productdom.Product
	DisplayImage string `json:"displayImage"`
}

func toProductView(p productdom.Product) productView {
	return productView{Product: p, DisplayImage: p.DisplayImage()}
}

// ------------------------------------------------------------
// GET /products
// ------------------------------------------------------------
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.List(r.Context())
	if err != nil {
		writeUsecaseErr(w, r, "ProductHandler", err)
		return
	}
	out := make([]productView, 0, len(items))
	for _, p := range items {
		out = append(out, toProductView(p))
	}
	writeJSON(w, http.StatusOK, out)
}

// ------------------------------------------------------------
// GET /products/{id}
// ------------------------------------------------------------
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUsecaseErr(w, r, "ProductHandler", err)
		return
	}
	writeJSON(w, http.StatusOK, toProductView(p))
}

type reviewRequest struct {
	Customer string `json:"customer"`
	Comment  string `json:"comment"`
	Rating   int    `json:"rating"`
}

// ------------------------------------------------------------
// POST /products/{id}/reviews
// ------------------------------------------------------------
func (h *ProductHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	p, err := h.uc.AddReview(r.Context(), chi.URLParam(r, "id"), req.Customer, req.Comment, req.Rating)
	if err != nil {
		writeUsecaseErr(w, r, "ProductHandler", err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductView(p))
}

// ------------------------------------------------------------
// POST /admin/products
// ------------------------------------------------------------
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var f productdom.Fields
	if err := decodeJSON(r, &f); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	p, err := h.uc.Create(r.Context(), f)
	if err != nil {
		writeUsecaseErr(w, r, "ProductHandler", err)
		return
	}
	auditAdmin(r, "ProductHandler", "create id=%s", p.ID)
	writeJSON(w, http.StatusCreated, toProductView(p))
}

// ------------------------------------------------------------
// PUT /admin/products/{id}
//   画像未指定の場合は既存の imagePath を維持（Product.Apply）
// ------------------------------------------------------------
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var f productdom.Fields
	if err := decodeJSON(r, &f); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	p, err := h.uc.Update(r.Context(), chi.URLParam(r, "id"), f)
	if err != nil {
		writeUsecaseErr(w, r, "ProductHandler", err)
		return
	}
	auditAdmin(r, "ProductHandler", "update id=%s", p.ID)
	writeJSON(w, http.StatusOK, toProductView(p))
}

// ------------------------------------------------------------
// DELETE /admin/products/{id}
// ------------------------------------------------------------
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	removed, err := h.uc.Delete(r.Context(), id)
	if err != nil {
		writeUsecaseErr(w, r, "ProductHandler", err)
		return
	}
	auditAdmin(r, "ProductHandler", "delete id=%s removed=%t", id, removed)
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "removed": removed})
}
