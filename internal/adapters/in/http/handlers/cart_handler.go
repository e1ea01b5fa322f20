// backend/internal/adapters/in/http/handlers/cart_handler.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	usecase "verseone/internal/application/usecase"
)

// CartHandler は /cart を担当します。
// cart は X-Cart-Id ヘッダ単位（未指定なら default セッション）。
type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type cartResponse struct {
	CartID string                 `json:"cartId"`
	Items  []usecase.CartItemView `json:"items"`
	Count  int                    `json:"count"`
	Total  float64                `json:"total"`
}

type cartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// ------------------------------------------------------------
// GET /cart
// ------------------------------------------------------------
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.reply(w, r, http.StatusOK)
}

// ------------------------------------------------------------
// POST /cart/items  body: {productId, quantity?}
// ------------------------------------------------------------
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if _, err := h.uc.Add(r.Context(), cartIDFrom(r), req.ProductID, req.Quantity); err != nil {
		writeUsecaseErr(w, r, "CartHandler", err)
		return
	}
	h.reply(w, r, http.StatusOK)
}

// ------------------------------------------------------------
// PUT /cart/items/{productId}  body: {quantity}
//   quantity <= 0 は行削除
// ------------------------------------------------------------
func (h *CartHandler) SetItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if _, err := h.uc.SetQuantity(r.Context(), cartIDFrom(r), chi.URLParam(r, "productId"), req.Quantity); err != nil {
		writeUsecaseErr(w, r, "CartHandler", err)
		return
	}
	h.reply(w, r, http.StatusOK)
}

// ------------------------------------------------------------
// DELETE /cart/items/{productId}
// ------------------------------------------------------------
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if _, err := h.uc.Remove(r.Context(), cartIDFrom(r), chi.URLParam(r, "productId")); err != nil {
		writeUsecaseErr(w, r, "CartHandler", err)
		return
	}
	h.reply(w, r, http.StatusOK)
}

// ------------------------------------------------------------
// DELETE /cart
// ------------------------------------------------------------
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.Clear(r.Context(), cartIDFrom(r)); err != nil {
		writeUsecaseErr(w, r, "CartHandler", err)
		return
	}
	h.reply(w, r, http.StatusOK)
}

// reply renders the materialized cart (stale products are dropped from items
// and total). count sums the stored quantities, stale lines included.
func (h *CartHandler) reply(w http.ResponseWriter, r *http.Request, status int) {
	cartID := cartIDFrom(r)
	items, err := h.uc.Materialize(r.Context(), cartID)
	if err != nil {
		writeUsecaseErr(w, r, "CartHandler", err)
		return
	}
	if items == nil {
		items = []usecase.CartItemView{}
	}
	count, err := h.uc.Count(r.Context(), cartID)
	if err != nil {
		writeUsecaseErr(w, r, "CartHandler", err)
		return
	}
	writeJSON(w, status, cartResponse{
		CartID: cartID,
		Items:  items,
		Count:  count,
		Total:  usecase.SumItems(items).InexactFloat64(),
	})
}
