// backend/internal/adapters/in/http/handlers/order_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	usecase "verseone/internal/application/usecase"
	"verseone/internal/domain/common"
	orderdom "verseone/internal/domain/order"
)

// OrderHandler は /checkout と /admin/orders を担当します。
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type checkoutResponse struct {
	usecase.CheckoutResult
	CSV string `json:"csv"`
}

// orderSummary is one row of the admin order list.
type orderSummary struct {
	orderdom.Order
	Total     float64 `json:"total"`
	ItemCount int     `json:"itemCount"`
}

// ------------------------------------------------------------
// POST /checkout
//   body: { customerName, phone, email, address }
//   → cart を注文に変換し、cart を空にする
// ------------------------------------------------------------
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var c orderdom.Customer
	if err := decodeJSON(r, &c); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	res, err := h.uc.Checkout(r.Context(), cartIDFrom(r), c)
	if err != nil {
		writeUsecaseErr(w, r, "OrderHandler", err)
		return
	}
	writeJSON(w, http.StatusCreated, checkoutResponse{CheckoutResult: res, CSV: res.CSV})
}

// ------------------------------------------------------------
// GET /admin/orders[?page=N&perPage=M]
//   page 指定時は PageResult で返す
// ------------------------------------------------------------
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.uc.List(r.Context())
	if err != nil {
		writeUsecaseErr(w, r, "OrderHandler", err)
		return
	}
	out := make([]orderSummary, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderSummary{
			Order:     o,
			Total:     o.Total().InexactFloat64(),
			ItemCount: o.ItemCount(),
		})
	}

	q := r.URL.Query()
	if q.Get("page") == "" {
		writeJSON(w, http.StatusOK, out)
		return
	}
	writeJSON(w, http.StatusOK, common.Paginate(out, common.Page{
		Number:  parseIntDefault(q.Get("page"), 1),
		PerPage: parseIntDefault(q.Get("perPage"), common.DefaultPerPage),
	}))
}

// ------------------------------------------------------------
// GET /admin/orders/{orderId}
// ------------------------------------------------------------
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.uc.Get(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		writeUsecaseErr(w, r, "OrderHandler", err)
		return
	}
	writeJSON(w, http.StatusOK, orderSummary{
		Order:     o,
		Total:     o.Total().InexactFloat64(),
		ItemCount: o.ItemCount(),
	})
}

// ------------------------------------------------------------
// GET /admin/orders/{orderId}/csv
// ------------------------------------------------------------
func (h *OrderHandler) CSV(w http.ResponseWriter, r *http.Request) {
	filename, body, err := h.uc.ExportCSV(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		writeUsecaseErr(w, r, "OrderHandler", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

type statusRequest struct {
	Status string `json:"status"`
}

// ------------------------------------------------------------
// PATCH /admin/orders/{orderId}/status  body: {status}
// ------------------------------------------------------------
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	orderID := chi.URLParam(r, "orderId")
	status := orderdom.Status(strings.ToLower(strings.TrimSpace(req.Status)))

	n, err := h.uc.UpdateStatus(r.Context(), orderID, status)
	if err != nil {
		writeUsecaseErr(w, r, "OrderHandler", err)
		return
	}
	auditAdmin(r, "OrderHandler", "status orderId=%s status=%s records=%d", orderID, status, n)
	writeJSON(w, http.StatusOK, map[string]any{
		"orderId": orderID,
		"status":  status,
		"updated": n,
	})
}
