// backend/internal/adapters/in/http/handlers/sync_handler.go
package handlers

import (
	"net/http"

	usecase "verseone/internal/application/usecase"
)

// SyncHandler は POST /admin/sync（手動の migrate → refresh）を担当します。
type SyncHandler struct {
	uc *usecase.SyncUsecase
}

func NewSyncHandler(uc *usecase.SyncUsecase) *SyncHandler {
	return &SyncHandler{uc: uc}
}

func (h *SyncHandler) Run(w http.ResponseWriter, r *http.Request) {
	products, orders, err := h.uc.Run(r.Context())
	if err != nil {
		writeUsecaseErr(w, r, "SyncHandler", err)
		return
	}
	auditAdmin(r, "SyncHandler", "run products=%+v orders=%+v", products, orders)
	writeJSON(w, http.StatusOK, map[string]usecase.SyncReport{
		"products": products,
		"orders":   orders,
	})
}
