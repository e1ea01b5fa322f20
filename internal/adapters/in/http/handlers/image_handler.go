// backend/internal/adapters/in/http/handlers/image_handler.go
package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	usecase "verseone/internal/application/usecase"
)

// ImageHandler は商品画像アップロード（/admin/images）を担当します。
type ImageHandler struct {
	uc *usecase.ImageUsecase
}

func NewImageHandler(uc *usecase.ImageUsecase) *ImageHandler {
	return &ImageHandler{uc: uc}
}

// multipart のオーバーヘッド分だけ上限に余裕を持たせる
const maxUploadBody = usecase.MaxImageBytes + 64<<10

// ------------------------------------------------------------
// POST /admin/images
//   multipart/form-data: file=<image>, productId=<optional>
//   → { url }
// ------------------------------------------------------------
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if !h.uc.Available() {
		writeUsecaseErr(w, r, "ImageHandler", usecase.ErrImageStoreUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxUploadBody); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeUsecaseErr(w, r, "ImageHandler", usecase.ErrImageTooLarge)
			return
		}
		writeErr(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeErr(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	// 上限 + 1 byte まで読んで超過を検出する
	data, err := io.ReadAll(io.LimitReader(file, usecase.MaxImageBytes+1))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "read file failed")
		return
	}

	productID := strings.TrimSpace(r.FormValue("productId"))
	url, err := h.uc.Upload(r.Context(), usecase.UploadImageInput{
		ProductID: productID,
		FileName:  header.Filename,
		Data:      data,
		OnProgress: func(fraction float64) {
			log.Printf("[ImageHandler] upload progress file=%s %.0f%%", header.Filename, fraction*100)
		},
	})
	if err != nil {
		writeUsecaseErr(w, r, "ImageHandler", err)
		return
	}
	auditAdmin(r, "ImageHandler", "upload productId=%s url=%s", productID, url)
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

// ------------------------------------------------------------
// DELETE /admin/images?url=...
//   管理外の URL は無視（removed=false）
// ------------------------------------------------------------
func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	url := strings.TrimSpace(r.URL.Query().Get("url"))
	if url == "" {
		writeErr(w, http.StatusBadRequest, "url query parameter is required")
		return
	}
	removed, err := h.uc.Delete(r.Context(), url)
	if err != nil {
		writeUsecaseErr(w, r, "ImageHandler", err)
		return
	}
	auditAdmin(r, "ImageHandler", "delete url=%s removed=%t", url, removed)
	writeJSON(w, http.StatusOK, map[string]any{"url": url, "removed": removed})
}
