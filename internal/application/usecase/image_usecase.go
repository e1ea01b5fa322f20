// backend/internal/application/usecase/image_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
)

// MaxImageBytes is the upload limit, enforced before anything is sent.
const MaxImageBytes = 5 << 20

var (
	ErrImageStoreUnavailable = errors.New("image_usecase: image store is not configured")
	ErrImageInvalid          = errors.New("image_usecase: not a supported image (jpeg, png, gif, webp)")
	ErrImageTooLarge         = errors.New("image_usecase: image exceeds 5MB")
)

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// UploadImageInput is one product image upload.
type UploadImageInput struct {
	ProductID  string // empty -> "temp"
	FileName   string
	Data       []byte
	OnProgress ProgressFunc
}

// ImageUsecase validates and stores product images in the remote blob store.
type ImageUsecase struct {
	store ImageStore // nil = not configured
	clock Clock
}

func NewImageUsecase(store ImageStore) *ImageUsecase {
	return NewImageUsecaseWithClock(store, nil)
}

func NewImageUsecaseWithClock(store ImageStore, clock Clock) *ImageUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &ImageUsecase{store: store, clock: clock}
}

// Available reports whether uploads can succeed at all.
func (uc *ImageUsecase) Available() bool { return uc != nil && uc.store != nil }

// Upload validates in and returns the public URL of the stored object.
func (uc *ImageUsecase) Upload(ctx context.Context, in UploadImageInput) (string, error) {
	if !uc.Available() {
		return "", ErrImageStoreUnavailable
	}
	contentType, err := ValidateImage(in.Data)
	if err != nil {
		return "", err
	}

	objectPath := ImageObjectPath(in.ProductID, uc.clock.Now().UnixMilli(), in.FileName)
	url, err := uc.store.Put(ctx, objectPath, contentType, in.Data, in.OnProgress)
	if err != nil {
		return "", fmt.Errorf("image_usecase: upload %s: %w", objectPath, err)
	}
	return url, nil
}

// Delete removes an uploaded image. URLs the store does not own are ignored.
func (uc *ImageUsecase) Delete(ctx context.Context, url string) (bool, error) {
	if !uc.Available() || strings.TrimSpace(url) == "" {
		return false, nil
	}
	return uc.store.Delete(ctx, url)
}

// ValidateImage checks size and sniffed type, returning the content type.
func ValidateImage(data []byte) (string, error) {
	if len(data) > MaxImageBytes {
		return "", ErrImageTooLarge
	}
	if len(data) == 0 {
		return "", ErrImageInvalid
	}
	ct := http.DetectContentType(data)
	if _, ok := allowedImageTypes[ct]; !ok {
		return "", ErrImageInvalid
	}
	return ct, nil
}

// ImageObjectPath builds products/{productId|temp}_{unixMillis}_{filename}.
func ImageObjectPath(productID string, unixMillis int64, fileName string) string {
	owner := sanitizeSegment(productID)
	if owner == "" {
		owner = "temp"
	}
	name := sanitizeSegment(path.Base(strings.ReplaceAll(fileName, "\\", "/")))
	if name == "" || name == "." {
		name = "image"
	}
	return fmt.Sprintf("products/%s_%d_%s", owner, unixMillis, name)
}

// sanitizeSegment keeps a value safe for a single object-path segment.
func sanitizeSegment(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
