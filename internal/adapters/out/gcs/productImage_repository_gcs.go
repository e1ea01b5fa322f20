// backend/internal/adapters/out/gcs/productImage_repository_gcs.go
package gcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"verseone/internal/adapters/out/gcs/common"
	"verseone/internal/application/usecase"
)

// ProductImageRepositoryGCS stores product images in the Firebase Storage
// bucket. It implements usecase.ImageStore.
//
// Layout:
//   - bucket: <project>.appspot.com (STORAGE_BUCKET)
//   - objectPath: products/{productId|temp}_{unixMillis}_{fileName}
//
// Returned URLs are Firebase download URLs, so they resolve without making the
// bucket public.
type ProductImageRepositoryGCS struct {
	Client *storage.Client
	Bucket string

	// overridable in tests
	newToken func() string
}

func NewProductImageRepositoryGCS(client *storage.Client, bucket string) *ProductImageRepositoryGCS {
	return &ProductImageRepositoryGCS{
		Client:   client,
		Bucket:   strings.TrimSpace(bucket),
		newToken: uuid.NewString,
	}
}

func (r *ProductImageRepositoryGCS) bucket() (*storage.BucketHandle, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("productImage_repository_gcs: storage client is nil")
	}
	if strings.TrimSpace(r.Bucket) == "" {
		return nil, errors.New("productImage_repository_gcs: bucket is empty")
	}
	return r.Client.Bucket(r.Bucket), nil
}

// Put uploads data and returns its download URL. onProgress receives the
// fraction written; the returned URL is authoritative regardless of the last
// progress value.
func (r *ProductImageRepositoryGCS) Put(
	ctx context.Context,
	objectPath, contentType string,
	data []byte,
	onProgress usecase.ProgressFunc,
) (string, error) {
	bh, err := r.bucket()
	if err != nil {
		return "", err
	}
	obj, err := objectKey(objectPath)
	if err != nil {
		return "", err
	}

	token := r.newToken()
	total := int64(len(data))

	w := bh.Object(obj).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=31536000"
	w.Metadata = map[string]string{
		common.FirebaseTokenMetaKey: token,
	}
	if onProgress != nil {
		w.ProgressFunc = func(n int64) {
			onProgress(progressFraction(n, total))
		}
	}

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("productImage_repository_gcs: write %s: %w", obj, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("productImage_repository_gcs: close %s: %w", obj, err)
	}
	if onProgress != nil {
		onProgress(1)
	}

	log.Printf("[productImage_repository_gcs] uploaded gs://%s/%s (%d bytes)", r.Bucket, obj, total)
	return common.FirebaseDownloadURL(r.Bucket, obj, token), nil
}

// Delete removes the object behind url. URLs outside this bucket (external
// image links, data: URLs) are left alone and reported as (false, nil).
func (r *ProductImageRepositoryGCS) Delete(ctx context.Context, url string) (bool, error) {
	bucket, obj, ok := common.ParseGCSURL(url)
	if !ok || bucket != r.Bucket {
		return false, nil
	}
	bh, err := r.bucket()
	if err != nil {
		return false, err
	}

	if err := bh.Object(obj).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return false, nil
		}
		return false, err
	}
	log.Printf("[productImage_repository_gcs] deleted gs://%s/%s", bucket, obj)
	return true, nil
}
