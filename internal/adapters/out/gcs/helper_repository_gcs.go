// backend/internal/adapters/out/gcs/helper_repository_gcs.go
package gcs

import (
	"errors"
	"path"
	"strings"
)

// objectKey normalises objectPath into a bucket object name. The caller's
// file name is kept as given; no extension is added.
func objectKey(objectPath string) (string, error) {
	obj := strings.TrimLeft(strings.TrimSpace(objectPath), "/")
	if obj == "" || path.Base(obj) == "." {
		return "", errors.New("productImage_repository_gcs: objectPath is empty")
	}
	return obj, nil
}

// progressFraction converts bytes written into [0, 1].
func progressFraction(written, total int64) float64 {
	if total <= 0 {
		return 1
	}
	f := float64(written) / float64(total)
	if f > 1 {
		return 1
	}
	if f < 0 {
		return 0
	}
	return f
}
