// backend/internal/adapters/out/gcs/common/gcs_repository.go
package common

import (
	"fmt"
	"net/url"
	"strings"
)

// FirebaseStorageHost serves Firebase download-token URLs.
const FirebaseStorageHost = "firebasestorage.googleapis.com"

// FirebaseTokenMetaKey is the object metadata key holding download tokens.
const FirebaseTokenMetaKey = "firebaseStorageDownloadTokens"

// FirebaseDownloadURL builds the token URL the Firebase web SDK hands out
// (getDownloadURL). The object path is escaped as a single segment.
func FirebaseDownloadURL(bucket, objectPath, token string) string {
	obj := strings.TrimLeft(strings.TrimSpace(objectPath), "/")
	return fmt.Sprintf("https://%s/v0/b/%s/o/%s?alt=media&token=%s",
		FirebaseStorageHost,
		strings.TrimSpace(bucket),
		url.PathEscape(obj),
		url.QueryEscape(token),
	)
}

// ParseGCSURL parses a GCS-like URL and returns (bucket, objectPath, ok).
// 対応例:
//   - https://storage.googleapis.com/<bucket>/<object>
//   - https://storage.cloud.google.com/<bucket>/<object>
//   - https://firebasestorage.googleapis.com/v0/b/<bucket>/o/<escaped object>?alt=media&token=...
//   - gs://<bucket>/<object>
func ParseGCSURL(u string) (string, string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(u))
	if err != nil {
		return "", "", false
	}

	if parsed.Scheme == "gs" {
		obj := strings.TrimLeft(parsed.Path, "/")
		if parsed.Host == "" || obj == "" {
			return "", "", false
		}
		return parsed.Host, obj, true
	}

	host := strings.ToLower(parsed.Host)
	if host == FirebaseStorageHost {
		return parseFirebasePath(parsed.EscapedPath())
	}
	if host != "storage.googleapis.com" && host != "storage.cloud.google.com" {
		return "", "", false
	}

	p := strings.TrimLeft(parsed.EscapedPath(), "/")
	if p == "" {
		return "", "", false
	}

	parts := strings.SplitN(p, "/", 2)
	if len(parts) < 2 {
		return "", "", false
	}

	bucket := parts[0]
	objectPath, err := url.PathUnescape(parts[1])
	if err != nil {
		return "", "", false
	}

	return bucket, objectPath, true
}

// parseFirebasePath handles /v0/b/<bucket>/o/<escaped object>.
func parseFirebasePath(escaped string) (string, string, bool) {
	parts := strings.SplitN(strings.TrimLeft(escaped, "/"), "/", 5)
	if len(parts) != 5 || parts[0] != "v0" || parts[1] != "b" || parts[3] != "o" {
		return "", "", false
	}
	obj, err := url.PathUnescape(parts[4])
	if err != nil || obj == "" || parts[2] == "" {
		return "", "", false
	}
	return parts[2], obj, true
}
