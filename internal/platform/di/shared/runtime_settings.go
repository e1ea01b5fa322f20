// backend/internal/platform/di/shared/runtime_settings.go
package shared

import (
	"errors"
	"os"
	"strings"

	appcfg "verseone/internal/infra/config"
)

// RuntimeSettings is env/config-resolved runtime settings (normalized once).
// It intentionally contains only "values" (no external clients).
//
// Policy:
// - Prefer config (cfg) where available.
// - Use env fallbacks where historically used.
// - Keep hard validation in runtime_settings_validate.go.
type RuntimeSettings struct {
	ProjectID string

	LocalStore  string // file | redis | memory
	DataDir     string
	RedisAddr   string
	RedisPrefix string

	RemoteBackend string // firestore | postgres | none
	DatabaseURL   string

	// Product images (Firebase Storage / GCS)
	StorageBucket string

	// Order notification
	SendGridFrom  string
	OrderNotifyTo string
}

// RemoteEnabled reports whether a remote document store was requested.
func (s RuntimeSettings) RemoteEnabled() bool {
	return s.RemoteBackend != appcfg.RemoteNone
}

// ResolveRuntimeSettings resolves and normalizes runtime settings from cfg/env.
//
// Notes:
// - This function is side-effect free (no logging).
// - It returns warnings as strings so callers can decide how to surface them.
func ResolveRuntimeSettings(cfg *appcfg.Config) (RuntimeSettings, []string, error) {
	if cfg == nil {
		return RuntimeSettings{}, nil, errors.New("shared.runtime_settings: cfg is nil")
	}

	var warns []string
	s := RuntimeSettings{
		ProjectID:     resolveProjectID(cfg),
		LocalStore:    strings.ToLower(strings.TrimSpace(cfg.LocalStore)),
		DataDir:       strings.TrimSpace(cfg.DataDir),
		RedisAddr:     strings.TrimSpace(cfg.RedisAddr),
		RedisPrefix:   cfg.RedisPrefix,
		RemoteBackend: strings.ToLower(strings.TrimSpace(cfg.RemoteBackend)),
		DatabaseURL:   strings.TrimSpace(cfg.DatabaseURL),
		StorageBucket: normalizeBucket(cfg.StorageBucket),
		SendGridFrom:  strings.TrimSpace(cfg.SendGridFrom),
		OrderNotifyTo: strings.TrimSpace(cfg.OrderNotifyTo),
	}

	if s.LocalStore == "" {
		s.LocalStore = appcfg.LocalStoreFile
	}
	if s.LocalStore == appcfg.LocalStoreFile && s.DataDir == "" {
		s.DataDir = "./data"
	}
	if s.RemoteBackend == "" {
		s.RemoteBackend = appcfg.RemoteNone
	}

	switch s.RemoteBackend {
	case appcfg.RemoteFirestore:
		if s.ProjectID == "" {
			warns = append(warns, "REMOTE_BACKEND=firestore but no project id (set FIRESTORE_PROJECT_ID or GCP_PROJECT_ID); running local-only")
		}
	case appcfg.RemotePostgres:
		if s.DatabaseURL == "" {
			warns = append(warns, "REMOTE_BACKEND=postgres but DATABASE_URL is empty; running local-only")
		}
	}
	if s.StorageBucket == "" {
		warns = append(warns, "STORAGE_BUCKET is empty (product image upload disabled)")
	}

	return s, warns, nil
}

func resolveProjectID(cfg *appcfg.Config) string {
	// Priority:
	// 1) cfg.FirestoreProjectID (resolved by config.Load)
	// 2) cfg.FirebaseProjectID
	// 3) GOOGLE_CLOUD_PROJECT (often set in Cloud Run)
	for _, v := range []string{cfg.FirestoreProjectID, cfg.GCPProjectID, cfg.FirebaseProjectID} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return getenvTrim("GOOGLE_CLOUD_PROJECT")
}

// normalizeBucket accepts "gs://bucket/" style values as well.
func normalizeBucket(b string) string {
	b = strings.TrimSpace(b)
	b = strings.TrimPrefix(b, "gs://")
	return strings.TrimRight(b, "/")
}

func getenvTrim(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
