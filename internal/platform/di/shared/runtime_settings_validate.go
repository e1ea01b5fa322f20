// backend/internal/platform/di/shared/runtime_settings_validate.go
package shared

import (
	"fmt"
	"strings"

	appcfg "verseone/internal/infra/config"
)

// Validate performs hard validation for RuntimeSettings.
//
// Policy:
//   - It should fail fast for values that would cause undefined behavior,
//     while allowing optional features to remain disabled when settings are empty.
func (s RuntimeSettings) Validate() error {
	switch s.LocalStore {
	case appcfg.LocalStoreFile:
		if strings.TrimSpace(s.DataDir) == "" {
			return fmt.Errorf("shared.runtime_settings: DATA_DIR is empty")
		}
	case appcfg.LocalStoreRedis:
		if strings.TrimSpace(s.RedisAddr) == "" {
			return fmt.Errorf("shared.runtime_settings: LOCAL_STORE=redis requires REDIS_ADDR")
		}
	case appcfg.LocalStoreMemory:
	default:
		return fmt.Errorf("shared.runtime_settings: unknown LOCAL_STORE %q (file|redis|memory)", s.LocalStore)
	}

	switch s.RemoteBackend {
	case appcfg.RemoteFirestore, appcfg.RemotePostgres, appcfg.RemoteNone:
	default:
		return fmt.Errorf("shared.runtime_settings: unknown REMOTE_BACKEND %q (firestore|postgres|none)", s.RemoteBackend)
	}

	// GCS bucket names cannot contain spaces or slashes.
	if strings.ContainsAny(s.StorageBucket, " \t\r\n/") {
		return fmt.Errorf("shared.runtime_settings: StorageBucket is not a bucket name (got %q)", s.StorageBucket)
	}

	return nil
}
