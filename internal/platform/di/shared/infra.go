// backend/internal/platform/di/shared/infra.go
package shared

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	dbout "verseone/internal/adapters/out/db"
	"verseone/internal/adapters/out/local"
	appcfg "verseone/internal/infra/config"
	"verseone/internal/infra/database"
	firestoreinfra "verseone/internal/infra/firestore"
	"verseone/internal/infra/secret"
)

// Infra is shared runtime infrastructure for DI.
// - owns the local store (strict: the app cannot run without it)
// - owns external clients (Firestore/Postgres/GCS/FirebaseAuth/SecretManager/Redis)
// - owns env/config-resolved runtime settings
//
// Remote clients are best-effort: a client that fails to initialize is left
// nil and the features using it are disabled (warn + continue).
//
// IMPORTANT:
// Infra must NOT depend on routers, handlers, or usecases.
type Infra struct {
	// Config
	Config   *appcfg.Config
	Settings RuntimeSettings

	// Local store (caller-visible source of truth)
	LocalStore local.Store

	// Clients (owned; Close-managed)
	Redis         *redis.Client
	Firestore     *firestore.Client
	Postgres      *database.DB
	GCS           *storage.Client
	FirebaseApp   *firebase.App
	FirebaseAuth  *firebaseauth.Client
	SecretManager *secretmanager.Client
}

// NewInfra initializes shared infra.
// The local store is strict (return error).
// Firestore/Postgres, GCS, Firebase/Auth and SecretManager are best-effort.
func NewInfra(ctx context.Context, cfg *appcfg.Config) (*Infra, error) {
	if cfg == nil {
		return nil, errors.New("shared.infra: config is nil")
	}

	settings, warns, err := ResolveRuntimeSettings(cfg)
	if err != nil {
		return nil, err
	}
	for _, w := range warns {
		log.Printf("[shared.infra] WARN: %s", w)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	inf := &Infra{Config: cfg, Settings: settings}

	// Credentials file (optional; mainly for local dev)
	var clientOpts []option.ClientOption
	if credFile := cfg.CredentialsFile(); credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
		log.Printf("[shared.infra] Using credentials file for GCP clients: %s", redactPath(credFile))
	} else {
		log.Printf("[shared.infra] Using Application Default Credentials (no credentials file configured)")
	}

	// 1) Local store (strict)
	if err := inf.initLocalStore(ctx); err != nil {
		_ = inf.Close()
		return nil, err
	}

	// 2) Remote document store (best-effort)
	switch settings.RemoteBackend {
	case appcfg.RemoteFirestore:
		if settings.ProjectID != "" {
			cw, err := firestoreinfra.NewClient(ctx, settings.ProjectID, cfg.CredentialsFile())
			if err != nil {
				log.Printf("[shared.infra] WARN: firestore init failed: %v (running local-only)", err)
			} else {
				inf.Firestore = cw.Client
			}
		}
	case appcfg.RemotePostgres:
		if settings.DatabaseURL != "" {
			db, err := database.NewConnection(ctx, settings.DatabaseURL)
			if err != nil {
				log.Printf("[shared.infra] WARN: postgres init failed: %v (running local-only)", err)
			} else if err := dbout.EnsureSchema(ctx, db.Client); err != nil {
				log.Printf("[shared.infra] WARN: postgres schema failed: %v (running local-only)", err)
				_ = db.Close()
			} else {
				inf.Postgres = db
			}
		}
	default:
		log.Printf("[shared.infra] remote store disabled (REMOTE_BACKEND=%s)", settings.RemoteBackend)
	}

	// 3) GCS (best-effort; product images)
	if settings.StorageBucket != "" {
		gcsClient, err := storage.NewClient(ctx, clientOpts...)
		if err != nil {
			log.Printf("[shared.infra] WARN: storage.NewClient failed: %v (image upload disabled)", err)
		} else {
			inf.GCS = gcsClient
			log.Printf("[shared.infra] GCS storage client initialized bucket=%s", settings.StorageBucket)
		}
	}

	// 4) Firebase App/Auth (best-effort; admin ID token verification)
	if projectID := firstNonEmpty(cfg.FirebaseProjectID, settings.ProjectID); projectID != "" {
		fbApp, err := firebase.NewApp(ctx, &firebase.Config{
			ProjectID:     projectID,
			StorageBucket: settings.StorageBucket,
		}, clientOpts...)
		if err != nil {
			log.Printf("[shared.infra] WARN: firebase app init failed: %v", err)
		} else {
			inf.FirebaseApp = fbApp
			authClient, err := fbApp.Auth(ctx)
			if err != nil {
				log.Printf("[shared.infra] WARN: firebase auth init failed: %v", err)
			} else {
				inf.FirebaseAuth = authClient
				log.Printf("[shared.infra] Firebase Auth initialized")
			}
		}
	}

	// 5) Secret Manager (best-effort; only when a secret is referenced)
	if strings.TrimSpace(cfg.SendGridAPIKeySecret) != "" {
		sm, err := secretmanager.NewClient(ctx, clientOpts...)
		if err != nil {
			log.Printf("[shared.infra] WARN: secretmanager.NewClient failed: %v (SecretManager-dependent features may be disabled)", err)
		} else {
			inf.SecretManager = sm
		}
	}

	return inf, nil
}

func (i *Infra) initLocalStore(ctx context.Context) error {
	s := i.Settings
	switch s.LocalStore {
	case appcfg.LocalStoreRedis:
		rdb := redis.NewClient(&redis.Options{Addr: s.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return fmt.Errorf("shared.infra: redis ping failed (addr=%s): %w", s.RedisAddr, err)
		}
		i.Redis = rdb
		i.LocalStore = local.NewRedisStore(rdb, s.RedisPrefix)
		log.Printf("[shared.infra] local store: redis addr=%s prefix=%s", s.RedisAddr, s.RedisPrefix)

	case appcfg.LocalStoreMemory:
		i.LocalStore = local.NewMemoryStore()
		log.Printf("[shared.infra] local store: memory (data is lost on exit)")

	default:
		fsStore, err := local.NewFileStore(s.DataDir)
		if err != nil {
			return fmt.Errorf("shared.infra: file store: %w", err)
		}
		i.LocalStore = fsStore
		log.Printf("[shared.infra] local store: file dir=%s", s.DataDir)
	}
	return nil
}

// ResolveSendGridAPIKey returns SENDGRID_API_KEY, or the Secret Manager
// secret named by SENDGRID_API_KEY_SECRET. Empty means "not configured".
func (i *Infra) ResolveSendGridAPIKey(ctx context.Context) string {
	if i == nil || i.Config == nil {
		return ""
	}
	if k := strings.TrimSpace(i.Config.SendGridAPIKey); k != "" {
		return k
	}
	name := strings.TrimSpace(i.Config.SendGridAPIKeySecret)
	if name == "" || i.SecretManager == nil {
		return ""
	}
	key, err := secret.NewResolverSM(i.SecretManager, i.Settings.ProjectID).Resolve(ctx, name)
	if err != nil {
		log.Printf("[shared.infra] WARN: resolve sendgrid key failed: %v", err)
		return ""
	}
	return key
}

func (i *Infra) Close() error {
	if i == nil {
		return nil
	}
	if i.Firestore != nil {
		_ = i.Firestore.Close()
	}
	if i.Postgres != nil {
		_ = i.Postgres.Close()
	}
	if i.GCS != nil {
		_ = i.GCS.Close()
	}
	if i.SecretManager != nil {
		_ = i.SecretManager.Close()
	}
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	return nil
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func redactPath(p string) string {
	// Do not log full path (Windows/Unix compatible light masking)
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	// Keep only the last segment
	p = strings.ReplaceAll(p, "\\", "/")
	parts := strings.Split(p, "/")
	last := parts[len(parts)-1]
	if last == "" {
		return "***"
	}
	return "***" + "/" + last
}
