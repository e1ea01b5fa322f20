// backend/internal/infra/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
)

// 保存先の種類
const (
	LocalStoreFile   = "file"
	LocalStoreRedis  = "redis"
	LocalStoreMemory = "memory"

	RemoteFirestore = "firestore"
	RemotePostgres  = "postgres"
	RemoteNone      = "none"
)

// Config はアプリケーション全体の環境変数設定を保持します。
type Config struct {
	Port    string
	LogFile string

	// Local store (caller-visible source of truth)
	LocalStore  string // file | redis | memory
	DataDir     string
	RedisAddr   string
	RedisPrefix string

	// Remote store
	RemoteBackend            string // firestore | postgres | none
	GCPProjectID             string
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	GCPCreds                 string
	FirebaseProjectID        string
	StorageBucket            string
	DatabaseURL              string

	// Order notification (SendGrid)
	SendGridAPIKey       string
	SendGridAPIKeySecret string // Secret Manager resource name
	SendGridFrom         string
	OrderNotifyTo        string

	// Admin / HTTP
	AdminToken         string
	CORSAllowedOrigins []string

	// Boot behaviour
	SeedDefaultProducts bool
	SyncOnBoot          bool
}

// Load は環境変数を読み込み Config を返します。
func Load() *Config {
	// ベースとなる GCP プロジェクト ID
	defaultProject := os.Getenv("GCP_PROJECT_ID")

	cfg := &Config{
		Port:    getenvDefault("PORT", "8080"),
		LogFile: os.Getenv("LOG_FILE"),

		LocalStore:  strings.ToLower(getenvDefault("LOCAL_STORE", LocalStoreFile)),
		DataDir:     getenvDefault("DATA_DIR", "./data"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		RedisPrefix: getenvDefault("REDIS_PREFIX", "verseone:"),

		RemoteBackend:            strings.ToLower(getenvDefault("REMOTE_BACKEND", RemoteFirestore)),
		GCPProjectID:             defaultProject,
		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		// FIREBASE_PROJECT_ID が未指定なら GCP のデフォルトを使う
		FirebaseProjectID: getenvDefault("FIREBASE_PROJECT_ID", defaultProject),
		StorageBucket:     os.Getenv("STORAGE_BUCKET"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),

		SendGridAPIKey:       os.Getenv("SENDGRID_API_KEY"),
		SendGridAPIKeySecret: os.Getenv("SENDGRID_API_KEY_SECRET"),
		SendGridFrom:         os.Getenv("SENDGRID_FROM"),
		OrderNotifyTo:        os.Getenv("ORDER_NOTIFY_TO"),

		AdminToken:         os.Getenv("ADMIN_TOKEN"),
		CORSAllowedOrigins: splitList(getenvDefault("CORS_ALLOWED_ORIGINS", "*")),

		SeedDefaultProducts: getenvBool("SEED_DEFAULT_PRODUCTS", true),
		SyncOnBoot:          getenvBool("SYNC_ON_BOOT", true),
	}

	// bucket 未指定なら Firebase のデフォルトバケット
	if cfg.StorageBucket == "" && cfg.FirebaseProjectID != "" {
		cfg.StorageBucket = cfg.FirebaseProjectID + ".appspot.com"
	}

	return cfg
}

// CredentialsFile returns the credentials file shared by all GCP clients
// (FIRESTORE_CREDENTIALS_FILE first, then GOOGLE_APPLICATION_CREDENTIALS).
func (c *Config) CredentialsFile() string {
	if v := strings.TrimSpace(c.FirestoreCredentialsFile); v != "" {
		return v
	}
	return strings.TrimSpace(c.GCPCreds)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
