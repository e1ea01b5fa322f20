// backend/cmd/ddlgen/main.go
package main

import (
	"fmt"
	"os"
	"path/filepath"

	dbout "verseone/internal/adapters/out/db"
)

func mustWrite(path string, content string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		panic(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		panic(err)
	}
}

func main() {
	outDir := filepath.Join("internal", "infra", "database", "migrations")

	// products / orders は同じ JSONB ドキュメントスキーマ
	outInit := filepath.Join(outDir, "init_storefront.sql")

	mustWrite(outInit, dbout.Schema)
	fmt.Println("✅ Generated:", outInit)
}
