// backend/cmd/seed_products/main.go
package main

import (
	"context"
	"log"

	fs "verseone/internal/adapters/out/firestore"
	productdom "verseone/internal/domain/product"
	appcfg "verseone/internal/infra/config"
	firestoreinfra "verseone/internal/infra/firestore"
)

// Writes the default catalog into the Firestore products collection.
// Existing documents with the same ids are merge-updated.
func main() {
	ctx := context.Background()
	cfg := appcfg.Load()

	projectID := cfg.FirestoreProjectID
	if projectID == "" {
		projectID = cfg.FirebaseProjectID
	}
	if projectID == "" {
		log.Fatalf("[seed] FIRESTORE_PROJECT_ID / GCP_PROJECT_ID is empty")
	}

	cw, err := firestoreinfra.NewClient(ctx, projectID, cfg.CredentialsFile())
	if err != nil {
		log.Fatalf("[seed] firestore: %v", err)
	}
	defer cw.Close()

	if err := cw.Ping(ctx); err != nil {
		log.Fatalf("[seed] %v", err)
	}

	repo := fs.NewProductRepositoryFS(cw.Client)
	n := 0
	for _, p := range productdom.DefaultCatalog() {
		// catalog の ID をそのまま doc ID に使う
		id, err := repo.Put(ctx, p)
		if err != nil {
			log.Printf("[seed] WARN: put %s failed: %v", p.ID, err)
			continue
		}
		log.Printf("[seed] products/%s %q", id, p.Title)
		n++
	}

	log.Printf("[seed] %d products seeded into project=%s", n, projectID)
}
