// backend/internal/infra/firestore/client.go
package firestoreinfra

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// ストアフロントがリモートに持つコレクション。
const (
	CollectionProducts = "products"
	CollectionOrders   = "orders"
)

var ErrProjectIDRequired = errors.New("firestoreinfra: project id is required")

// ClientWrapper は Firestore クライアントと接続先情報をまとめたもの。
type ClientWrapper struct {
	Client    *firestore.Client
	ProjectID string
	Emulator  string // FIRESTORE_EMULATOR_HOST (空なら本番)
}

// NewClient は Firestore クライアントを初期化します。
// credentialsFile が空なら ADC を使う。エミュレータ接続時は credentials を渡さない。
func NewClient(ctx context.Context, projectID string, credentialsFile string) (*ClientWrapper, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, ErrProjectIDRequired
	}

	emulator := strings.TrimSpace(os.Getenv("FIRESTORE_EMULATOR_HOST"))

	var opts []option.ClientOption
	if credentialsFile = strings.TrimSpace(credentialsFile); credentialsFile != "" && emulator == "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestoreinfra: create client: %w", err)
	}

	if emulator != "" {
		log.Printf("[firestore] connected to emulator %s (project: %s)", emulator, projectID)
	} else {
		log.Printf("[firestore] connected (project: %s)", projectID)
	}
	return &ClientWrapper{Client: client, ProjectID: projectID, Emulator: emulator}, nil
}

// Ping reads at most one document from each storefront collection.
// An empty collection is fine; only transport or permission errors fail.
func (cw *ClientWrapper) Ping(ctx context.Context) error {
	if cw == nil || cw.Client == nil {
		return errors.New("firestoreinfra: client is nil")
	}
	for _, name := range []string{CollectionProducts, CollectionOrders} {
		it := cw.Client.Collection(name).Limit(1).Documents(ctx)
		_, err := it.Next()
		it.Stop()
		if err != nil && !errors.Is(err, iterator.Done) {
			return fmt.Errorf("firestoreinfra: ping %s: %w", name, err)
		}
	}
	return nil
}

// Close は Firestore クライアントをクローズします。
func (cw *ClientWrapper) Close() error {
	if cw == nil || cw.Client == nil {
		return nil
	}
	return cw.Client.Close()
}
