// backend/internal/platform/di/container.go
package di

import (
	"context"
	"errors"
	"log"
	"net/http"

	httpin "verseone/internal/adapters/in/http"
	"verseone/internal/adapters/in/http/middleware"
	dbout "verseone/internal/adapters/out/db"
	fs "verseone/internal/adapters/out/firestore"
	gcsout "verseone/internal/adapters/out/gcs"
	"verseone/internal/adapters/out/local"
	mailout "verseone/internal/adapters/out/mail"
	usecase "verseone/internal/application/usecase"
	appcfg "verseone/internal/infra/config"
	"verseone/internal/platform/di/shared"
)

// Container は main.go から使う依存オブジェクトの束。
// これを返したい目的は：main.go を極限まで薄くすること。
type Container struct {
	Infra *shared.Infra

	// Usecases
	CatalogUC *usecase.CatalogUsecase
	CartUC    *usecase.CartUsecase
	OrderUC   *usecase.OrderUsecase
	ImageUC   *usecase.ImageUsecase
	SyncUC    *usecase.SyncUsecase

	// Inbound
	Router http.Handler
}

// Close は Cloud Run 終了時などに呼んで安全にリソースを閉じる。
func (c *Container) Close() {
	if c == nil {
		return
	}
	_ = c.Infra.Close()
}

// Build は DIコンテナを初期化して返す。
// - 環境変数/設定の読み込み済み cfg をもらう
// - ローカルストアと外部クライアントを組み立てる
// - Repository実装とUsecaseとHandlerを全部つなぐ
func Build(ctx context.Context, cfg *appcfg.Config) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("di: config is nil")
	}

	// ------------------------------------------------------------
	// 1. 外部リソース初期化 (Local store / Firestore / Postgres / GCS / Auth)
	// ------------------------------------------------------------
	inf, err := shared.NewInfra(ctx, cfg)
	if err != nil {
		return nil, err
	}

	c, err := BuildWithInfra(ctx, inf)
	if err != nil {
		_ = inf.Close()
		return nil, err
	}
	return c, nil
}

// BuildWithInfra wires usecases and the router on top of an existing Infra.
// Nil clients in inf disable the matching remote features.
func BuildWithInfra(ctx context.Context, inf *shared.Infra) (*Container, error) {
	if inf == nil || inf.LocalStore == nil {
		return nil, errors.New("di: infra or local store is nil")
	}
	cfg := inf.Config
	if cfg == nil {
		cfg = &appcfg.Config{}
	}

	// ------------------------------------------------------------
	// 2. Repository (outbound adapter) を初期化
	// ------------------------------------------------------------
	productRepo := local.NewProductRepositoryLocal(inf.LocalStore)
	orderRepo := local.NewOrderRepositoryLocal(inf.LocalStore)
	cartRepo := local.NewCartRepositoryLocal(inf.LocalStore)

	// remote ports: nil のままなら「未設定」（typed nil を入れないこと）
	productRemote, orderRemote := remotePorts(inf)

	var imageStore usecase.ImageStore
	if inf.GCS != nil && inf.Settings.StorageBucket != "" {
		imageStore = gcsout.NewProductImageRepositoryGCS(inf.GCS, inf.Settings.StorageBucket)
	}

	// ------------------------------------------------------------
	// 3. Usecase を初期化
	// ------------------------------------------------------------
	catalogUC := usecase.NewCatalogUsecase(productRepo, productRemote, usecase.UUIDGenerator{})
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(orderRepo, orderRemote, cartUC)
	imageUC := usecase.NewImageUsecase(imageStore)
	syncUC := usecase.NewSyncUsecase(productRepo, orderRepo, productRemote, orderRemote).
		WithOrderLock(orderUC.StoreLock())

	var testMailer httpin.TestMailer
	if mailer := mailout.NewOrderMailerWithSendGrid(
		inf.ResolveSendGridAPIKey(ctx),
		inf.Settings.SendGridFrom,
		inf.Settings.OrderNotifyTo,
	); mailer != nil {
		orderUC.WithNotifier(mailer)
		testMailer = mailer
	}

	// ------------------------------------------------------------
	// 4. Inbound HTTP Router を初期化
	// ------------------------------------------------------------
	adminAuth := &middleware.AdminAuth{StaticToken: cfg.AdminToken}
	if inf.FirebaseAuth != nil {
		adminAuth.Firebase = inf.FirebaseAuth
	}
	if !adminAuth.Enabled() {
		log.Printf("[di] WARN: neither Firebase Auth nor ADMIN_TOKEN configured; /admin is disabled")
	}

	router := httpin.NewRouter(httpin.RouterDeps{
		CatalogUC:   catalogUC,
		CartUC:      cartUC,
		OrderUC:     orderUC,
		ImageUC:     imageUC,
		SyncUC:      syncUC,
		AdminAuth:   adminAuth,
		Mailer:      testMailer,
		CORSOrigins: cfg.CORSAllowedOrigins,
	})

	log.Printf("[di] container built local=%s remote=%s images=%t notify=%t",
		inf.Settings.LocalStore, remoteName(productRemote, inf), imageUC.Available(), testMailer != nil)

	return &Container{
		Infra:     inf,
		CatalogUC: catalogUC,
		CartUC:    cartUC,
		OrderUC:   orderUC,
		ImageUC:   imageUC,
		SyncUC:    syncUC,
		Router:    router,
	}, nil
}

// Postgres は注文ステータスをトランザクションでまとめて更新する
var _ usecase.OrderStatusBatchUpdater = (*dbout.OrderRepositoryPG)(nil)

func remotePorts(inf *shared.Infra) (usecase.ProductRemote, usecase.OrderRemote) {
	switch {
	case inf.Firestore != nil:
		return fs.NewProductRepositoryFS(inf.Firestore), fs.NewOrderRepositoryFS(inf.Firestore)
	case inf.Postgres != nil && inf.Postgres.Client != nil:
		return dbout.NewProductRepositoryPG(inf.Postgres.Client), dbout.NewOrderRepositoryPG(inf.Postgres.Client)
	}
	return nil, nil
}

func remoteName(p usecase.ProductRemote, inf *shared.Infra) string {
	if p == nil {
		return appcfg.RemoteNone
	}
	return inf.Settings.RemoteBackend
}
