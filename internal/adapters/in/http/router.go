// backend/internal/adapters/in/http/router.go
package httpin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	// ハンドラ群
	"verseone/internal/adapters/in/http/handlers"
	"verseone/internal/adapters/in/http/middleware"
	usecase "verseone/internal/application/usecase"
)

// RouterDeps collects all usecases (and other dependencies) injected from main.go.
type RouterDeps struct {
	CatalogUC *usecase.CatalogUsecase
	CartUC    *usecase.CartUsecase
	OrderUC   *usecase.OrderUsecase
	ImageUC   *usecase.ImageUsecase
	SyncUC    *usecase.SyncUsecase

	// 管理 API の認証（Firebase ID トークン / ADMIN_TOKEN）
	AdminAuth *middleware.AdminAuth

	// nil = SendGrid 未設定
	Mailer TestMailer

	CORSOrigins []string
}

// NewRouter wires every route. Middleware order (outermost first):
// CORS → RequestLog → Recover → handler.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.CORS(deps.CORSOrigins))
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recover)

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	productH := handlers.NewProductHandler(deps.CatalogUC)
	cartH := handlers.NewCartHandler(deps.CartUC)
	orderH := handlers.NewOrderHandler(deps.OrderUC)
	imageH := handlers.NewImageHandler(deps.ImageUC)
	syncH := handlers.NewSyncHandler(deps.SyncUC)

	// ------------------------------------------------------------
	// Storefront
	// ------------------------------------------------------------
	if deps.CatalogUC != nil {
		r.Get("/products", productH.List)
		r.Get("/products/{id}", productH.Get)
		r.Post("/products/{id}/reviews", productH.AddReview)
	}

	if deps.CartUC != nil {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartH.Get)
			r.Delete("/", cartH.Clear)
			r.Post("/items", cartH.AddItem)
			r.Put("/items/{productId}", cartH.SetItem)
			r.Delete("/items/{productId}", cartH.RemoveItem)
		})
	}

	if deps.OrderUC != nil {
		r.Post("/checkout", orderH.Checkout)
	}

	// ------------------------------------------------------------
	// Admin（認証必須）
	// ------------------------------------------------------------
	r.Route("/admin", func(r chi.Router) {
		r.Use(deps.AdminAuth.Handler)

		if deps.CatalogUC != nil {
			r.Post("/products", productH.Create)
			r.Put("/products/{id}", productH.Update)
			r.Delete("/products/{id}", productH.Delete)
		}

		if deps.ImageUC != nil {
			r.Post("/images", imageH.Upload)
			r.Delete("/images", imageH.Delete)
		}

		if deps.OrderUC != nil {
			r.Get("/orders", orderH.List)
			r.Get("/orders/{orderId}", orderH.Get)
			r.Get("/orders/{orderId}/csv", orderH.CSV)
			r.Patch("/orders/{orderId}/status", orderH.UpdateStatus)
		}

		if deps.SyncUC != nil {
			r.Post("/sync", syncH.Run)
		}

		r.Post("/debug/sendgrid", DebugSendGridHandler(deps.Mailer))
	})

	return r
}
