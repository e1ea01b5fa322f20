// backend/internal/adapters/in/http/middleware/auth.go
package middleware

import (
	"context"
	"crypto/subtle"
	"log"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// TokenVerifier は Firebase ID トークン検証の最小インターフェース。
// *fbauth.Client がそのまま満たします。
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// context key は string を使わず、衝突回避のため独自型を使用（SA1029 対策）
type ctxKey struct{ name string }

var (
	ctxKeyUID   = ctxKey{name: "uid"}
	ctxKeyEmail = ctxKey{name: "email"}
)

// AdminAuth は管理 API 用の認証ミドルウェア。
//
//   - Authorization: Bearer <ID_TOKEN> を Firebase で検証
//   - Firebase 未設定 / 検証失敗時は ADMIN_TOKEN との一致も許可
//
// どちらも設定されていない場合は 503 を返す。
type AdminAuth struct {
	Firebase    TokenVerifier
	StaticToken string
}

// Enabled reports whether any credential source is configured.
func (m *AdminAuth) Enabled() bool {
	return m != nil && (m.Firebase != nil || strings.TrimSpace(m.StaticToken) != "")
}

func (m *AdminAuth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 依存チェック
		if !m.Enabled() {
			writeJSONError(w, http.StatusServiceUnavailable, "admin auth not configured")
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeJSONError(w, http.StatusUnauthorized, "unauthorized: missing bearer token")
			return
		}
		bearer := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if bearer == "" {
			writeJSONError(w, http.StatusUnauthorized, "unauthorized: empty bearer token")
			return
		}

		// 1) Firebase ID トークン検証
		if m.Firebase != nil {
			token, err := m.Firebase.VerifyIDToken(r.Context(), bearer)
			if err == nil && strings.TrimSpace(token.UID) != "" {
				ctx := context.WithValue(r.Context(), ctxKeyUID, strings.TrimSpace(token.UID))
				if e, ok := token.Claims["email"].(string); ok && strings.TrimSpace(e) != "" {
					ctx = context.WithValue(ctx, ctxKeyEmail, strings.TrimSpace(e))
				}
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}

		// 2) 静的トークン（ローカル運用 / Firebase 未設定時）
		if st := strings.TrimSpace(m.StaticToken); st != "" &&
			subtle.ConstantTimeCompare([]byte(st), []byte(bearer)) == 1 {
			ctx := context.WithValue(r.Context(), ctxKeyUID, "admin-token")
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		log.Printf("[AdminAuth] rejected path=%s", r.URL.Path)
		writeJSONError(w, http.StatusUnauthorized, "invalid token")
	})
}

// CurrentUIDAndEmail は middleware で検証された UID と email を返します。
func CurrentUIDAndEmail(r *http.Request) (uid string, email string, ok bool) {
	u, okUID := r.Context().Value(ctxKeyUID).(string)
	if !okUID || strings.TrimSpace(u) == "" {
		return "", "", false
	}
	e, _ := r.Context().Value(ctxKeyEmail).(string)
	return strings.TrimSpace(u), strings.TrimSpace(e), true
}
