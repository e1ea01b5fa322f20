package handlers

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"

	"verseone/internal/adapters/in/http/middleware"
)

type stubVerifier struct{}

func (stubVerifier) VerifyIDToken(_ context.Context, tok string) (*fbauth.Token, error) {
	if tok != "id-token" {
		return nil, errors.New("bad token")
	}
	return &fbauth.Token{UID: "u-42", Claims: map[string]any{"email": "keeper@example.com"}}, nil
}

func actorVia(auth *middleware.AdminAuth, bearer string) string {
	var got string
	h := auth.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = adminActor(r)
	}))
	req := httptest.NewRequest(http.MethodPost, "/admin/sync", nil)
	req.Header.Set("Authorization", "Bearer "+bearer)
	h.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestAdminActor(t *testing.T) {
	auth := &middleware.AdminAuth{Firebase: stubVerifier{}, StaticToken: "s3cret"}

	assert.Equal(t, "u-42 <keeper@example.com>", actorVia(auth, "id-token"))
	assert.Equal(t, "admin-token", actorVia(auth, "s3cret"))
	assert.Equal(t, "-", adminActor(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestAuditAdmin_LogsActor(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	auth := &middleware.AdminAuth{StaticToken: "s3cret"}
	h := auth.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auditAdmin(r, "OrderHandler", "status orderId=%s", "007")
	}))
	req := httptest.NewRequest(http.MethodPatch, "/admin/orders/007/status", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), "[OrderHandler] admin=admin-token")
	assert.Contains(t, buf.String(), "status orderId=007")
}
