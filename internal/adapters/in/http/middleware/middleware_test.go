package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
)

type fakeVerifier struct{}

func (fakeVerifier) VerifyIDToken(_ context.Context, tok string) (*fbauth.Token, error) {
	if tok == "good-id-token" {
		return &fbauth.Token{UID: "u1", Claims: map[string]any{"email": "admin@example.com"}}, nil
	}
	return nil, errors.New("bad token")
}

func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, _, ok := CurrentUIDAndEmail(r)
		assert.True(t, ok)
		_, _ = w.Write([]byte(uid))
	})
}

func TestAdminAuth(t *testing.T) {
	cases := []struct {
		name   string
		auth   *AdminAuth
		header string
		status int
		body   string
	}{
		{"not configured", &AdminAuth{}, "Bearer x", http.StatusServiceUnavailable, ""},
		{"missing header", &AdminAuth{StaticToken: "s3cret"}, "", http.StatusUnauthorized, ""},
		{"static token", &AdminAuth{StaticToken: "s3cret"}, "Bearer s3cret", http.StatusOK, "admin-token"},
		{"wrong static token", &AdminAuth{StaticToken: "s3cret"}, "Bearer nope", http.StatusUnauthorized, ""},
		{"firebase token", &AdminAuth{Firebase: fakeVerifier{}}, "Bearer good-id-token", http.StatusOK, "u1"},
		{"firebase rejects, static fallback", &AdminAuth{Firebase: fakeVerifier{}, StaticToken: "s3cret"}, "Bearer s3cret", http.StatusOK, "admin-token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			tc.auth.Handler(okHandler(t)).ServeHTTP(rr, req)
			assert.Equal(t, tc.status, rr.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, rr.Body.String())
			}
		})
	}
}

func TestRecover(t *testing.T) {
	h := Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rr.Body.String())
}

func TestRequestLog_AssignsAndKeepsRequestID(t *testing.T) {
	var seen string
	h := RequestLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rr.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "client-rid")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "client-rid", seen)
}

func TestCORS_Preflight(t *testing.T) {
	h := CORS([]string{"https://shop.example"})(okHandler(t))
	req := httptest.NewRequest(http.MethodOptions, "/products", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "https://shop.example", rr.Header().Get("Access-Control-Allow-Origin"))
}
