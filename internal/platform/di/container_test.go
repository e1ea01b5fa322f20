package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verseone/internal/adapters/out/local"
	appcfg "verseone/internal/infra/config"
	"verseone/internal/platform/di/shared"
)

func localOnlyInfra() *shared.Infra {
	return &shared.Infra{
		Config:     &appcfg.Config{AdminToken: "tok"},
		Settings:   shared.RuntimeSettings{LocalStore: appcfg.LocalStoreMemory, RemoteBackend: appcfg.RemoteNone},
		LocalStore: local.NewMemoryStore(),
	}
}

func TestBuildWithInfra_LocalOnly(t *testing.T) {
	c, err := BuildWithInfra(context.Background(), localOnlyInfra())
	require.NoError(t, err)
	defer c.Close()

	assert.False(t, c.ImageUC.Available())

	// remote ports stay untyped nil: sync reports skipped instead of panicking
	p, o, err := c.SyncUC.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, p.Skipped)
	assert.True(t, o.Skipped)

	rr := httptest.NewRecorder()
	c.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rr = httptest.NewRecorder()
	c.Router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	// SendGrid unconfigured
	req = httptest.NewRequest(http.MethodPost, "/admin/debug/sendgrid", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rr = httptest.NewRecorder()
	c.Router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestBuildWithInfra_RequiresLocalStore(t *testing.T) {
	_, err := BuildWithInfra(context.Background(), &shared.Infra{})
	assert.Error(t, err)
}
