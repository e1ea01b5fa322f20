package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcfg "verseone/internal/infra/config"
)

func TestResolveRuntimeSettings_Defaults(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")
	s, warns, err := ResolveRuntimeSettings(&appcfg.Config{RemoteBackend: "none"})
	require.NoError(t, err)
	assert.Equal(t, appcfg.LocalStoreFile, s.LocalStore)
	assert.Equal(t, "./data", s.DataDir)
	assert.False(t, s.RemoteEnabled())
	assert.Contains(t, warns, "STORAGE_BUCKET is empty (product image upload disabled)")
	assert.NoError(t, s.Validate())
}

func TestResolveRuntimeSettings_ProjectAndBucket(t *testing.T) {
	s, warns, err := ResolveRuntimeSettings(&appcfg.Config{
		LocalStore:        "MEMORY",
		RemoteBackend:     "firestore",
		FirebaseProjectID: "verseone-dev",
		StorageBucket:     "gs://verseone-dev.appspot.com/",
	})
	require.NoError(t, err)
	assert.Empty(t, warns)
	assert.Equal(t, "verseone-dev", s.ProjectID)
	assert.Equal(t, "verseone-dev.appspot.com", s.StorageBucket)
	assert.Equal(t, appcfg.LocalStoreMemory, s.LocalStore)
	assert.True(t, s.RemoteEnabled())
}

func TestRuntimeSettings_Validate(t *testing.T) {
	cases := []struct {
		name string
		s    RuntimeSettings
		ok   bool
	}{
		{"memory/none", RuntimeSettings{LocalStore: "memory", RemoteBackend: "none"}, true},
		{"redis without addr", RuntimeSettings{LocalStore: "redis", RemoteBackend: "none"}, false},
		{"unknown local", RuntimeSettings{LocalStore: "sqlite", RemoteBackend: "none"}, false},
		{"unknown remote", RuntimeSettings{LocalStore: "memory", RemoteBackend: "mongo"}, false},
		{"bad bucket", RuntimeSettings{LocalStore: "memory", RemoteBackend: "none", StorageBucket: "a b"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.s.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
