package firestoreinfra

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresProjectID(t *testing.T) {
	cw, err := NewClient(context.Background(), "  ", "")
	require.ErrorIs(t, err, ErrProjectIDRequired)
	assert.Nil(t, cw)
}

func TestClientWrapper_NilSafe(t *testing.T) {
	var cw *ClientWrapper
	assert.Error(t, cw.Ping(context.Background()))
	assert.NoError(t, cw.Close())
}
