package identity

import (
	"context"
	"net"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGet(t *testing.T) {
	userID := uuid.New()
	id := &Identity{UserID: userID, Login: "alice"}

	ctx := Set(context.Background(), id)

	got, ok := Get(ctx)
	require.True(t, ok)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, "alice", got.Login)
}

func TestGetMissing(t *testing.T) {
	got, ok := Get(context.Background())
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestWithRemoteIP(t *testing.T) {
	id := (&Identity{Login: "alice"}).WithRemoteIP(net.ParseIP("10.0.0.1"))
	assert.Equal(t, "10.0.0.1", id.RemoteIP.String())
}
