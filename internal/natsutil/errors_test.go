package natsutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"
)

func TestIsConnectivityError(t *testing.T) {
	require.False(t, IsConnectivityError(nil))
	require.False(t, IsConnectivityError(errors.New("decode failed")))
	require.True(t, IsConnectivityError(nats.ErrTimeout))
	require.True(t, IsConnectivityError(fmt.Errorf("get dish.SKA001: %w", nats.ErrNoResponders)))
	require.False(t, IsConnectivityError(jetstream.ErrKeyNotFound))
	require.True(t, IsConnectivityError(fmt.Errorf("list keys: %w", nats.ErrConnectionClosed)))
	require.True(t, IsConnectivityError(errors.New("dial tcp 127.0.0.1:4222: connect: connection refused")))
}

func TestIsNoKeysFound(t *testing.T) {
	require.False(t, IsNoKeysFound(nil))
	require.True(t, IsNoKeysFound(jetstream.ErrNoKeysFound))
	require.True(t, IsNoKeysFound(fmt.Errorf("failed to list keys: %w", jetstream.ErrNoKeysFound)))
	require.True(t, IsNoKeysFound(errors.New("nats: no keys found")))
	require.False(t, IsNoKeysFound(jetstream.ErrKeyNotFound))
}
