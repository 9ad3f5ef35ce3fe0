package natsutil

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"

	"github.com/flexgp/flexgp/types"
)

func TestIsConnectivityError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sentinel", types.ErrConnectivity, true},
		{"wrapped timeout", fmt.Errorf("get TR01: %w", nats.ErrTimeout), true},
		{"no servers", nats.ErrNoServers, true},
		{"connection closed", nats.ErrConnectionClosed, true},
		{"no stream response", jetstream.ErrNoStreamResponse, true},
		{"deadline", context.DeadlineExceeded, true},
		{"refused by message", errors.New("dial tcp 127.0.0.1:4222: connect: connection refused"), true},
		{"key not found", jetstream.ErrKeyNotFound, false},
		{"lookup failure", types.ErrLookupFailure, false},
		{"cancelled", context.Canceled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsConnectivityError(tt.err))
		})
	}
}

func TestIsKeyNotFound(t *testing.T) {
	require.True(t, IsKeyNotFound(jetstream.ErrKeyNotFound))
	require.True(t, IsKeyNotFound(fmt.Errorf("get: %w", jetstream.ErrKeyDeleted)))
	require.False(t, IsKeyNotFound(nats.ErrTimeout))
	require.False(t, IsKeyNotFound(nil))
}
