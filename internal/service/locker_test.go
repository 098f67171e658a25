package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/popeskul/outreach-engine/internal/service"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	return client
}

func TestRedisLocker(t *testing.T) {
	client := setupRedis(t)
	locker := service.NewRedisLocker(client, zap.NewNop())
	ctx := context.Background()

	t.Run("exclusive until released", func(t *testing.T) {
		release, ok, err := locker.Acquire(ctx, "outreach:import-lock:1", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		_, ok, err = locker.Acquire(ctx, "outreach:import-lock:1", time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)

		other, ok, err := locker.Acquire(ctx, "outreach:import-lock:2", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
		other()

		release()
		again, ok, err := locker.Acquire(ctx, "outreach:import-lock:1", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
		again()
	})

	t.Run("expired lock is not released by the old holder", func(t *testing.T) {
		stale, ok, err := locker.Acquire(ctx, "outreach:import-lock:3", 100*time.Millisecond)
		require.NoError(t, err)
		require.True(t, ok)

		require.Eventually(t, func() bool {
			return client.Exists(ctx, "outreach:import-lock:3").Val() == 0
		}, 2*time.Second, 20*time.Millisecond)

		fresh, ok, err := locker.Acquire(ctx, "outreach:import-lock:3", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		stale()
		assert.Equal(t, int64(1), client.Exists(ctx, "outreach:import-lock:3").Val())
		fresh()
		assert.Equal(t, int64(0), client.Exists(ctx, "outreach:import-lock:3").Val())
	})
}
