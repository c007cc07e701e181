package middleware

import (
	"net/http"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisRateLimitMiddleware_Basic(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	r := newLimitedEngine(RedisRateLimitMiddleware(client, 0.1, 0, 10*time.Second))

	require.Equal(t, http.StatusOK, call(r, ""))
	require.Equal(t, http.StatusTooManyRequests, call(r, ""))
}

func TestRedisRateLimitMiddleware_FailsClosedOnRedisError(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	r := newLimitedEngine(RedisRateLimitMiddleware(client, 1, 0, time.Second))
	m.Close()

	require.Equal(t, http.StatusInternalServerError, call(r, ""))
}

func TestRedisRateLimitMiddleware_NilClientFallsBackToMemory(t *testing.T) {
	r := newLimitedEngine(RedisRateLimitMiddleware(nil, 0.5, 1, time.Second))

	require.Equal(t, http.StatusOK, call(r, "10.1.0.1:1"))
	require.Equal(t, http.StatusTooManyRequests, call(r, "10.1.0.1:1"))
}
