package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pipeStub struct {
	redis.Pipeliner
	counts map[string]int64
	ttls   map[string]time.Duration
}

func (p *pipeStub) Incr(ctx context.Context, key string) *redis.IntCmd {
	p.counts[key]++
	cmd := redis.NewIntCmd(ctx, "incr", key)
	cmd.SetVal(p.counts[key])
	return cmd
}

func (p *pipeStub) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	p.ttls[key] = expiration
	cmd := redis.NewBoolCmd(ctx, "expire", key, expiration)
	cmd.SetVal(true)
	return cmd
}

type clientStub struct {
	redis.Cmdable
	pipe    *pipeStub
	txCalls int
	txErr   error
	pingErr error
}

func newClientStub() *clientStub {
	return &clientStub{pipe: &pipeStub{counts: map[string]int64{}, ttls: map[string]time.Duration{}}}
}

func (c *clientStub) TxPipelined(ctx context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error) {
	c.txCalls++
	if c.txErr != nil {
		return nil, c.txErr
	}
	if err := fn(c.pipe); err != nil {
		return nil, err
	}
	return nil, nil
}

func (c *clientStub) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "ping")
	if c.pingErr != nil {
		cmd.SetErr(c.pingErr)
	} else {
		cmd.SetVal("PONG")
	}
	return cmd
}

func TestCounterIncrementCountsWithinWindow(t *testing.T) {
	client := newClientStub()
	counter := NewCounter(client)
	ctx := context.Background()

	first, err := counter.Increment(ctx, "RATELIMIT:classes:202610181030:10.0.0.1", time.Minute)
	require.NoError(t, err)
	second, err := counter.Increment(ctx, "RATELIMIT:classes:202610181030:10.0.0.1", time.Minute)
	require.NoError(t, err)
	other, err := counter.Increment(ctx, "RATELIMIT:classes:202610181030:10.0.0.2", 30*time.Second)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)
	assert.Equal(t, int64(1), other)
	assert.Equal(t, 3, client.txCalls, "each increment runs in its own MULTI block")
	assert.Equal(t, time.Minute, client.pipe.ttls["RATELIMIT:classes:202610181030:10.0.0.1"])
	assert.Equal(t, 30*time.Second, client.pipe.ttls["RATELIMIT:classes:202610181030:10.0.0.2"])
}

func TestCounterIncrementWrapsTransactionError(t *testing.T) {
	client := newClientStub()
	client.txErr = errors.New("connection refused")

	n, err := NewCounter(client).Increment(context.Background(), "RATELIMIT:classes:202610181030:10.0.0.1", time.Minute)
	require.Error(t, err)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, client.txErr)
	assert.Contains(t, err.Error(), "RATELIMIT:classes:202610181030:10.0.0.1")
	assert.Empty(t, client.pipe.counts)
}

func TestCounterPingContext(t *testing.T) {
	client := newClientStub()
	counter := NewCounter(client)
	require.NoError(t, counter.PingContext(context.Background()))

	client.pingErr = errors.New("dial tcp: i/o timeout")
	assert.ErrorIs(t, counter.PingContext(context.Background()), client.pingErr)
}
