package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 指向不可达地址：读写缓存都会失败，应直接回源
func unreachable() *Cache {
	c := New("127.0.0.1:1", "", 0)
	c.RDB = redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	return c
}

func TestGetOrLoadFallsBackWhenRedisDown(t *testing.T) {
	c := unreachable()
	defer c.Close()
	ctx := context.Background()

	assert.Error(t, c.Ping(ctx))

	b, err := c.GetOrLoad(ctx, "posts:list", time.Minute, func(context.Context) ([]byte, error) {
		return []byte(`[]`), nil
	})
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(b))

	boom := errors.New("db down")
	_, err = c.GetOrLoad(ctx, "posts:list", time.Minute, func(context.Context) ([]byte, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestGetOrLoadCoalescesConcurrentLoads(t *testing.T) {
	c := unreachable()
	defer c.Close()
	ctx := context.Background()

	var calls atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) ([]byte, error) {
		calls.Add(1)
		<-release
		return []byte(`"v"`), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := c.GetOrLoad(ctx, "post:p1", time.Minute, load)
			assert.NoError(t, err)
			assert.Equal(t, `"v"`, string(b))
		}()
	}
	time.Sleep(300 * time.Millisecond)
	close(release)
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load())
}

func TestInvalidate(t *testing.T) {
	c := unreachable()
	defer c.Close()
	assert.NoError(t, c.Invalidate(context.Background()))
	assert.Error(t, c.Invalidate(context.Background(), "posts:list"))
	assert.Equal(t, "blog:", c.Prefix)
}
