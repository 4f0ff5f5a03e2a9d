package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Loader 由 *Cache 实现，测试可替换
type Loader interface {
	GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error)
}

// GetOrLoadJSON 缓存 load 结果的 JSON；load 出错不写缓存。
// 缓存内容无法解析（结构变更后的旧数据）时直接回源。
func GetOrLoadJSON[T any](c Loader, ctx context.Context, key string, ttl time.Duration, load func(ctx context.Context) (*T, error)) (*T, error) {
	var fresh *T
	b, err := c.GetOrLoad(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		v, e := load(ctx)
		if e != nil {
			return nil, e
		}
		fresh = v
		return json.Marshal(v)
	})
	if err != nil {
		return nil, err
	}
	if fresh != nil {
		return fresh, nil
	}
	if string(b) == "null" {
		return nil, nil
	}
	var out T
	if json.Unmarshal(b, &out) != nil {
		return load(ctx)
	}
	return &out, nil
}
