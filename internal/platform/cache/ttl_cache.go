package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// TTLCache 两级缓存：优先 Redis（多实例共享），回退进程内 go-cache
type TTLCache struct {
	namespace string
	ttl       time.Duration
	local     *gocache.Cache
}

func NewTTLCache(namespace string, ttl time.Duration) *TTLCache {
	return &TTLCache{
		namespace: namespace,
		ttl:       ttl,
		local:     gocache.New(ttl, 2*ttl),
	}
}

func (c *TTLCache) key(k string) string {
	return RedisKey(c.namespace, k)
}

// Get 读取缓存，Redis 命中时同步回填本地
func (c *TTLCache) Get(k string) (string, bool) {
	if client := GetRedisClient(); client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if val, err := client.Get(ctx, c.key(k)).Result(); err == nil {
			c.local.Set(k, val, c.ttl)
			return val, true
		}
	}

	if val, ok := c.local.Get(k); ok {
		if s, ok := val.(string); ok {
			return s, true
		}
		c.local.Delete(k)
	}
	return "", false
}

func (c *TTLCache) Set(k, v string) {
	c.local.Set(k, v, c.ttl)
	if client := GetRedisClient(); client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = client.Set(ctx, c.key(k), v, c.ttl).Err()
	}
}

func (c *TTLCache) Delete(k string) {
	c.local.Delete(k)
	if client := GetRedisClient(); client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = client.Del(ctx, c.key(k)).Err()
	}
}
