package cache

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/jesb1n/immich/internal/config"

	"github.com/redis/go-redis/v9"
)

var (
	redisMu     sync.Mutex
	redisInited bool
	redisClient *redis.Client
)

// GetRedisClient 获取 Redis 客户端；当未启用或不可用时返回 nil。
func GetRedisClient() *redis.Client {
	redisMu.Lock()
	defer redisMu.Unlock()
	if !redisInited {
		redisClient = initRedisClient()
		redisInited = true
	}
	return redisClient
}

// RedisKey 基于配置前缀拼接 Redis 键名。
func RedisKey(parts ...string) string {
	prefix := config.Get().Redis.Prefix
	if prefix == "" {
		prefix = "immich"
	}
	return strings.Join(append([]string{prefix}, parts...), ":")
}

func initRedisClient() *redis.Client {
	cfg := config.Get()
	if !cfg.Redis.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		log.Printf("⚠️ Redis 不可用，降级为内存模式: %v", err)
		return nil
	}

	log.Printf("✅ Redis 已连接: %s (db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	return client
}

// CloseRedisClient 关闭 Redis 客户端连接，之后再次获取会重新初始化。
func CloseRedisClient() error {
	redisMu.Lock()
	defer redisMu.Unlock()
	client := redisClient
	redisClient = nil
	redisInited = false
	if client == nil {
		return nil
	}
	if err := client.Close(); err != nil {
		return fmt.Errorf("close redis failed: %w", err)
	}
	return nil
}
