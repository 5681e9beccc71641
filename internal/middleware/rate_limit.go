package middleware

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jesb1n/immich/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// IPRateLimiter 每个客户端 IP 一个令牌桶
type IPRateLimiter struct {
	ips sync.Map
	r   rate.Limit
	b   int
}

type client struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nano
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{r: r, b: b}
	go i.cleanupLoop()
	return i
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	v, ok := i.ips.Load(ip)
	if !ok {
		v, _ = i.ips.LoadOrStore(ip, &client{limiter: rate.NewLimiter(i.r, i.b)})
	}
	c := v.(*client)
	c.lastSeen.Store(time.Now().UnixNano())
	return c.limiter
}

// cleanupLoop 每分钟移除 3 分钟内没有请求的 IP
func (i *IPRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		i.ips.Range(func(key, value any) bool {
			if time.Since(time.Unix(0, value.(*client).lastSeen.Load())) > 3*time.Minute {
				i.ips.Delete(key)
			}
			return true
		})
	}
}

// RateLimitMiddleware 按客户端 IP 限流，速率与突发量每次请求从配置读取
func RateLimitMiddleware() gin.HandlerFunc {
	// 同一个中间件实例内所有 IP 共用一个 IPRateLimiter
	var limiter *IPRateLimiter
	var once sync.Once

	return func(c *gin.Context) {
		cfg := config.Get().RateLimit
		if !cfg.Enabled {
			c.Next()
			return
		}

		once.Do(func() {
			limiter = NewIPRateLimiter(rate.Limit(cfg.RPS), cfg.Burst)
		})

		l := limiter.getLimiter(c.ClientIP())

		// 配置变更时同步到已有 limiter
		if l.Limit() != rate.Limit(cfg.RPS) {
			l.SetLimit(rate.Limit(cfg.RPS))
		}
		if l.Burst() != cfg.Burst {
			l.SetBurst(cfg.Burst)
		}

		if !l.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "请求过于频繁，请稍后再试"})
			return
		}
		c.Next()
	}
}
