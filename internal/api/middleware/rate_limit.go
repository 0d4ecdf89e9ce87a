package middleware

import (
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"fleet-tracker/backend/pkg/redis"
	"fleet-tracker/backend/pkg/response"
)

// ipLimiter 进程内按 IP 的令牌桶，Redis 不可用时使用
// 空闲超过一个窗口的 IP 被淘汰：此时令牌桶已回满，重建与保留等价
type ipLimiter struct {
	mu  sync.Mutex
	ips *cache.Cache
	r   rate.Limit
	b   int
}

func newIPLimiter(limit int, window time.Duration) *ipLimiter {
	return &ipLimiter{
		ips: cache.New(window, window),
		r:   rate.Limit(float64(limit) / window.Seconds()),
		b:   limit,
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	var limiter *rate.Limiter
	if v, ok := l.ips.Get(ip); ok {
		limiter = v.(*rate.Limiter)
	} else {
		limiter = rate.NewLimiter(l.r, l.b)
	}
	// 每次访问都刷新过期时间
	l.ips.SetDefault(ip, limiter)
	l.mu.Unlock()
	return limiter.Allow()
}

// RateLimit 速率限制中间件
// limit: 窗口内允许的最大请求数；window: 窗口时长；limit<=0 时不限流
// 配置了 Redis 时使用滑动窗口（多实例共享计数），rdb 为 nil 或 Redis 出错时降级为进程内令牌桶
func RateLimit(rdb *redis.Client, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	if limit <= 0 || window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	local := newIPLimiter(limit, window)

	return func(c *gin.Context) {
		allowed := false
		usedRedis := false
		if rdb != nil {
			key := fmt.Sprintf("%s:%s", c.ClientIP(), c.FullPath())
			ok, err := rdb.Allow(c.Request.Context(), key, limit, window)
			if err != nil {
				logger.Warn("Redis 限流失败，降级为本地限流", zap.Error(err))
			} else {
				allowed, usedRedis = ok, true
			}
		}
		if !usedRedis {
			allowed = local.allow(c.ClientIP())
		}

		if !allowed {
			response.TooManyRequests(c, 10004, "请求过于频繁，请稍后再试")
			c.Abort()
			return
		}

		c.Next()
	}
}
