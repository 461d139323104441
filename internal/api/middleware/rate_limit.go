package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Iskahn21/bienestartermometro/pkg/redis"
	"github.com/Iskahn21/bienestartermometro/pkg/response"
)

// RateLimit 基于 Redis 固定窗口计数的速率限制中间件
// 用于登录、注册等敏感端点，按 客户端 IP + 路由 维度限流
// rdb 为 nil 或出错时降级放行（与 JWTAuth 策略一致）
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "Demasiadas peticiones, intente de nuevo más tarde")
			c.Abort()
			return
		}

		c.Next()
	}
}
