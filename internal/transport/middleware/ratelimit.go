package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const RateLimitedMsg = "Trop de requêtes"

// RateLimit counts requests per key with Redis INCR and a TTL window.
// keyFn builds the caller key, an empty key skips the check. Redis errors
// let the request through.
func RateLimit(rdb *redis.Client, prefix string, limit int, window time.Duration, keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		key := keyFn(c)
		if key == "" {
			c.Next()
			return
		}
		rkey := fmt.Sprintf("rl:%s:%s", prefix, key)
		ctx := c.Request.Context()

		var incr *redis.IntCmd
		var ttl *redis.DurationCmd
		_, err := rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(ctx, rkey)
			ttl = pipe.TTL(ctx, rkey)
			return nil
		})
		if err != nil {
			logrus.WithError(err).Warn("Rate limit check failed, letting request through")
			c.Next()
			return
		}

		// счётчик без TTL (новый ключ или упавший EXPIRE) получает окно заново
		remaining := ttl.Val()
		if remaining < 0 {
			remaining = window
			if err := rdb.Expire(ctx, rkey, window).Err(); err != nil {
				logrus.WithError(err).WithField("key", rkey).Warn("Rate limit window not set, retrying on next request")
			}
		}

		if incr.Val() > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(remaining)))
			c.String(http.StatusTooManyRequests, RateLimitedMsg)
			c.Abort()
			return
		}
		c.Next()
	}
}

func retryAfterSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}

func ClientIPKey(c *gin.Context) string {
	return c.ClientIP()
}
