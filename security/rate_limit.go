package security

import (
	"booking_manager/constants"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a redis-backed fixed-window limiter for the public
// endpoints. When redis is not configured or unreachable, requests pass
// through: losing rate limiting must never take down ticket sales.
type RateLimiter struct {
	redis  *redis.Client
	limit  int64
	window time.Duration
}

func NewRateLimiter(client *redis.Client, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		redis:  client,
		limit:  limit,
		window: window,
	}
}

// Limit returns a middleware scoping the counter by route group and client IP.
func (r *RateLimiter) Limit(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if r.redis == nil {
			return c.Next()
		}

		key := fmt.Sprintf("ratelimit:%s:%s", scope, c.IP())
		count, err := r.redis.Incr(c.Context(), key).Result()
		if err != nil {
			log.Printf("rate limiter unavailable, letting request through: %v", err)
			return c.Next()
		}
		if count == 1 {
			r.redis.Expire(c.Context(), key, r.window)
		}
		if count > r.limit {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": constants.RATE_LIMIT_EXCEEDED,
			})
		}
		return c.Next()
	}
}
