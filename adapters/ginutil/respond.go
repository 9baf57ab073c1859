// Package ginutil holds shared response and rate-limit helpers for the gin
// handlers.
package ginutil

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Rate-limit bucket names.
const (
	RLCheckout = "checkout"
)

// RateLimiter matches the prokit limiter implementations.
type RateLimiter interface {
	AllowNamed(bucket, key string) (bool, error)
}

// AllowNamed checks the caller's IP against the named bucket. Limiter
// errors fail open: billing endpoints must not go dark because Redis did.
func AllowNamed(c *gin.Context, rl RateLimiter, bucket string) bool {
	if rl == nil {
		return true
	}
	ok, err := rl.AllowNamed(bucket, c.ClientIP())
	if err != nil {
		return true
	}
	return ok
}

func TooMany(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "rate_limited"})
}

func BadRequest(c *gin.Context, code string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": code})
}

// Fail renders a structured error body at the given status, attaching
// detail only when present.
func Fail(c *gin.Context, status int, code, detail string) {
	body := gin.H{"ok": false, "error": code}
	if detail != "" {
		body["detail"] = detail
	}
	c.JSON(status, body)
}
