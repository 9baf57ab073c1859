// Package progin mounts the Pro unlock endpoints on a gin engine.
package progin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/scopedlabs/prokit/adapters/gin/handlers"
	"github.com/scopedlabs/prokit/adapters/ginutil"
	"github.com/scopedlabs/prokit/core"
)

// New builds the router: the checkout and webhook endpoints plus a health
// probe. Panics surface as worker_exception so no path returns an uncaught
// failure.
func New(svc *core.Service, rl ginutil.RateLimiter, log *logrus.Logger) *gin.Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	r := gin.New()
	r.Use(RequestID(), RequestLogger(log))
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		ginutil.Fail(c, http.StatusInternalServerError, core.ErrWorker, "")
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	api := r.Group("/api")
	api.POST("/create-checkout-session", handlers.HandleCheckoutSessionPOST(svc, rl))
	api.POST("/stripe-webhook", handlers.HandleStripeWebhookPOST(svc))
	return r
}

// RequestID attaches a request id header for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

// RequestLogger emits one structured line per request.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
		}).Info("request")
	}
}
