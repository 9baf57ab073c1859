package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scopedlabs/prokit/adapters/ginutil"
	"github.com/scopedlabs/prokit/core"
)

// HandleCheckoutSessionPOST creates a Stripe Checkout session and returns
// its redirect URL. A body that fails to parse is treated as empty and
// falls through to priceId validation.
func HandleCheckoutSessionPOST(svc *core.Service, rl ginutil.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ginutil.AllowNamed(c, rl, ginutil.RLCheckout) {
			ginutil.TooMany(c)
			return
		}
		var req core.CheckoutRequest
		_ = c.ShouldBindJSON(&req)

		url, cerr := svc.CreateCheckoutSession(c.Request.Context(), req)
		if cerr != nil {
			ginutil.Fail(c, cerr.Status, cerr.Code, cerr.Detail)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "url": url})
	}
}
