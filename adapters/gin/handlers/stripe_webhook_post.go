package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scopedlabs/prokit/core"
)

// Stripe event payloads are small; anything past this is not a webhook.
const maxWebhookBody = 2 << 20

// HandleStripeWebhookPOST feeds one delivery through the verification
// pipeline. The body is passed through as raw bytes: the signature covers
// the exact stream Stripe sent, so it must never be re-serialized first.
// Responses are plain text; any 2xx stops Stripe's retries.
func HandleStripeWebhookPOST(svc *core.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
		if err != nil {
			c.String(http.StatusBadRequest, "read error")
			return
		}
		res := svc.HandleWebhook(c.Request.Context(), c.GetHeader("Stripe-Signature"), body)
		c.String(res.Status, res.Body)
	}
}
