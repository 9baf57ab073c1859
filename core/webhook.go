package core

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	stripe "github.com/stripe/stripe-go/v84"

	"github.com/scopedlabs/prokit/entitlements"
	"github.com/scopedlabs/prokit/stripesig"
)

// WebhookResult is the plain-text response for one webhook delivery.
type WebhookResult struct {
	Status int
	Body   string
}

func webhookOK(body string) WebhookResult {
	return WebhookResult{Status: http.StatusOK, Body: body}
}

// HandleWebhook runs the single-pass verification pipeline over one inbound
// Stripe delivery. body must be the raw request bytes as received -- the
// signature covers the original byte stream.
//
// The trust boundary is signature verification: nothing, including payload
// parsing, happens on an unverified body beyond reading the header. Every
// 200 response tells Stripe not to retry; 5xx responses lean on Stripe's
// own retry schedule as the recovery path.
func (s *Service) HandleWebhook(ctx context.Context, sigHeader string, body []byte) WebhookResult {
	if s.cfg.WebhookSecret == "" || s.cfg.Store == nil {
		return WebhookResult{Status: http.StatusInternalServerError, Body: "server misconfigured"}
	}
	if sigHeader == "" {
		return WebhookResult{Status: http.StatusBadRequest, Body: "missing signature"}
	}

	header, err := stripesig.ParseHeader(sigHeader)
	if err != nil {
		return WebhookResult{Status: http.StatusBadRequest, Body: "bad signature header"}
	}
	if !stripesig.Verify(s.cfg.WebhookSecret, header, body) {
		s.log.Warn("webhook signature verification failed")
		return WebhookResult{Status: http.StatusBadRequest, Body: "verification failed"}
	}

	var event stripe.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return WebhookResult{Status: http.StatusBadRequest, Body: "invalid JSON"}
	}
	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		return webhookOK("ignored")
	}

	if s.cfg.Events != nil && s.cfg.Events.Seen(ctx, event.ID) {
		s.log.WithField("event", event.ID).Info("duplicate webhook delivery skipped")
		return webhookOK("OK")
	}

	var sess stripe.CheckoutSession
	if event.Data != nil {
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return WebhookResult{Status: http.StatusBadRequest, Body: "invalid JSON"}
		}
	}
	userID := strings.TrimSpace(sess.ClientReferenceID)
	category := entitlements.NormalizeSlug(sess.Metadata["category"])
	if userID == "" || category == "" {
		// Acknowledged, not retried: Stripe redelivering the same event
		// would be missing the same fields every time.
		s.log.WithField("event", event.ID).Info("completed session without grant fields")
		return webhookOK("missing fields")
	}

	grant := entitlements.Entitlement{UserID: userID, Category: category, Source: entitlements.SourceStripe}
	if err := s.cfg.Store.Upsert(ctx, grant); err != nil {
		s.log.WithFields(logrus.Fields{"event": event.ID, "category": category}).
			WithError(err).Error("entitlement upsert failed")
		return WebhookResult{Status: http.StatusInternalServerError, Body: "store error: " + truncate(err.Error(), 300)}
	}

	// Only a durably written grant counts as processed: a 500 above leaves
	// the cache untouched so Stripe's retry reaches the store again.
	if s.cfg.Events != nil {
		s.cfg.Events.MarkProcessed(ctx, event.ID)
	}

	s.log.WithFields(logrus.Fields{"event": event.ID, "category": category}).Info("entitlement granted")
	return webhookOK("OK")
}
