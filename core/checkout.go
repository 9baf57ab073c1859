package core

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	stripe "github.com/stripe/stripe-go/v84"

	"github.com/scopedlabs/prokit/entitlements"
)

// CheckoutRequest is the client's upgrade request. UserID becomes the
// session's client_reference_id and comes back on the webhook as the grant
// key.
type CheckoutRequest struct {
	PriceID  string `json:"priceId"`
	Category string `json:"category"`
	UserID   string `json:"userId"`
}

// CreateCheckoutSession creates a one-time-payment Checkout session and
// returns the hosted redirect URL. No retries: a provider failure is
// surfaced to the caller as stripe_error.
func (s *Service) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, *Error) {
	if strings.TrimSpace(req.PriceID) == "" {
		return "", &Error{Status: 400, Code: ErrMissingPriceID}
	}
	if s.cfg.Checkout == nil || s.cfg.SiteOrigin == "" {
		return "", &Error{Status: 500, Code: ErrWorker, Detail: "checkout not configured"}
	}

	params := BuildCheckoutParams(s.cfg.SiteOrigin, req.PriceID, req.Category, req.UserID)
	sess, err := s.cfg.Checkout.Create(ctx, params)
	if err != nil {
		var se *stripe.Error
		if errors.As(err, &se) {
			s.log.WithFields(logrus.Fields{"code": se.Code, "status": se.HTTPStatusCode}).
				Warn("stripe rejected checkout session")
			return "", &Error{Status: 502, Code: ErrStripe, Detail: truncate(se.Msg, 300)}
		}
		s.log.WithError(err).Error("checkout session creation failed")
		return "", &Error{Status: 500, Code: ErrWorker, Detail: truncate(err.Error(), 300)}
	}
	return sess.URL, nil
}

// BuildCheckoutParams assembles the session request: payment mode, a single
// line item of quantity 1, and success/cancel URLs that carry the category
// back to the site. The category is also written into session metadata --
// the webhook reads it from there, so threading it only through the URLs
// would silently skip the grant.
func BuildCheckoutParams(origin, priceID, category, userID string) *stripe.CheckoutSessionParams {
	cat := entitlements.NormalizeSlug(category)
	base := strings.TrimRight(origin, "/")

	// {CHECKOUT_SESSION_ID} is substituted by Stripe and must stay literal.
	successURL := base + "/tools/?unlocked=1&category=" + url.QueryEscape(cat) + "&session_id={CHECKOUT_SESSION_ID}"
	cancelURL := base + "/upgrade/?category=" + url.QueryEscape(cat)

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}
	if cat != "" {
		params.AddMetadata("category", cat)
	}
	if uid := strings.TrimSpace(userID); uid != "" {
		params.ClientReferenceID = stripe.String(uid)
	}
	return params
}
