// Package prokittest provides helpers for testing code that consumes the
// Stripe webhook flow: it builds event payloads and signs them the way
// Stripe does, so pipeline tests can exercise real verification instead of
// stubbing it out.
//
// Example usage:
//
//	body := prokittest.CheckoutCompletedEvent("evt_1", "user-123", "power")
//	header := prokittest.SignatureHeader(secret, "1700000000", body)
//	res := svc.HandleWebhook(ctx, header, body)
package prokittest

import (
	"encoding/json"

	"github.com/scopedlabs/prokit/stripesig"
)

// SignatureHeader returns a Stripe-Signature header value signing body at
// the given unix timestamp.
func SignatureHeader(secret, timestamp string, body []byte) string {
	return "t=" + timestamp + ",v1=" + stripesig.Compute(secret, timestamp, body)
}

// Event builds a minimal Stripe event envelope of the given type around an
// arbitrary object payload.
func Event(eventID, eventType string, object map[string]any) []byte {
	b, err := json.Marshal(map[string]any{
		"id":   eventID,
		"type": eventType,
		"data": map[string]any{"object": object},
	})
	if err != nil {
		panic("prokittest: marshal event: " + err.Error())
	}
	return b
}

// CheckoutCompletedEvent builds a checkout.session.completed event carrying
// the client reference and metadata category the entitlement writer reads.
// Empty userID or category omits the field, mimicking sessions created
// without them.
func CheckoutCompletedEvent(eventID, userID, category string) []byte {
	object := map[string]any{"id": "cs_test_" + eventID}
	if userID != "" {
		object["client_reference_id"] = userID
	}
	if category != "" {
		object["metadata"] = map[string]string{"category": category}
	}
	return Event(eventID, "checkout.session.completed", object)
}
