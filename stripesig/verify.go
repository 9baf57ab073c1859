// Package stripesig verifies Stripe webhook signatures.
//
// Verification operates over the raw request body exactly as received;
// re-serializing the JSON first would change the byte stream and break the
// signature for any payload whose formatting differs from Stripe's.
package stripesig

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Compute returns the lowercase-hex HMAC-SHA256 of "<timestamp>.<body>"
// keyed with the webhook signing secret.
func Compute(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether any v1 candidate in the parsed header matches the
// signature expected for body under secret. Each comparison is constant-time.
func Verify(secret string, h Header, body []byte) bool {
	expected := Compute(secret, h.Timestamp, body)
	ok := false
	for _, cand := range h.Candidates {
		if ConstantTimeEqual(expected, cand) {
			ok = true
		}
	}
	return ok
}

// ConstantTimeEqual compares two strings without leaking the position of the
// first mismatch. Length is checked up front (length is not secret here);
// equal-length inputs are XOR-accumulated over every byte, never
// short-circuiting.
func ConstantTimeEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	var diff byte
	for i := 0; i < len(a); i++ {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}
