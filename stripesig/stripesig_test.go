package stripesig

import (
	"strings"
	"testing"
)

func TestParseHeader(t *testing.T) {
	h, err := ParseHeader("t=1700000000,v1=abc123")
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if h.Timestamp != "1700000000" {
		t.Errorf("Timestamp = %q", h.Timestamp)
	}
	if len(h.Candidates) != 1 || h.Candidates[0] != "abc123" {
		t.Errorf("Candidates = %v", h.Candidates)
	}
}

func TestParseHeaderMultipleV1(t *testing.T) {
	h, err := ParseHeader("t=17,v1=aaa,v0=ignored,v1=bbb")
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if len(h.Candidates) != 2 || h.Candidates[0] != "aaa" || h.Candidates[1] != "bbb" {
		t.Errorf("Candidates = %v", h.Candidates)
	}
}

func TestParseHeaderRejects(t *testing.T) {
	for _, header := range []string{"", "v1=abc", "t=17", "t=17,v1=", "garbage"} {
		if _, err := ParseHeader(header); err == nil {
			t.Errorf("ParseHeader(%q) succeeded, want error", header)
		}
	}
}

func TestVerifyRoundTrip(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	ts := "1700000000"

	sig := Compute(secret, ts, body)
	h := Header{Timestamp: ts, Candidates: []string{sig}}
	if !Verify(secret, h, body) {
		t.Fatal("Verify rejected a correctly signed payload")
	}

	// Any single-byte change must break verification.
	flipped := []byte(string(body))
	flipped[0] ^= 0x01
	if Verify(secret, h, flipped) {
		t.Error("Verify accepted a tampered body")
	}
	if Verify(secret, Header{Timestamp: "1700000001", Candidates: []string{sig}}, body) {
		t.Error("Verify accepted a tampered timestamp")
	}
	badSig := "0" + sig[1:]
	if badSig == sig {
		badSig = "1" + sig[1:]
	}
	if Verify(secret, Header{Timestamp: ts, Candidates: []string{badSig}}, body) {
		t.Error("Verify accepted a tampered signature")
	}
	if Verify("whsec_other", h, body) {
		t.Error("Verify accepted a signature under the wrong secret")
	}
}

func TestVerifyAnyCandidate(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{}`)
	sig := Compute(secret, "17", body)
	h := Header{Timestamp: "17", Candidates: []string{strings.Repeat("0", len(sig)), sig}}
	if !Verify(secret, h, body) {
		t.Fatal("Verify should accept when any rotation candidate matches")
	}
}

func TestConstantTimeEqualLengths(t *testing.T) {
	if ConstantTimeEqual("abc", "abcd") {
		t.Error("differing lengths must not compare equal")
	}
	if !ConstantTimeEqual("", "") {
		t.Error("empty strings are equal")
	}
	if !ConstantTimeEqual("deadbeef", "deadbeef") {
		t.Error("equal strings must compare equal")
	}
	// Mismatch in the last byte exercises the full accumulation path.
	if ConstantTimeEqual("deadbeef", "deadbeeg") {
		t.Error("last-byte mismatch must fail")
	}
}
