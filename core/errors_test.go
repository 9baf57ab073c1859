package core

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestErrorString(t *testing.T) {
	e := &Error{Status: 502, Code: ErrStripe, Detail: "No such price"}
	if got := e.Error(); got != "stripe_error: No such price" {
		t.Errorf("Error() = %q", got)
	}
	e = &Error{Status: 400, Code: ErrMissingPriceID}
	if got := e.Error(); got != "missing_priceId" {
		t.Errorf("Error() = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 300); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate(strings.Repeat("a", 400), 300); len(got) != 300 {
		t.Errorf("len = %d, want 300", len(got))
	}

	// A multi-byte rune straddling the cap must not be split.
	s := strings.Repeat("a", 299) + "é"
	got := truncate(s, 300)
	if !utf8.ValidString(got) {
		t.Errorf("truncate produced invalid UTF-8: %q", got)
	}
	if got != strings.Repeat("a", 299) {
		t.Errorf("truncate = %q, want cut before the rune", got)
	}
}
