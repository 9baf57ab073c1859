package core

import (
	"fmt"
	"unicode/utf8"
)

// Stable error codes surfaced in JSON responses.
const (
	ErrMissingPriceID = "missing_priceId"
	ErrStripe         = "stripe_error"
	ErrWorker         = "worker_exception"
)

// Error is a request failure with an HTTP status and a stable code. Detail
// carries a truncated upstream diagnostic when one exists.
type Error struct {
	Status int
	Code   string
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// truncate caps s at n bytes, backing up so a multi-byte rune in an
// upstream diagnostic is never split.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
