package stripesig

import (
	"fmt"
	"strings"
)

// Header is the parsed form of a Stripe-Signature header.
type Header struct {
	Timestamp string
	// Candidates holds every v1 signature present. Stripe sends more than
	// one during signing-secret rotation; verification accepts any match.
	Candidates []string
}

// ParseHeader parses "t=<unix-ts>,v1=<hex>[,v1=<hex>...]".
// Unknown scheme keys (v0, future versions) are skipped. A header with no
// timestamp or no v1 candidate is an error.
func ParseHeader(header string) (Header, error) {
	var h Header
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			h.Timestamp = v
		case "v1":
			if v != "" {
				h.Candidates = append(h.Candidates, v)
			}
		}
	}
	if h.Timestamp == "" || len(h.Candidates) == 0 {
		return Header{}, fmt.Errorf("bad signature header")
	}
	return h, nil
}
