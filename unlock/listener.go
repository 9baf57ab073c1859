package unlock

import (
	"net/url"

	"github.com/scopedlabs/prokit/entitlements"
)

// Outcome reports what HandleReturn did with a page load.
type Outcome struct {
	Granted  bool
	Category string
	// Notice is a transient confirmation message for the host to display.
	Notice string
	// CleanURL, when non-empty, is the URL the host should install via
	// history replacement so a reload does not re-trigger the unlock.
	CleanURL string
}

// HandleReturn inspects a page URL for the checkout return markers
// (?unlocked=1&category=<slug>) and, when present, writes the per-category
// flag. The ?devunlock=1 marker performs the identical write but only on a
// loopback host. Invalid category slugs are silently ignored: this is a
// defensive parse, not a trust check -- the marker itself is unauthenticated.
func HandleReturn(pageURL string, flags *Flags) Outcome {
	u, err := url.Parse(pageURL)
	if err != nil {
		return Outcome{}
	}
	q := u.Query()

	prod := q.Get("unlocked") == "1"
	dev := q.Get("devunlock") == "1"
	if !prod && !dev {
		return Outcome{}
	}
	if dev && !prod && !isLoopback(u.Hostname()) {
		return Outcome{}
	}

	category := q.Get("category")
	if !entitlements.ValidSlug(category) {
		return Outcome{}
	}

	flags.GrantCategory(category)

	q.Del("unlocked")
	q.Del("devunlock")
	q.Del("category")
	u.RawQuery = q.Encode()

	return Outcome{
		Granted:  true,
		Category: category,
		Notice:   "Pro tools unlocked: " + category,
		CleanURL: u.String(),
	}
}

func isLoopback(host string) bool {
	switch host {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}
