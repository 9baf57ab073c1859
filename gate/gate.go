// Package gate decides, on every page load, whether protected Pro content
// may render. The decision must be computed before any page behavior is
// attached: a Redirect decision means navigate immediately and skip all
// further initialization.
package gate

import (
	"net/url"
	"strings"

	"github.com/scopedlabs/prokit/unlock"
)

// UpgradePath is where locked-out visitors are sent.
const UpgradePath = "/upgrade/"

// pathMarkers maps well-known URL path substrings to category slugs.
// Detection order is fixed; the first match wins.
var pathMarkers = []struct {
	marker   string
	category string
}{
	{"power", "power"},
	{"network", "network"},
	{"video", "video-storage"},
	{"optics", "optics"},
}

// DetectCategory returns the category for a page path, or "" when no marker
// matches.
func DetectCategory(path string) string {
	for _, m := range pathMarkers {
		if strings.Contains(path, m.marker) {
			return m.category
		}
	}
	return ""
}

// Page is what the gate needs to know about the current document.
type Page struct {
	URL string
	// Protected is the explicit page-level marker; it is never inferred
	// from the detected category.
	Protected bool
	// ProOnly lists identifiers of interactive elements flagged Pro-only.
	ProOnly []string
}

// Decision is the gate's verdict for one page load.
type Decision struct {
	Category  string
	HasAccess bool
	// RedirectURL, when non-empty, means navigate there now and perform no
	// further page initialization.
	RedirectURL string
	// Intercept lists Pro-only elements whose primary activation must be
	// rewired to the upgrade page instead of their default action.
	Intercept []string
	// CleanURL, when non-empty, should be installed via history
	// replacement (legacy ?pro=1 strip).
	CleanURL string
}

// Evaluate runs the gate for one page load against the local flag store.
// The legacy ?pro=1 bypass grants before access is computed: the category
// flag when the path detects one, otherwise the global flag.
func Evaluate(page Page, flags *unlock.Flags) Decision {
	u, err := url.Parse(page.URL)
	if err != nil {
		// Fail closed: an unparseable URL on a protected page still locks
		// the content.
		if page.Protected {
			return Decision{RedirectURL: UpgradePath}
		}
		return Decision{}
	}
	category := DetectCategory(u.Path)
	d := Decision{Category: category}

	q := u.Query()
	if q.Get("pro") == "1" {
		if category != "" {
			flags.GrantCategory(category)
		} else {
			flags.GrantAll()
		}
		q.Del("pro")
		u.RawQuery = q.Encode()
		d.CleanURL = u.String()
	}

	d.HasAccess = flags.HasAccess(category)

	if page.Protected && !d.HasAccess {
		// Remember the category so the upgrade page can preselect it.
		if category != "" {
			flags.SetSelectedCategory(category)
		}
		d.RedirectURL = UpgradePath + "?category=" + url.QueryEscape(category) + "&from=" + url.QueryEscape(u.Path)
		return d
	}
	if !d.HasAccess && len(page.ProOnly) > 0 {
		d.Intercept = append(d.Intercept, page.ProOnly...)
	}
	return d
}
