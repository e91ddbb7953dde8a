// Package rewrite routes document resource references back through the
// proxy endpoint so navigation never escapes the proxy boundary.
package rewrite

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Endpoint is the proxy path rewritten references point at.
const Endpoint = "/proxy_backend"

// rewriteTargets is the static table of element/attribute pairs the
// rewriter covers. One shared routine enforces the skip policies for
// all of them. CSS url(...) values, inline style attributes and img
// srcset are deliberately not covered.
var rewriteTargets = []struct {
	selector string
	attr     string
}{
	{"a[href]", "href"},
	{"link[rel='stylesheet'][href]", "href"},
	{"img[src]", "src"},
	{"script[src]", "src"},
	{"form[action]", "action"},
}

// Resolve resolves ref against base using standard URL resolution
// (absolute, protocol-relative and path-relative forms all work). It
// returns nil on any parse failure and never panics; a nil result
// means "leave the attribute as-is".
func Resolve(base *url.URL, ref string) *url.URL {
	if base == nil {
		return nil
	}
	u, err := base.Parse(ref)
	if err != nil {
		return nil
	}
	return u
}

// blockedScheme reports whether v carries a scheme that is never
// rewritten. The check is case-insensitive and tolerates leading
// whitespace, matching how browsers parse these values.
func blockedScheme(v string) bool {
	s := strings.ToLower(strings.TrimLeft(v, " \t\r\n\f"))
	return strings.HasPrefix(s, "javascript:") || strings.HasPrefix(s, "data:")
}

// Rewriter redirects resource and navigation attributes through the
// proxy endpoint. The zero value is not usable; construct with New.
type Rewriter struct {
	endpoint string
}

// New returns a Rewriter targeting the canonical proxy endpoint.
func New() *Rewriter {
	return &Rewriter{endpoint: Endpoint}
}

// Rewrite parses html with base as the document URL, replaces every
// covered attribute with the endpoint path carrying the resolved
// absolute URL as a single escaped query parameter, removes origin CSP
// meta tags, and serializes the document back.
//
// Failures are local and non-fatal: an attribute that is empty, uses a
// blocked scheme, or fails to resolve keeps its original value and
// processing continues. Fundamentally broken input is returned
// unchanged rather than rejected.
func (r *Rewriter) Rewrite(base *url.URL, html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	for _, target := range rewriteTargets {
		attr := target.attr
		doc.Find(target.selector).Each(func(_ int, s *goquery.Selection) {
			val, ok := s.Attr(attr)
			if !ok || val == "" || blockedScheme(val) {
				return
			}
			abs := Resolve(base, val)
			if abs == nil {
				return
			}
			s.SetAttr(attr, r.endpoint+"?url="+url.QueryEscape(abs.String()))
		})
	}

	// The proxy sets its own response headers; the origin's meta policy
	// would block the retargeted resource loads.
	doc.Find("meta[http-equiv]").Each(func(_ int, s *goquery.Selection) {
		if v, _ := s.Attr("http-equiv"); strings.EqualFold(strings.TrimSpace(v), "content-security-policy") {
			s.Remove()
		}
	})

	out, err := doc.Html()
	if err != nil {
		return html
	}
	return out
}
