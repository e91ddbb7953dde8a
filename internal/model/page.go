// Package model defines shared types for the proxy.
package model

import "net/url"

// Page is the outcome of fetching (or rendering) a target resource.
// For HTML targets Body holds the sanitized, rewritten document; for
// everything else it holds the upstream bytes verbatim.
type Page struct {
	// FinalURL is the URL the upstream fetch resolved to after redirects.
	// It is the base used for link rewriting.
	FinalURL *url.URL

	// ContentType is the upstream Content-Type header value.
	ContentType string

	// HTML reports whether the body went through the sanitize/rewrite pipeline.
	HTML bool

	Body []byte
}
