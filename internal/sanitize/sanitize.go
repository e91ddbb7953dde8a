// Package sanitize strips active content from HTML documents.
//
// The sanitizer is a denylist pass: it removes markup that executes
// script or triggers navigation on its own, and keeps everything else
// intact. Full pages must survive sanitization with their structure,
// text and safe attributes untouched, which rules out allowlist
// sanitizers that drop unrecognized markup.
package sanitize

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	xhtml "golang.org/x/net/html"
)

// droppedElements are removed outright: they execute script, load a
// nested document the rewriter cannot route through the proxy, or
// repoint relative resolution for the whole page.
var droppedElements = []string{
	"script",
	"object",
	"embed",
	"applet",
	"iframe",
	"frame",
	"frameset",
	"base",
}

var droppedSelector = strings.Join(droppedElements, ", ")

// Sanitize removes script-executing constructs from html: the elements
// in droppedElements, meta refresh tags, and every inline on* event
// handler attribute. It is idempotent and pure. Malformed input is
// parsed with browser-grade error recovery; on the (reader-level)
// failures goquery can report, the input is returned unchanged rather
// than raising.
func Sanitize(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	doc.Find(droppedSelector).Remove()

	// meta refresh navigates without user action.
	doc.Find("meta[http-equiv]").Each(func(_ int, s *goquery.Selection) {
		if v, _ := s.Attr("http-equiv"); strings.EqualFold(strings.TrimSpace(v), "refresh") {
			s.Remove()
		}
	})

	// The HTML parser lowercases attribute names, so a prefix check
	// catches onClick and friends.
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		node := s.Nodes[0]
		kept := make([]xhtml.Attribute, 0, len(node.Attr))
		for _, a := range node.Attr {
			if strings.HasPrefix(a.Key, "on") {
				continue
			}
			kept = append(kept, a)
		}
		node.Attr = kept
	})

	out, err := doc.Html()
	if err != nil {
		return html
	}
	return out
}
