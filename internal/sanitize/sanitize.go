// Package sanitize strips unsafe markup from user-authored HTML before
// it is rendered anywhere. Record bodies are stored and transmitted raw;
// every render site must pass them through Clean first, regardless of
// where the HTML came from.
package sanitize

import "github.com/microcosm-cc/bluemonday"

// policy is built once and reused; bluemonday policies are safe for
// concurrent use after construction.
var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	// UGCPolicy keeps the structural and formatting markup long-form
	// writing needs (headings, lists, emphasis, links, images, tables,
	// code blocks) and drops script tags, inline event handlers and
	// javascript: URLs.
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre")
	return p
}

// Clean returns html with script execution vectors removed. It never
// fails: malformed fragments are dropped rather than reported.
func Clean(html string) string {
	return policy.Sanitize(html)
}
