package model

import (
	"strings"

	"golang.org/x/net/html"
)

// StripTags reduces an HTML fragment to its text content. Product
// descriptions arrive from the platform as merchant-authored HTML; the quick
// view displays them as plain text only.
//
// Uses a streaming tokenizer rather than a full parse: malformed markup is
// common in merchant content and must never fail, just degrade to text.
func StripTags(fragment string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
loop:
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input; either way, keep what we have
			break loop
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			// Tag boundaries become spaces so words don't run together
			b.WriteByte(' ')
		}
	}
	// Collapse runs of whitespace left by markup boundaries
	return strings.Join(strings.Fields(b.String()), " ")
}
