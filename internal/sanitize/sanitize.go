// Package sanitize restricts user supplied rich text to a safe HTML subset.
package sanitize

import (
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

var allowedTags = []string{
	"p", "strong", "em", "u", "s", "blockquote", "ul", "ol", "li",
	"h1", "h2", "h3", "h4", "h5", "h6",
	"a", "code", "pre", "img", "br", "hr",
}

// Policy is safe for concurrent use once built.
var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(allowedTags...)
	p.AllowAttrs("href", "name", "target", "rel").OnElements("a")
	// anchors survive even when every attribute was stripped
	p.AllowNoAttrs().OnElements("a")
	p.AllowAttrs("src", "alt", "title", "width", "height", "loading").OnElements("img")
	p.AllowAttrs("class").Globally()
	p.AllowURLSchemes("http", "https", "mailto", "tel", "data")
	p.AllowRelativeURLs(true)
	return p
}

// HTML strips every tag, attribute and URL scheme outside the allow-lists,
// drops script and style bodies, then forces rel="noopener noreferrer" on
// anchors and loading="lazy" on images.
func HTML(dirty string) string {
	return rewrite(policy.Sanitize(dirty))
}

var forced = map[string]html.Attribute{
	"a":   {Key: "rel", Val: "noopener noreferrer"},
	"img": {Key: "loading", Val: "lazy"},
}

func rewrite(clean string) string {
	z := html.NewTokenizer(strings.NewReader(clean))
	var b strings.Builder
	b.Grow(len(clean) + 32)

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() != io.EOF {
				// bluemonday output is well formed; keep what was produced
				return clean
			}
			return b.String()
		}

		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			b.Write(z.Raw())
			continue
		}

		raw := string(z.Raw())
		tok := z.Token()
		attr, ok := forced[tok.Data]
		if !ok {
			b.WriteString(raw)
			continue
		}
		setAttr(&tok, attr)
		b.WriteString(tok.String())
	}
}

func setAttr(tok *html.Token, attr html.Attribute) {
	for i := range tok.Attr {
		if tok.Attr[i].Key == attr.Key {
			tok.Attr[i].Val = attr.Val
			return
		}
	}
	tok.Attr = append(tok.Attr, attr)
}
