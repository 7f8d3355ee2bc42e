package validation

import "github.com/microcosm-cc/bluemonday"

// postContentPolicy is the allow-list for rich-text post bodies: standard
// formatting tags plus anchors, images, headings, underline and
// strikethrough. Inline style is limited to text-align with enumerated
// values. URL schemes are limited to http, https and data.
var postContentPolicy = buildPostContentPolicy()

func buildPostContentPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "br", "b", "i", "strong", "em", "u", "s",
		"h1", "h2", "h3",
		"ul", "ol", "li", "blockquote", "pre", "code",
		"span", "div",
	)

	p.AllowElements("a", "img")
	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowAttrs("src", "alt", "title").OnElements("img")
	p.AllowStyles("text-align").MatchingEnum("left", "right", "center", "justify").Globally()

	p.AllowURLSchemes("http", "https", "data")
	p.RequireParseableURLs(true)

	return p
}

// SanitizeHTML strips everything outside the post content allow-list.
// The sanitized output is what gets persisted; raw input is discarded.
func SanitizeHTML(content string) string {
	return postContentPolicy.Sanitize(content)
}
