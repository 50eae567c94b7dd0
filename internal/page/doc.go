// Package page wraps a parsed HTML tree with the lookups the extractors need:
// meta-tag hints, visible text, and predicate-based node searches.
package page

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Document is an immutable parsed article page.
type Document struct {
	root *html.Node
}

// Parse parses raw HTML into a Document.
func Parse(htmlContent string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{root: root}, nil
}

// Root exposes the underlying tree for custom walks.
func (d *Document) Root() *html.Node {
	return d.root
}

// Meta returns the content of the first <meta> whose name or property
// attribute equals key and whose content is non-empty.
func (d *Document) Meta(key string) string {
	var content string
	d.walk(func(n *html.Node) bool {
		if !isElement(n, "meta") {
			return false
		}
		name := Attr(n, "name")
		if name == "" {
			name = Attr(n, "property")
		}
		if name != key {
			return false
		}
		if c := strings.TrimSpace(Attr(n, "content")); c != "" {
			content = c
			return true
		}
		return false
	})
	return content
}

// MetaFirst tries each key in order and returns the first non-empty content.
func (d *Document) MetaFirst(keys ...string) string {
	for _, key := range keys {
		if c := d.Meta(key); c != "" {
			return c
		}
	}
	return ""
}

// MetaAll returns all non-empty contents of <meta name=key> in document order.
func (d *Document) MetaAll(key string) []string {
	var contents []string
	d.walk(func(n *html.Node) bool {
		if isElement(n, "meta") && Attr(n, "name") == key {
			if c := strings.TrimSpace(Attr(n, "content")); c != "" {
				contents = append(contents, c)
			}
		}
		return false
	})
	return contents
}

// Title returns the text of the <title> element, trimmed.
func (d *Document) Title() string {
	n := d.FindFirst(func(n *html.Node) bool { return isElement(n, "title") })
	if n == nil {
		return ""
	}
	return strings.TrimSpace(Text(n))
}

// VisibleText returns the page text with script, style, noscript and iframe
// subtrees skipped. Text nodes are joined with single spaces.
func (d *Document) VisibleText() string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(d.root)
	return strings.TrimSpace(buf.String())
}

// FindAll returns every node matching the predicate, in document order.
func (d *Document) FindAll(pred func(*html.Node) bool) []*html.Node {
	var results []*html.Node
	d.walk(func(n *html.Node) bool {
		if pred(n) {
			results = append(results, n)
		}
		return false
	})
	return results
}

// FindFirst returns the first node matching the predicate, or nil.
func (d *Document) FindFirst(pred func(*html.Node) bool) *html.Node {
	var result *html.Node
	d.walk(func(n *html.Node) bool {
		if pred(n) {
			result = n
			return true
		}
		return false
	})
	return result
}

// walk visits nodes depth-first until visit returns true.
func (d *Document) walk(visit func(*html.Node) bool) {
	var rec func(*html.Node) bool
	rec = func(n *html.Node) bool {
		if visit(n) {
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if rec(c) {
				return true
			}
		}
		return false
	}
	rec(d.root)
}

// Text returns the space-joined trimmed text of a subtree.
func Text(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}
	var parts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := Text(c); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// Attr returns the value of the named attribute, or "".
func Attr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// HasClass reports whether n carries the given CSS class.
func HasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(Attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// IsElement reports whether n is an element with one of the given tag names.
func IsElement(n *html.Node, names ...string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, name := range names {
		if n.Data == name {
			return true
		}
	}
	return false
}

func isElement(n *html.Node, name string) bool {
	return n.Type == html.ElementNode && n.Data == name
}
