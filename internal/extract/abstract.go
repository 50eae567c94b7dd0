package extract

import (
	"strings"

	"github.com/mfarrukh14/pubmed-scraper/internal/page"
	"golang.org/x/net/html"
)

// AbstractResolver isolates the best abstract-like text blob from the page.
type AbstractResolver struct{}

// NewAbstractResolver creates a new abstract resolver.
func NewAbstractResolver() *AbstractResolver {
	return &AbstractResolver{}
}

// Resolve returns the article abstract, trying in order: structured abstract
// hints, a container named "abstract", the largest paragraph on the page.
// Returns "" when nothing qualifies.
func (r *AbstractResolver) Resolve(doc *page.Document) string {
	if abs := doc.MetaFirst("citation_abstract", "og:description", "description"); abs != "" {
		return abs
	}

	if n := doc.FindFirst(isAbstractContainer); n != nil {
		return page.Text(n)
	}

	// Fallback: the single largest paragraph by character count.
	var best *html.Node
	bestLen := 0
	for _, p := range doc.FindAll(func(n *html.Node) bool { return page.IsElement(n, "p") }) {
		if l := len(page.Text(p)); best == nil || l > bestLen {
			best, bestLen = p, l
		}
	}
	if best != nil {
		return page.Text(best)
	}
	return ""
}

// isAbstractContainer matches div/section/p elements whose class or id name
// contains "abstract", case-insensitive.
func isAbstractContainer(n *html.Node) bool {
	if !page.IsElement(n, "div", "section", "p") {
		return false
	}
	if strings.Contains(strings.ToLower(page.Attr(n, "class")), "abstract") {
		return true
	}
	return strings.Contains(strings.ToLower(page.Attr(n, "id")), "abstract")
}
