// Package extract implements the heuristic text-mining core: bibliographic
// metadata, abstract resolution, study-level field detectors, gene/variant
// annotation and odds-ratio association mining. Every extractor is a total
// function over its input; a failed match yields an empty value, never an
// error.
package extract

import (
	"regexp"
	"strings"

	"github.com/mfarrukh14/pubmed-scraper/internal/model"
	"github.com/mfarrukh14/pubmed-scraper/internal/page"
	"golang.org/x/net/html"
)

const (
	// authorContainerScan caps how many child elements of an author
	// container are inspected for a person-name match.
	authorContainerScan = 30
	// authorAnchorScan caps the page-wide anchor fallback.
	authorAnchorScan = 120
)

var (
	yearRe       = regexp.MustCompile(`(\d{4})`)
	copyrightRe  = regexp.MustCompile(`©\s*(\d{4})`)
	personNameRe = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+$`)

	// Known author-container hooks used by PubMed and common journal sites.
	authorContainerClasses = []string{"authors-list", "authors", "author-list", "full-authors"}
)

// MetadataExtractor pulls bibliographic fields from structured page hints,
// with textual fallbacks for authors and year.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a new metadata extractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// Extract reads title, journal, DOI, PMID, year and authors from the document.
// Every field is a string and may be empty; Extract never fails.
func (e *MetadataExtractor) Extract(doc *page.Document) model.Metadata {
	meta := model.Metadata{
		Title:   doc.MetaFirst("citation_title", "og:title"),
		Journal: doc.MetaFirst("citation_journal_title", "citation_journal", "og:site_name"),
		DOI:     doc.MetaFirst("citation_doi", "DC.identifier"),
		PMID:    doc.Meta("citation_pmid"),
	}

	if meta.Title == "" {
		meta.Title = doc.Title()
	}

	if date := doc.MetaFirst("citation_publication_date", "citation_date"); date != "" {
		if m := yearRe.FindStringSubmatch(date); m != nil {
			meta.Year = m[1]
		}
	}
	if meta.Year == "" {
		if m := copyrightRe.FindStringSubmatch(doc.VisibleText()); m != nil {
			meta.Year = m[1]
		}
	}

	// Prefer structured author hints whenever present.
	authors := doc.MetaAll("citation_author")
	if len(authors) > 0 {
		meta.FirstAuthor = authors[0]
		meta.Authors = strings.Join(authors, ", ")
		return meta
	}

	meta.FirstAuthor = e.findAuthorFallback(doc)
	meta.Authors = meta.FirstAuthor
	return meta
}

// findAuthorFallback searches known author containers for a person-name
// pattern, then at most the first authorAnchorScan anchors page-wide.
// The first match found wins.
func (e *MetadataExtractor) findAuthorFallback(doc *page.Document) string {
	container := doc.FindFirst(isAuthorContainer)
	if container != nil {
		if name := firstPersonName(container, authorContainerScan, "a", "span", "li"); name != "" {
			return name
		}
	}

	anchors := doc.FindAll(func(n *html.Node) bool { return page.IsElement(n, "a") })
	if len(anchors) > authorAnchorScan {
		anchors = anchors[:authorAnchorScan]
	}
	for _, a := range anchors {
		if txt := page.Text(a); personNameRe.MatchString(txt) {
			return txt
		}
	}
	return ""
}

// isAuthorContainer matches elements whose class is one of the known author
// container classes, or whose id is "authors".
func isAuthorContainer(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if page.Attr(n, "id") == "authors" {
		return true
	}
	for _, class := range authorContainerClasses {
		if page.HasClass(n, class) {
			return true
		}
	}
	return false
}

// firstPersonName walks the subtree and returns the text of the first element
// with one of the given tags that reads like "Name Surname". At most limit
// candidate elements are inspected.
func firstPersonName(root *html.Node, limit int, tags ...string) string {
	found := ""
	seen := 0

	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if page.IsElement(n, tags...) {
			seen++
			if txt := page.Text(n); personNameRe.MatchString(txt) {
				found = txt
				return true
			}
			if seen >= limit {
				return true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}

	walk(root)
	return found
}
