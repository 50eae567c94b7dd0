package extract

import (
	"testing"

	"github.com/mfarrukh14/pubmed-scraper/internal/page"
)

func mustParse(t *testing.T, html string) *page.Document {
	t.Helper()
	doc, err := page.Parse(html)
	if err != nil {
		t.Fatalf("Expected no parse error, got %v", err)
	}
	return doc
}

func TestMetadataExtractor_StructuredHints(t *testing.T) {
	html := `
	<html>
	<head>
		<meta name="citation_title" content="TCF7L2 variants and type 2 diabetes risk">
		<meta name="citation_journal_title" content="Journal of Human Genetics">
		<meta name="citation_doi" content="10.1000/jhg.2021.123">
		<meta name="citation_pmid" content="34567890">
		<meta name="citation_publication_date" content="2021/06/15">
		<meta name="citation_author" content="Ayesha Khan">
		<meta name="citation_author" content="Bilal Ahmed">
		<title>Fallback page title</title>
	</head>
	<body><p>Body text.</p></body>
	</html>
	`

	meta := NewMetadataExtractor().Extract(mustParse(t, html))

	if meta.Title != "TCF7L2 variants and type 2 diabetes risk" {
		t.Errorf("Unexpected title: %q", meta.Title)
	}
	if meta.Journal != "Journal of Human Genetics" {
		t.Errorf("Unexpected journal: %q", meta.Journal)
	}
	if meta.DOI != "10.1000/jhg.2021.123" {
		t.Errorf("Unexpected DOI: %q", meta.DOI)
	}
	if meta.PMID != "34567890" {
		t.Errorf("Unexpected PMID: %q", meta.PMID)
	}
	if meta.Year != "2021" {
		t.Errorf("Unexpected year: %q", meta.Year)
	}
	if meta.FirstAuthor != "Ayesha Khan" {
		t.Errorf("Unexpected first author: %q", meta.FirstAuthor)
	}
	if meta.Authors != "Ayesha Khan, Bilal Ahmed" {
		t.Errorf("Unexpected author list: %q", meta.Authors)
	}
}

func TestMetadataExtractor_TitleFallbackChain(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "og:title when citation_title absent",
			html: `<html><head><meta property="og:title" content="OG Title"><title>Page Title</title></head></html>`,
			want: "OG Title",
		},
		{
			name: "page title when no structured hints",
			html: `<html><head><title>Page Title</title></head></html>`,
			want: "Page Title",
		},
		{
			name: "empty when nothing available",
			html: `<html><body><p>no title here</p></body></html>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NewMetadataExtractor().Extract(mustParse(t, tt.html))
			if meta.Title != tt.want {
				t.Errorf("Expected title %q, got %q", tt.want, meta.Title)
			}
		})
	}
}

func TestMetadataExtractor_YearFromCopyright(t *testing.T) {
	html := `<html><body><p>All rights reserved © 2019 Elsevier B.V.</p></body></html>`

	meta := NewMetadataExtractor().Extract(mustParse(t, html))
	if meta.Year != "2019" {
		t.Errorf("Expected year 2019 from copyright notice, got %q", meta.Year)
	}
}

func TestMetadataExtractor_AuthorContainerFallback(t *testing.T) {
	html := `
	<html><body>
		<div class="authors-list">
			<span>et al.</span>
			<a href="/a1">Sana Malik</a>
			<a href="/a2">Omar Farooq</a>
		</div>
	</body></html>
	`

	meta := NewMetadataExtractor().Extract(mustParse(t, html))
	if meta.FirstAuthor != "Sana Malik" {
		t.Errorf("Expected first author from container, got %q", meta.FirstAuthor)
	}
	if meta.Authors != "Sana Malik" {
		t.Errorf("Expected author list to fall back to first author, got %q", meta.Authors)
	}
}

func TestMetadataExtractor_AnchorFallback(t *testing.T) {
	html := `
	<html><body>
		<a href="/home">home</a>
		<a href="/about">ABOUT US</a>
		<a href="/profile">Hira Aslam</a>
	</body></html>
	`

	meta := NewMetadataExtractor().Extract(mustParse(t, html))
	if meta.FirstAuthor != "Hira Aslam" {
		t.Errorf("Expected first author from anchor scan, got %q", meta.FirstAuthor)
	}
}

func TestMetadataExtractor_MetaAuthorsWinOverContainers(t *testing.T) {
	html := `
	<html>
	<head><meta name="citation_author" content="Meta Author"></head>
	<body><div class="authors"><a>Container Author</a></div></body>
	</html>
	`

	meta := NewMetadataExtractor().Extract(mustParse(t, html))
	if meta.FirstAuthor != "Meta Author" {
		t.Errorf("Expected structured author hints to win, got %q", meta.FirstAuthor)
	}
}

func TestMetadataExtractor_MissingEverything(t *testing.T) {
	meta := NewMetadataExtractor().Extract(mustParse(t, `<html><body></body></html>`))

	if meta.Title != "" || meta.Journal != "" || meta.DOI != "" || meta.PMID != "" ||
		meta.Year != "" || meta.FirstAuthor != "" || meta.Authors != "" {
		t.Errorf("Expected all fields empty, got %+v", meta)
	}
}
