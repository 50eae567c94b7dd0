package extract

import (
	"strings"
	"testing"
)

func TestAbstractResolver_PriorityOrder(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "citation_abstract wins",
			html: `<html><head>
				<meta name="citation_abstract" content="Structured abstract.">
				<meta property="og:description" content="OG description.">
			</head><body><div class="abstract">Container abstract.</div></body></html>`,
			want: "Structured abstract.",
		},
		{
			name: "og:description before description",
			html: `<html><head>
				<meta property="og:description" content="OG description.">
				<meta name="description" content="Plain description.">
			</head></html>`,
			want: "OG description.",
		},
		{
			name: "abstract container by class",
			html: `<html><body><div class="abstract-content">We studied TCF7L2 variants.</div></body></html>`,
			want: "We studied TCF7L2 variants.",
		},
		{
			name: "abstract container by id",
			html: `<html><body><section id="Abstract1">Section abstract text.</section></body></html>`,
			want: "Section abstract text.",
		},
		{
			name: "empty page",
			html: `<html><body></body></html>`,
			want: "",
		},
	}

	resolver := NewAbstractResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.Resolve(mustParse(t, tt.html))
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAbstractResolver_LargestParagraphFallback(t *testing.T) {
	html := `
	<html><body>
		<p>Short.</p>
		<p>This is the longest paragraph on the page and should be chosen as the abstract fallback.</p>
		<p>Also short.</p>
	</body></html>
	`

	got := NewAbstractResolver().Resolve(mustParse(t, html))
	if !strings.Contains(got, "longest paragraph") {
		t.Errorf("Expected largest paragraph, got %q", got)
	}
}
