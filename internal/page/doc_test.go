package page

import (
	"reflect"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func mustParse(t *testing.T, raw string) *Document {
	t.Helper()
	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

func TestMeta_NameAndProperty(t *testing.T) {
	doc := mustParse(t, `<html><head>
<meta name="citation_title" content="Named title">
<meta property="og:title" content="OG title">
<meta name="empty" content="  ">
</head></html>`)

	if got := doc.Meta("citation_title"); got != "Named title" {
		t.Errorf("Meta(name) = %q", got)
	}
	if got := doc.Meta("og:title"); got != "OG title" {
		t.Errorf("Meta(property) = %q", got)
	}
	if got := doc.Meta("empty"); got != "" {
		t.Errorf("Blank content should read as missing, got %q", got)
	}
	if got := doc.Meta("absent"); got != "" {
		t.Errorf("Meta(absent) = %q", got)
	}
}

func TestMetaFirst(t *testing.T) {
	doc := mustParse(t, `<html><head>
<meta name="second" content="fallback">
<meta name="first" content="preferred">
</head></html>`)

	if got := doc.MetaFirst("first", "second"); got != "preferred" {
		t.Errorf("MetaFirst = %q", got)
	}
	if got := doc.MetaFirst("absent", "second"); got != "fallback" {
		t.Errorf("MetaFirst fallback = %q", got)
	}
}

func TestMetaAll(t *testing.T) {
	doc := mustParse(t, `<html><head>
<meta name="citation_author" content="Sana Malik">
<meta name="citation_author" content="Hira Aslam">
</head></html>`)

	got := doc.MetaAll("citation_author")
	want := []string{"Sana Malik", "Hira Aslam"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MetaAll = %v, want %v", got, want)
	}
}

func TestTitle(t *testing.T) {
	doc := mustParse(t, `<html><head><title>  An article title  </title></head></html>`)

	if got := doc.Title(); got != "An article title" {
		t.Errorf("Title = %q", got)
	}
}

func TestVisibleText_SkipsNonContent(t *testing.T) {
	doc := mustParse(t, `<html><body>
<p>Visible paragraph.</p>
<script>var hidden = 1;</script>
<style>.x { color: red }</style>
<p>Second paragraph.</p>
</body></html>`)

	text := doc.VisibleText()
	if !strings.Contains(text, "Visible paragraph.") || !strings.Contains(text, "Second paragraph.") {
		t.Errorf("Missing visible text: %q", text)
	}
	if strings.Contains(text, "hidden") || strings.Contains(text, "color") {
		t.Errorf("Non-content text leaked: %q", text)
	}
}

func TestFindFirst_DocumentOrder(t *testing.T) {
	doc := mustParse(t, `<html><body><p id="one">a</p><p id="two">b</p></body></html>`)

	n := doc.FindFirst(func(n *html.Node) bool { return IsElement(n, "p") })
	if n == nil || Attr(n, "id") != "one" {
		t.Errorf("Expected first paragraph, got %+v", n)
	}
}

func TestHasClass(t *testing.T) {
	doc := mustParse(t, `<html><body><div class="abstract full-text">x</div></body></html>`)

	div := doc.FindFirst(func(n *html.Node) bool { return IsElement(n, "div") })
	if div == nil {
		t.Fatal("div not found")
	}
	if !HasClass(div, "abstract") || !HasClass(div, "full-text") {
		t.Error("Expected both classes to match")
	}
	if HasClass(div, "abstr") {
		t.Error("Partial class name should not match")
	}
}
