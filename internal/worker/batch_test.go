package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mfarrukh14/pubmed-scraper/internal/model"
)

type fakeExtractor struct {
	failing map[string]error
}

func (f *fakeExtractor) ExtractURL(ctx context.Context, url string) (*model.Extraction, error) {
	if err, ok := f.failing[url]; ok {
		return nil, err
	}
	return &model.Extraction{URL: url}, nil
}

func TestProcessURLs_ResultsInInputOrder(t *testing.T) {
	urls := []string{
		"https://example.org/one",
		"https://example.org/two",
		"https://example.org/three",
	}
	b := NewBatchProcessor(&fakeExtractor{}, 3, 100, 10)

	results := b.ProcessURLs(context.Background(), urls)

	if len(results) != len(urls) {
		t.Fatalf("Expected %d results, got %d", len(urls), len(results))
	}
	for i, r := range results {
		if r.URL != urls[i] {
			t.Errorf("Result %d is for %q, want %q", i, r.URL, urls[i])
		}
		if r.Err != nil {
			t.Errorf("Result %d failed: %v", i, r.Err)
		}
		if r.Extraction == nil || r.Extraction.URL != urls[i] {
			t.Errorf("Result %d has wrong extraction: %+v", i, r.Extraction)
		}
	}
}

func TestProcessURLs_PartialFailure(t *testing.T) {
	broken := errors.New("fetch: unexpected status: 404")
	b := NewBatchProcessor(&fakeExtractor{
		failing: map[string]error{"https://example.org/bad": broken},
	}, 2, 100, 10)

	results := b.ProcessURLs(context.Background(), []string{
		"https://example.org/good",
		"https://example.org/bad",
	})

	if results[0].Err != nil {
		t.Errorf("Good URL failed: %v", results[0].Err)
	}
	if !errors.Is(results[1].Err, broken) {
		t.Errorf("Expected failure for bad URL, got %v", results[1].Err)
	}
	if results[1].Extraction != nil {
		t.Errorf("Failed result should carry no extraction, got %+v", results[1].Extraction)
	}
}

func TestReadURLsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := `# article list
https://example.org/one

https://example.org/two
https://example.org/one
  https://example.org/three
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Write fixture: %v", err)
	}

	urls, err := ReadURLsFromFile(path)
	if err != nil {
		t.Fatalf("ReadURLsFromFile failed: %v", err)
	}

	want := []string{
		"https://example.org/one",
		"https://example.org/two",
		"https://example.org/three",
	}
	if !reflect.DeepEqual(urls, want) {
		t.Errorf("Expected %v, got %v", want, urls)
	}
}

func TestProcessFile_MissingFile(t *testing.T) {
	b := NewBatchProcessor(&fakeExtractor{}, 1, 100, 10)

	if _, err := b.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("Expected error for missing URL file")
	}
}
