package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mfarrukh14/pubmed-scraper/internal/model"
)

// Extractor runs one article extraction. Satisfied by pipeline.Pipeline.
type Extractor interface {
	ExtractURL(ctx context.Context, url string) (*model.Extraction, error)
}

// URLResult pairs a URL with its extraction outcome.
type URLResult struct {
	URL        string
	Extraction *model.Extraction
	Err        error
}

// BatchProcessor extracts many URLs with bounded parallelism and per-domain
// rate limiting.
type BatchProcessor struct {
	extractor Extractor
	limiter   *Limiter
	workers   int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(extractor Extractor, workers int, requestsPerSecond float64, burst int) *BatchProcessor {
	return &BatchProcessor{
		extractor: extractor,
		limiter:   NewLimiter(requestsPerSecond, burst),
		workers:   workers,
	}
}

type extractTask struct {
	url       string
	extractor Extractor
	limiter   *Limiter
	result    *URLResult
}

func (t *extractTask) Execute(ctx context.Context) error {
	if err := t.limiter.Wait(ctx, t.url); err != nil {
		t.result.Err = err
		return err
	}
	extraction, err := t.extractor.ExtractURL(ctx, t.url)
	t.result.Extraction = extraction
	t.result.Err = err
	return err
}

// ProcessURLs extracts every URL and returns results in input order.
func (b *BatchProcessor) ProcessURLs(ctx context.Context, urls []string) []*URLResult {
	results := make([]*URLResult, len(urls))
	tasks := make([]Task, len(urls))
	for i, url := range urls {
		results[i] = &URLResult{URL: url}
		tasks[i] = &extractTask{
			url:       url,
			extractor: b.extractor,
			limiter:   b.limiter,
			result:    results[i],
		}
	}

	errs := Run(ctx, b.workers, tasks)
	for i, err := range errs {
		if results[i].Err == nil {
			results[i].Err = err
		}
	}
	return results
}

// ProcessFile reads URLs from a file (one per line, # comments allowed) and
// extracts them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*URLResult, error) {
	urls, err := ReadURLsFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}
	return b.ProcessURLs(ctx, urls), nil
}

// ReadURLsFromFile reads one URL per line, skipping blanks and comments and
// dropping duplicates.
func ReadURLsFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return urls, nil
}
