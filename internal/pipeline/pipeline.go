// Package pipeline wires the fetcher and the extractors into one extraction
// call: URL in, assembled row out.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mfarrukh14/pubmed-scraper/internal/cache"
	"github.com/mfarrukh14/pubmed-scraper/internal/extract"
	"github.com/mfarrukh14/pubmed-scraper/internal/model"
	"github.com/mfarrukh14/pubmed-scraper/internal/page"
	"github.com/mfarrukh14/pubmed-scraper/internal/record"
	"github.com/mfarrukh14/pubmed-scraper/internal/util"
)

// Pipeline orchestrates fetch, parse and extraction for a single article URL.
// Each call rebuilds its corpus and derived records from scratch; no state is
// retained between calls.
type Pipeline struct {
	fetcher   *Fetcher
	metadata  *extract.MetadataExtractor
	abstract  *extract.AbstractResolver
	fields    *extract.FieldExtractor
	annotator *extract.VariantAnnotator
	assoc     *extract.AssociationExtractor
}

// NewPipeline creates a pipeline from the given configuration.
func NewPipeline(cfg *model.Config) *Pipeline {
	var fetchCache cache.Cache
	if cfg.Cache.Enabled {
		fetchCache = cache.NewLayered(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	var robots *util.RobotsChecker
	if cfg.Robots.Enabled {
		robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.Robots.Timeout)
	}

	return &Pipeline{
		fetcher: NewFetcher(FetcherOptions{
			Timeout:     cfg.HTTP.Timeout,
			UserAgent:   cfg.HTTP.UserAgent,
			MaxBytes:    cfg.HTTP.MaxBodyBytes,
			InsecureTLS: cfg.HTTP.InsecureTLS,
			HTTPProxy:   cfg.HTTP.HTTPProxy,
			HTTPSProxy:  cfg.HTTP.HTTPSProxy,
			Cache:       fetchCache,
			Robots:      robots,
		}),
		metadata:  extract.NewMetadataExtractor(),
		abstract:  extract.NewAbstractResolver(),
		fields:    extract.NewFieldExtractor(),
		annotator: extract.NewVariantAnnotator(),
		assoc:     extract.NewAssociationExtractor(),
	}
}

// ExtractURL fetches the article page and runs the full extraction, returning
// the assembled record. The only errors are fetch and parse failures; the
// extractors themselves are total.
func (p *Pipeline) ExtractURL(ctx context.Context, url string) (*model.Extraction, error) {
	fetched, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	return p.ExtractHTML(fetched.FinalURL, fetched.HTML)
}

// ExtractHTML runs the extraction over already-fetched HTML.
func (p *Pipeline) ExtractHTML(url, htmlContent string) (*model.Extraction, error) {
	doc, err := page.Parse(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	meta := p.metadata.Extract(doc)
	abstract := p.abstract.Resolve(doc)
	corpus := BuildCorpus(meta, abstract, doc.VisibleText())

	variants := p.annotator.Annotate(corpus)
	groups := extract.GroupByGene(variants)

	assocs := p.assoc.Extract(corpus)
	pValueOnly := false
	if len(assocs) == 0 && len(variants) > 0 {
		assocs = p.assoc.FallbackPValues(corpus, variants)
		pValueOnly = len(assocs) > 0
	}

	sampleSize, hasSampleSize := p.fields.SampleSize(corpus)

	row := record.Assemble(record.Inputs{
		Meta:          meta,
		Corpus:        corpus,
		StudyDesign:   p.fields.StudyDesign(corpus),
		Region:        p.fields.Region(corpus),
		SampleSize:    sampleSize,
		HasSampleSize: hasSampleSize,
		MeanAge:       p.fields.MeanAge(corpus),
		Genotyping:    p.fields.GenotypingMethod(corpus),
		Variants:      variants,
		Groups:        groups,
		Assocs:        assocs,
		PValueOnly:    pValueOnly,
	})

	return &model.Extraction{
		URL:       url,
		FetchedAt: time.Now().UTC(),
		Meta:      meta,
		Abstract:  abstract,
		Variants:  variants,
		Groups:    groups,
		Assocs:    assocs,
		Row:       row,
	}, nil
}

// BuildCorpus concatenates title, author list, journal, DOI, abstract and
// page text, in that fixed order, into the single blob every heuristic
// extractor reads.
func BuildCorpus(meta model.Metadata, abstract, pageText string) string {
	return strings.Join([]string{
		meta.Title,
		meta.Authors,
		meta.Journal,
		meta.DOI,
		abstract,
		pageText,
	}, " ")
}
