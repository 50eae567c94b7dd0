package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mfarrukh14/pubmed-scraper/internal/model"
)

var rsidRe = regexp.MustCompile(`(?i)\b(rs\d{3,})\b`)

// VariantAnnotator finds rsIDs in the corpus, associates each with a
// candidate gene and inline annotation, and detects allele frequencies.
type VariantAnnotator struct{}

// NewVariantAnnotator creates a new variant annotator.
func NewVariantAnnotator() *VariantAnnotator {
	return &VariantAnnotator{}
}

// Annotate returns all variants in order of first appearance, deduplicated on
// the canonical lowercase rsID, with gene association and allele frequency
// filled in where the corpus supports them.
func (a *VariantAnnotator) Annotate(corpus string) []model.Variant {
	if corpus == "" {
		return nil
	}

	variants := collectRSIDs(corpus)
	for i := range variants {
		gene, annot := associateGene(corpus, variants[i].RSID)
		variants[i].Gene = gene
		variants[i].Annot = annot
		variants[i].Freq = alleleFreq(corpus, variants[i].RSID)
	}
	return variants
}

// collectRSIDs gathers rsID tokens preserving first-seen order.
func collectRSIDs(corpus string) []model.Variant {
	var variants []model.Variant
	seen := make(map[string]bool)

	for _, m := range rsidRe.FindAllStringSubmatch(corpus, -1) {
		rsid := strings.ToLower(m[1])
		if seen[rsid] {
			continue
		}
		seen[rsid] = true
		variants = append(variants, model.Variant{RSID: rsid})
	}
	return variants
}

// associateGene tries three patterns against the full corpus, first match
// wins:
//
//  1. GENE( rsID ... )  — captures gene plus the inner parenthetical; text
//     after the rsID inside the parentheses becomes the annotation.
//  2. rsID / GENE
//  3. GENE immediately preceding the rsID.
//
// Returns ("", "") when no pattern matches.
func associateGene(corpus, rsid string) (gene, annot string) {
	quoted := regexp.QuoteMeta(rsid)

	parenRe := regexp.MustCompile(`(?i)([A-Za-z0-9\-\_]+)\s*\(\s*(` + quoted + `(?:[^\)]*)\))`)
	if m := parenRe.FindStringSubmatch(corpus); m != nil {
		gene = strings.TrimSpace(m[1])
		inner := strings.TrimSpace(m[2])
		if strings.HasPrefix(strings.ToLower(inner), rsid) {
			annot = trailingAnnot(inner[len(rsid):])
		} else {
			annot = inner
		}
		return gene, annot
	}

	slashRe := regexp.MustCompile(`(?i)` + quoted + `\s*\/\s*([A-Za-z0-9\-\_]+)`)
	if m := slashRe.FindStringSubmatch(corpus); m != nil {
		return strings.TrimSpace(m[1]), ""
	}

	beforeRe := regexp.MustCompile(`([A-Z0-9]{2,15})\s{0,6}[^A-Za-z0-9]{0,6}(?i:` + quoted + `)`)
	if m := beforeRe.FindStringSubmatch(corpus); m != nil {
		return strings.TrimSpace(m[1]), ""
	}

	return "", ""
}

// trailingAnnot cleans the parenthetical tail that follows the rsID. The
// capture includes the group's closing paren, so a bare "GENE (rsID)" leaves
// just ")" behind, which is no annotation at all. A real nested note like
// " (Pro12Ala)" keeps its leading space so rendering reproduces the source
// spacing.
func trailingAnnot(tail string) string {
	if !strings.Contains(tail, "(") {
		tail = strings.TrimSuffix(tail, ")")
	}
	tail = strings.TrimRight(tail, " ")
	if strings.TrimSpace(tail) == "" {
		return ""
	}
	return tail
}

// alleleFreq looks for a decimal fraction, or a percentage converted to a
// fraction, within a few characters after the rsID.
func alleleFreq(corpus, rsid string) string {
	quoted := regexp.QuoteMeta(rsid)

	fracRe := regexp.MustCompile(`(?i)` + quoted + `[^0-9]{0,8}([01]?\.\d{1,4})`)
	if m := fracRe.FindStringSubmatch(corpus); m != nil {
		return m[1]
	}

	pctRe := regexp.MustCompile(`(?i)` + quoted + `[^0-9]{0,8}([0-9]{1,3}\.\d{1,2})\s*%`)
	if m := pctRe.FindStringSubmatch(corpus); m != nil {
		val, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return m[1] + "%"
		}
		return fmt.Sprintf("%.3f", val/100.0)
	}
	return ""
}

// GroupByGene builds gene groups ordered by the rsID-list index at which each
// gene first appeared. Variants without a gene are excluded. Within a group
// variants keep their original rsID order.
func GroupByGene(variants []model.Variant) []model.GeneGroup {
	var order []string
	byGene := make(map[string][]model.Variant)

	for _, v := range variants {
		if v.Gene == "" {
			continue
		}
		if _, ok := byGene[v.Gene]; !ok {
			order = append(order, v.Gene)
		}
		byGene[v.Gene] = append(byGene[v.Gene], v)
	}

	groups := make([]model.GeneGroup, 0, len(order))
	for _, gene := range order {
		groups = append(groups, model.GeneGroup{Gene: gene, Variants: byGene[gene]})
	}
	return groups
}
