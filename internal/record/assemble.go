// Package record assembles extractor outputs into the fixed 18-column row,
// including the numbered Gene-column formatting.
package record

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mfarrukh14/pubmed-scraper/internal/extract"
	"github.com/mfarrukh14/pubmed-scraper/internal/model"
)

// Fixed remark strings for the Comments/Remarks cell.
const (
	remarkCaseControl = "Case-control study; sample size estimation and replication required."
	remarkDefault     = "Parsed heuristically from abstract/meta."
)

// qualityMarker is emitted when either trigger term occurs in the corpus.
const qualityMarker = "1:SIFT score 2:PolyPhen score"

var qualityRe = regexp.MustCompile(`(?i)SIFT|PolyPhen`)

// Inputs carries everything the assembler combines into one row.
type Inputs struct {
	Meta          model.Metadata
	Corpus        string
	StudyDesign   string
	Region        string
	SampleSize    int
	HasSampleSize bool
	MeanAge       string
	Genotyping    string
	Variants      []model.Variant
	Groups        []model.GeneGroup
	Assocs        []model.Association
	PValueOnly    bool // Assocs came from the p-value-only fallback
}

// Assemble builds the output row. Missing values become empty strings.
func Assemble(in Inputs) model.Row {
	var reported, effects, pvalues []string
	if in.PValueOnly {
		for _, a := range in.Assocs {
			reported = append(reported, fmt.Sprintf("%s → P=%s", a.RSID, a.P))
			pvalues = append(pvalues, fmt.Sprintf("%s → %s", a.RSID, a.P))
		}
	} else {
		for _, a := range in.Assocs {
			label := a.Label()
			reported = append(reported, fmt.Sprintf("%s (OR=%s) P=%s", label, a.OR, a.P))
			if eff := extract.EffectDirection(a.OR, a.P); eff != "" {
				effects = append(effects, fmt.Sprintf("%s → %s", label, eff))
			} else {
				effects = append(effects, fmt.Sprintf("%s → Unknown", label))
			}
			pvalues = append(pvalues, fmt.Sprintf("%s → %s", label, a.P))
		}
	}

	author := in.Meta.FirstAuthor
	if author == "" {
		author = in.Meta.Authors
	}

	sampleSize := ""
	if in.HasSampleSize {
		sampleSize = strconv.Itoa(in.SampleSize)
	}

	quality := ""
	if qualityRe.MatchString(in.Corpus) {
		quality = qualityMarker
	}

	remark := remarkDefault
	if strings.Contains(strings.ToLower(in.StudyDesign), "case control") {
		remark = remarkCaseControl
	}

	return model.Row{
		"Author(s)":                author,
		"Title":                    in.Meta.Title,
		"Year":                     in.Meta.Year,
		"Journal":                  in.Meta.Journal,
		"DOI/PMID":                 identifierCell(in.Meta.PMID, in.Meta.DOI),
		"Study Design":             in.StudyDesign,
		"Region":                   in.Region,
		"Sample Size (Cases)":      sampleSize,
		"Mean Age":                 in.MeanAge,
		"Gene":                     RenderGeneCell(in.Groups, in.Variants),
		"SNP/Variant":              snpCell(in.Variants),
		"Genotyping Method":        in.Genotyping,
		"Allele Frequency (Cases)": freqCell(in.Variants),
		"Reported Association":     strings.Join(reported, "\n"),
		"Effect Direction":         strings.Join(effects, "\n"),
		"p-value":                  strings.Join(pvalues, "\n"),
		"Quality Score (NOS)":      quality,
		"Comments/Remarks":         remark,
	}
}

// identifierCell combines PMID and DOI on separate lines when at least one is
// present.
func identifierCell(pmid, doi string) string {
	if pmid == "" && doi == "" {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("PMID: %s\nDOI: %s", pmid, doi))
}

// RenderGeneCell renders gene groups as numbered lines:
//
//	1:PPARG(rs1801282 (Pro12Ala))
//	2:HNF4A(rs745975)
//
// When no gene associations exist at all, each rsID is rendered alone as
// "<n>:<rsID>".
func RenderGeneCell(groups []model.GeneGroup, variants []model.Variant) string {
	var entries []string

	if len(groups) > 0 {
		idx := 1
		for _, g := range groups {
			var rsParts []string
			for _, v := range g.Variants {
				rsParts = append(rsParts, variantDisplay(v))
			}
			if len(rsParts) == 0 {
				continue
			}
			entries = append(entries, fmt.Sprintf("%d:%s(%s)", idx, g.Gene, strings.Join(rsParts, ", ")))
			idx++
		}
	} else {
		for i, v := range variants {
			entries = append(entries, fmt.Sprintf("%d:%s", i+1, v.RSID))
		}
	}
	return strings.Join(entries, "\n")
}

// variantDisplay concatenates the rsID with its annotation, inserting a
// single space unless the annotation already begins with one or with "(".
func variantDisplay(v model.Variant) string {
	annot := v.Annot
	if strings.TrimSpace(annot) == "" {
		return v.RSID
	}
	if !strings.HasPrefix(annot, "(") && !strings.HasPrefix(annot, " ") {
		annot = " " + annot
	}
	return v.RSID + annot
}

func snpCell(variants []model.Variant) string {
	var rsids []string
	for _, v := range variants {
		rsids = append(rsids, v.RSID)
	}
	return strings.Join(rsids, "\n")
}

// freqCell lists "<gene> (<rsID>) → <frequency>" for every variant with a
// detected frequency.
func freqCell(variants []model.Variant) string {
	var lines []string
	for _, v := range variants {
		if v.Freq != "" {
			lines = append(lines, fmt.Sprintf("%s (%s) → %s", v.Gene, v.RSID, v.Freq))
		}
	}
	return strings.Join(lines, "\n")
}
