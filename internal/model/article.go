package model

import "time"

// Metadata holds the bibliographic fields read from structured page hints.
type Metadata struct {
	Title       string `json:"title"`
	FirstAuthor string `json:"first_author"`
	Authors     string `json:"authors"`
	Journal     string `json:"journal"`
	DOI         string `json:"doi"`
	PMID        string `json:"pmid"`
	Year        string `json:"year"`
}

// Variant represents one rsID found in the corpus together with everything
// the annotators attached to it. The zero value means "seen but unannotated".
type Variant struct {
	RSID  string `json:"rsid"`            // canonical lowercase "rs" + digits
	Gene  string `json:"gene,omitempty"`  // associated gene name, "" if none
	Annot string `json:"annot,omitempty"` // inline annotation, e.g. " (Pro12Ala)"
	Freq  string `json:"freq,omitempty"`  // allele frequency as decimal string
}

// GeneGroup is a gene name plus its variants in original rsID order.
type GeneGroup struct {
	Gene     string    `json:"gene"`
	Variants []Variant `json:"variants"`
}

// Association is one odds-ratio / p-value statement pulled from the corpus.
type Association struct {
	RSID string `json:"rsid,omitempty"` // "" when the statement named no rsID
	OR   string `json:"or,omitempty"`
	P    string `json:"p,omitempty"`
}

// Label identifies the association in rendered cells: the rsID when present,
// otherwise the odds ratio itself.
func (a Association) Label() string {
	if a.RSID != "" {
		return a.RSID
	}
	return "OR:" + a.OR
}

// Extraction is the complete result of parsing one article page.
type Extraction struct {
	URL       string        `json:"url"`
	FetchedAt time.Time     `json:"fetched_at"`
	Meta      Metadata      `json:"meta"`
	Abstract  string        `json:"abstract"`
	Variants  []Variant     `json:"variants,omitempty"`
	Groups    []GeneGroup   `json:"groups,omitempty"`
	Assocs    []Association `json:"assocs,omitempty"`
	Row       Row           `json:"row"`
}

// Row is the flat 18-column output record appended to the spreadsheet.
// Cells holding lists are newline-joined strings.
type Row map[string]string

// Columns is the fixed spreadsheet schema, in append order.
var Columns = []string{
	"Author(s)",
	"Title",
	"Year",
	"Journal",
	"DOI/PMID",
	"Study Design",
	"Region",
	"Sample Size (Cases)",
	"Mean Age",
	"Gene",
	"SNP/Variant",
	"Genotyping Method",
	"Allele Frequency (Cases)",
	"Reported Association",
	"Effect Direction",
	"p-value",
	"Quality Score (NOS)",
	"Comments/Remarks",
}
