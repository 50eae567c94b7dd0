package extract

import (
	"reflect"
	"testing"

	"github.com/mfarrukh14/pubmed-scraper/internal/model"
)

func TestExtractAssociations_LooseForm(t *testing.T) {
	e := NewAssociationExtractor()

	assocs := e.Extract("Carriers of rs7903146 showed OR = 2.1 and P = 0.03 in the cohort.")
	want := []model.Association{{RSID: "rs7903146", OR: "2.1", P: "0.03"}}
	if !reflect.DeepEqual(assocs, want) {
		t.Errorf("Expected %+v, got %+v", want, assocs)
	}
}

func TestExtractAssociations_LooseFormWithoutRSID(t *testing.T) {
	e := NewAssociationExtractor()

	assocs := e.Extract("The pooled odds ratio = 1.8 was seen in the meta-analysis.")
	want := []model.Association{{RSID: "", OR: "1.8", P: ""}}
	if !reflect.DeepEqual(assocs, want) {
		t.Errorf("Expected %+v, got %+v", want, assocs)
	}
}

func TestExtractAssociations_ParentheticalForm(t *testing.T) {
	e := NewAssociationExtractor()

	// The parenthesis blocks the loose rsID prefix, so the loose pass yields
	// an anonymous entry and the strict pass supplies the rsID-bound one.
	assocs := e.Extract("The rs2237892 risk allele (OR = 1.42, 95% CI 1.21-1.68, P = 0.004) was replicated.")
	want := []model.Association{
		{RSID: "", OR: "1.42", P: "0.004"},
		{RSID: "rs2237892", OR: "1.42", P: "0.004"},
	}
	if !reflect.DeepEqual(assocs, want) {
		t.Errorf("Expected %+v, got %+v", want, assocs)
	}
}

func TestExtractAssociations_Dedupe(t *testing.T) {
	e := NewAssociationExtractor()

	corpus := "rs1801282 had OR = 0.78, P = 0.01 in males. rs1801282 had OR = 0.78, P = 0.01 in females."
	assocs := e.Extract(corpus)
	if len(assocs) != 1 {
		t.Fatalf("Expected 1 deduplicated association, got %d: %+v", len(assocs), assocs)
	}
	if assocs[0].RSID != "rs1801282" {
		t.Errorf("Expected rsID rs1801282, got %q", assocs[0].RSID)
	}
}

func TestExtractAssociations_Empty(t *testing.T) {
	e := NewAssociationExtractor()

	for _, corpus := range []string{"", "No statistics were given in the text."} {
		if got := e.Extract(corpus); len(got) != 0 {
			t.Errorf("Extract(%q) = %+v, want empty", corpus, got)
		}
	}
}

func TestFallbackPValues(t *testing.T) {
	e := NewAssociationExtractor()

	corpus := "rs9939609 was tested under the additive model; P = 0.002 after adjustment"
	variants := []model.Variant{{RSID: "rs9939609"}, {RSID: "rs1121980"}}

	assocs := e.FallbackPValues(corpus, variants)
	want := []model.Association{{RSID: "rs9939609", P: "0.002"}}
	if !reflect.DeepEqual(assocs, want) {
		t.Errorf("Expected %+v, got %+v", want, assocs)
	}
}

func TestEffectDirection(t *testing.T) {
	tests := []struct {
		name string
		or   string
		p    string
		want string
	}{
		{"risk up", "2.1", "0.03", EffectRiskUp},
		{"risk down", "0.85", "0.01", EffectRiskDown},
		{"no change", "1.0", "0.01", EffectNoChange},
		{"not significant", "0.5", "0.2", EffectNotSignificant},
		{"boundary p", "2.0", "0.05", EffectRiskUp},
		{"greater-than prefix stripped", "2.0", ">0.05", EffectRiskUp},
		{"missing p", "0.85", "", EffectRiskDown},
		{"unparsable p treated significant", "1.3", "n.s.", EffectRiskUp},
		{"unparsable or", "N/A", "0.03", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectDirection(tt.or, tt.p); got != tt.want {
				t.Errorf("EffectDirection(%q, %q) = %q, want %q", tt.or, tt.p, got, tt.want)
			}
		})
	}
}
