package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// designRule pairs a study-design label with its trigger phrases. Rules are
// evaluated in declaration order and the first label with any matching
// trigger wins, regardless of where triggers appear in the corpus.
type designRule struct {
	label    string
	triggers []string
}

var studyDesignRules = []designRule{
	{"Case control", []string{"case-control", "case control", "case-control study"}},
	{"Cohort", []string{"cohort", "prospective cohort", "retrospective cohort"}},
	{"Cross-sectional", []string{"cross-sectional"}},
	{"RCT", []string{"randomized", "randomised", "randomized controlled trial"}},
	{"Meta-analysis", []string{"meta-analysis", "meta analysis", "systematic review"}},
}

// regionNames is searched in order; the first whole-word hit wins.
var regionNames = []string{
	"Pakistan", "Pashtun", "KPK", "Khyber", "Sindh", "Punjab", "Balochistan",
	"India", "China", "USA", "United States",
}

// genotypeKeywords is searched in order as case-insensitive substrings.
var genotypeKeywords = []string{
	"MassARRAY", "massarray", "MassARRAY genotyping", "whole exome sequencing",
	"WES", "PCR", "TaqMan", "microarray", "sequencing", "Sanger", "genotyping",
}

// regionRes holds one whole-word matcher per region name, in list order.
var regionRes = compileRegionRes()

func compileRegionRes() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(regionNames))
	for i, name := range regionNames {
		res[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
	}
	return res
}

var (
	sampleNEqRe      = regexp.MustCompile(`\b[nN]\s*=\s*(\d{2,6})`)
	sampleSizeOfRe   = regexp.MustCompile(`sample size (?:of )?(\d{2,6})`)
	sampleEachRe     = regexp.MustCompile(`(\d{2,6})\s+T2DM cases and controls each`)
	sampleCasesRe    = regexp.MustCompile(`(\d{2,6})\s+(?:cases|subjects)[^\d]{0,30}?(\d{2,6})\s+controls`)
	sampleAnyNumRe   = regexp.MustCompile(`\b(\d{2,6})\b`)
	meanAgePMRe      = regexp.MustCompile(`(?i)mean age[^0-9]{0,6}([0-9]{1,3}(?:\.[0-9]+)?)\s*(?:±|\+/-)\s*([0-9]{1,3}(?:\.[0-9]+)?)`)
	meanAgeWasRe     = regexp.MustCompile(`(?i)mean age (?:was|of)?\s*([0-9]{1,3}(?:\.[0-9]+)?)`)
	meanAgeCaseCtlRe = regexp.MustCompile(`(?i)case[:\s]*([0-9]{1,3}(?:\.[0-9]+)?)\s*(?:±|\+/-)\s*([0-9]{1,3}(?:\.[0-9]+)?)\s*.*control[:\s]*([0-9]{1,3}(?:\.[0-9]+)?)\s*(?:±|\+/-)\s*([0-9]{1,3}(?:\.[0-9]+)?)`)
)

// minFreeStandingSampleSize is the floor for the bare-number fallback; a
// smaller largest number is treated as noise. Known to be a rough heuristic:
// it can latch onto unrelated figures such as years.
const minFreeStandingSampleSize = 30

// FieldExtractor runs the independent study-level field detectors over the
// corpus. Each detector returns a best value or the empty string.
type FieldExtractor struct{}

// NewFieldExtractor creates a new field extractor.
func NewFieldExtractor() *FieldExtractor {
	return &FieldExtractor{}
}

// StudyDesign returns the label of the first design rule whose any trigger
// phrase occurs in the lowercased corpus.
func (e *FieldExtractor) StudyDesign(corpus string) string {
	if corpus == "" {
		return ""
	}
	lower := strings.ToLower(corpus)
	for _, rule := range studyDesignRules {
		for _, trigger := range rule.triggers {
			if strings.Contains(lower, trigger) {
				return rule.label
			}
		}
	}
	return ""
}

// Region returns the first region name with a whole-word, case-insensitive
// occurrence in the corpus. Match order follows the region list, not corpus
// position.
func (e *FieldExtractor) Region(corpus string) string {
	if corpus == "" {
		return ""
	}
	for i, re := range regionRes {
		if re.MatchString(corpus) {
			return regionNames[i]
		}
	}
	return ""
}

// SampleSize tries an ordered cascade of sample-size statements and falls
// back to the largest free-standing 2-6 digit number when it is at least 30.
// The second return is false when nothing qualifies.
func (e *FieldExtractor) SampleSize(corpus string) (int, bool) {
	if corpus == "" {
		return 0, false
	}
	t := strings.ReplaceAll(corpus, ",", "")

	if m := sampleNEqRe.FindStringSubmatch(t); m != nil {
		return mustAtoi(m[1]), true
	}
	if m := sampleSizeOfRe.FindStringSubmatch(t); m != nil {
		return mustAtoi(m[1]), true
	}
	if m := sampleEachRe.FindStringSubmatch(t); m != nil {
		return mustAtoi(m[1]) * 2, true
	}
	if m := sampleCasesRe.FindStringSubmatch(t); m != nil {
		return mustAtoi(m[1]) + mustAtoi(m[2]), true
	}

	big := 0
	for _, m := range sampleAnyNumRe.FindAllStringSubmatch(t, -1) {
		if n := mustAtoi(m[1]); n > big {
			big = n
		}
	}
	if big >= minFreeStandingSampleSize {
		return big, true
	}
	return 0, false
}

// MeanAge tries, in order: "mean age X ± Y", "mean age was/of X", and a
// combined case/control pair formatted as "case:X±Y control:X±Y".
func (e *FieldExtractor) MeanAge(corpus string) string {
	if corpus == "" {
		return ""
	}
	if m := meanAgePMRe.FindStringSubmatch(corpus); m != nil {
		return m[1] + " ± " + m[2]
	}
	if m := meanAgeWasRe.FindStringSubmatch(corpus); m != nil {
		return m[1]
	}
	if m := meanAgeCaseCtlRe.FindStringSubmatch(corpus); m != nil {
		return "case:" + m[1] + "±" + m[2] + " control:" + m[3] + "±" + m[4]
	}
	return ""
}

// GenotypingMethod returns the first genotyping keyword found in the corpus,
// case-insensitive.
func (e *FieldExtractor) GenotypingMethod(corpus string) string {
	if corpus == "" {
		return ""
	}
	lower := strings.ToLower(corpus)
	for _, key := range genotypeKeywords {
		if strings.Contains(lower, strings.ToLower(key)) {
			return key
		}
	}
	return ""
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
