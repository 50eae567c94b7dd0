package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mfarrukh14/pubmed-scraper/internal/model"
)

// Effect direction markers.
const (
	EffectRiskUp         = "Risk ↑"
	EffectRiskDown       = "Risk ↓"
	EffectNoChange       = "No change"
	EffectNotSignificant = "No significant effect (ns)"
)

var (
	// Loose form: optional leading rsID, then OR/odds ratio with a float,
	// then an optional trailing P-value within 80 characters.
	assocLooseRe = regexp.MustCompile(`(?i)(?:(rs\d{3,})[^\(\),;]{0,40})?(?:OR|odds ratio)\s*[=:]?\s*([0-9]+\.[0-9]+)\b(?:[^\)]{0,80}?P\s*[=<>]\s*([0-9\.>]+))?`)

	// Strict form: rsID before an OR/P pair inside one parenthetical group.
	assocParenRe = regexp.MustCompile(`(?i)(rs\d{3,})[^\)]{0,40}\(.*?OR\s*[=:]?\s*([0-9]+\.[0-9]+).*?P\s*[=<>]\s*([0-9\.>]+)`)
)

// AssociationExtractor finds odds-ratio / p-value statements in the corpus.
type AssociationExtractor struct{}

// NewAssociationExtractor creates a new association extractor.
func NewAssociationExtractor() *AssociationExtractor {
	return &AssociationExtractor{}
}

// Extract scans with both regex strategies and deduplicates results by rsID,
// or by a synthesized OR/P key when the statement named no rsID. The first
// occurrence wins.
func (e *AssociationExtractor) Extract(corpus string) []model.Association {
	if corpus == "" {
		return nil
	}

	var entries []model.Association
	for _, m := range assocLooseRe.FindAllStringSubmatch(corpus, -1) {
		entries = append(entries, model.Association{
			RSID: strings.ToLower(m[1]),
			OR:   m[2],
			P:    m[3],
		})
	}
	for _, m := range assocParenRe.FindAllStringSubmatch(corpus, -1) {
		entries = append(entries, model.Association{
			RSID: strings.ToLower(m[1]),
			OR:   m[2],
			P:    m[3],
		})
	}

	var unique []model.Association
	seen := make(map[string]bool)
	for _, entry := range entries {
		key := entry.RSID
		if key == "" {
			key = "OR_" + entry.OR + "_P_" + entry.P
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, entry)
	}
	return unique
}

// FallbackPValues searches, per variant, for a trailing p-value within 80
// characters of the rsID and emits p-value-only associations. Used when the
// corpus contains rsIDs but no odds-ratio statements.
func (e *AssociationExtractor) FallbackPValues(corpus string, variants []model.Variant) []model.Association {
	var assocs []model.Association
	for _, v := range variants {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(v.RSID) + `[^.]{0,80}P\s*[=<>]\s*([0-9\.>]+)`)
		if m := re.FindStringSubmatch(corpus); m != nil {
			assocs = append(assocs, model.Association{RSID: v.RSID, P: m[1]})
		}
	}
	return assocs
}

// EffectDirection classifies an odds ratio as increased risk, decreased risk
// or no change. A p-value above 0.05, after stripping any ">" prefix,
// overrides the classification to not significant. An unparsable odds ratio
// yields "".
func EffectDirection(orStr, pStr string) string {
	orv, err := strconv.ParseFloat(orStr, 64)
	if err != nil {
		return ""
	}

	significant := true
	if pStr != "" {
		if pv, err := strconv.ParseFloat(strings.ReplaceAll(pStr, ">", ""), 64); err == nil {
			significant = pv <= 0.05
		}
	}
	if !significant {
		return EffectNotSignificant
	}

	switch {
	case orv > 1:
		return EffectRiskUp
	case orv < 1:
		return EffectRiskDown
	default:
		return EffectNoChange
	}
}
