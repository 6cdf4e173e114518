// Package scoring ranks and filters legal-entity candidates for a domain.
// Everything in this package is pure: no I/O, no clock, no randomness.
package scoring

import (
	"strings"

	"github.com/leiscope/domain-resolver/internal/domain"
)

// genericTerms are search terms with no discriminating power on their own.
// A candidate found via a generic term needs independent domain correlation
// or it is rejected outright.
var genericTerms = map[string]struct{}{
	"corporate":     {},
	"company":       {},
	"group":         {},
	"holding":       {},
	"holdings":      {},
	"enterprises":   {},
	"international": {},
	"global":        {},
	"solutions":     {},
	"services":      {},
	"industries":    {},
	"partners":      {},
	"ventures":      {},
	"capital":       {},

	// legal-form abbreviations
	"inc":          {},
	"corp":         {},
	"llc":          {},
	"ltd":          {},
	"gmbh":         {},
	"ag":           {},
	"sa":           {},
	"plc":          {},
	"bv":           {},
	"nv":           {},
	"pty":          {},
	"se":           {},
	"limited":      {},
	"corporation":  {},
	"incorporated": {},
}

// IsGenericTerm reports whether the normalized search term is on the
// closed generic-term list.
func IsGenericTerm(term string) bool {
	_, ok := genericTerms[domain.NormalizeName(term)]
	return ok
}

// connectorTokens are filler words stripped from a domain's root label
// before correlation matching.
var connectorTokens = map[string]struct{}{
	"the": {}, "and": {}, "of": {}, "for": {}, "my": {}, "get": {},
	"go": {}, "on": {}, "app": {}, "web": {}, "online": {}, "official": {},
	"www": {},
}

// domainTokens extracts the comparable tokens of a domain: the root label
// split on separators, minus connector words and fragments too short to
// carry meaning. An empty result means correlation cannot be judged.
func domainTokens(d string) []string {
	root, _ := domain.SplitDomain(d)
	if root == "" {
		return nil
	}

	raw := strings.FieldsFunc(root, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})

	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if len(tok) < 3 {
			continue
		}
		if _, skip := connectorTokens[tok]; skip {
			continue
		}
		tokens = append(tokens, tok)
	}

	return tokens
}

// nonCommercialForms are legal-form keywords marking entities that are an
// implausible match for a commercial domain.
var nonCommercialForms = []string{
	"fund", "trust", "foundation", "nonprofit", "non-profit",
	"charity", "government", "ministry", "municipality", "agency",
}

// isNonCommercialForm reports whether a legal form or name carries a
// fund/trust/nonprofit/government marker.
func isNonCommercialForm(legalForm, legalName string) bool {
	haystack := domain.NormalizeName(legalForm) + " " + domain.NormalizeName(legalName)
	for _, kw := range nonCommercialForms {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
