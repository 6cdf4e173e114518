package scoring

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/leiscope/domain-resolver/internal/domain"
)

const (
	// invalidThreshold drops a candidate from ranking entirely.
	invalidThreshold = 15

	// genericCap is the forced ceiling for candidates found via a
	// generic search term without independent domain correlation.
	genericCap = 10

	// similarityFloor is the normalized edit-distance similarity at
	// which a domain token counts as matching a legal-name word.
	similarityFloor = 0.7
)

// Validation is the outcome of validating one candidate.
type Validation struct {
	Valid   bool
	Score   int
	Reasons []string
}

// Validator filters false-positive registry matches before scoring is
// trusted. Pure and safe for concurrent use.
type Validator struct{}

// NewValidator creates a Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate judges one candidate against the domain it is supposed to
// represent and the search term that produced it.
func (v *Validator) Validate(c domain.Candidate, domainName, searchTerm string) Validation {
	score := 50
	var reasons []string

	tokens := domainTokens(domainName)
	correlated := false

	if len(tokens) == 0 {
		reasons = append(reasons, "no extractable domain tokens, correlation neutral")
	} else if nameCorrelates(tokens, c.LegalName) {
		correlated = true
		score += 30
		reasons = append(reasons, "domain token matches legal name")
	} else {
		score -= 25
		reasons = append(reasons, "no domain correlation")
	}

	if IsGenericTerm(searchTerm) && !correlated {
		if score > genericCap {
			score = genericCap
		}
		reasons = append(reasons, "generic search term without domain correlation")
		return Validation{Valid: false, Score: clampScore(score), Reasons: reasons}
	}

	_, tld := domain.SplitDomain(domainName)

	if expected := expectedJurisdiction(tld); expected != "" && c.Jurisdiction != "" {
		if c.Jurisdiction == expected {
			score += 10
			reasons = append(reasons, "jurisdiction matches TLD")
		} else {
			score -= 15
			reasons = append(reasons, "jurisdiction mismatch for country TLD")
		}
	}

	if isCommercialDomain(tld) && isNonCommercialForm(c.LegalForm, c.LegalName) {
		score -= 20
		reasons = append(reasons, "non-commercial entity type on commercial domain")
	}

	score = clampScore(score)

	return Validation{
		Valid:   score >= invalidThreshold,
		Score:   score,
		Reasons: reasons,
	}
}

// ValidateAndRank validates every candidate, drops the invalid ones, sets
// ValidationScore on the survivors, and returns them sorted descending by
// validation score (stable). An empty survivor set returns
// domain.ErrNoValidCandidates: filtering everything out is a distinct
// outcome from the registry returning nothing.
func (v *Validator) ValidateAndRank(candidates []domain.Candidate, domainName, searchTerm string) ([]domain.Candidate, error) {
	valid := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		res := v.Validate(c, domainName, searchTerm)
		if !res.Valid {
			continue
		}
		c.ValidationScore = res.Score
		valid = append(valid, c)
	}

	if len(valid) == 0 {
		return nil, domain.ErrNoValidCandidates
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].ValidationScore > valid[j].ValidationScore
	})

	return valid, nil
}

// nameCorrelates reports whether any domain token appears verbatim in the
// legal name or is similar enough to one of its words.
func nameCorrelates(tokens []string, legalName string) bool {
	legal := domain.NormalizeName(legalName)
	words := strings.Fields(legal)

	for _, tok := range tokens {
		if strings.Contains(legal, tok) {
			return true
		}
		for _, w := range words {
			if similarity(tok, w) >= similarityFloor {
				return true
			}
		}
	}

	return false
}

// similarity is 1 - levenshtein/maxLen, in [0,1].
func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}
