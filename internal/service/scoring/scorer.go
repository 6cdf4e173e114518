package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/leiscope/domain-resolver/internal/domain"
)

// Weights are the sub-score weights of the combined candidate score.
// They must sum to 1.0; config validation enforces this.
type Weights struct {
	Name         float64
	Jurisdiction float64
	EntityType   float64
	Status       float64
}

// DefaultWeights is the canonical weighting: name match dominates, the
// registry-status bonus outranks entity-type shape.
var DefaultWeights = Weights{
	Name:         0.40,
	Jurisdiction: 0.20,
	EntityType:   0.15,
	Status:       0.25,
}

// Subscores is the outcome of scoring one candidate against one task.
type Subscores struct {
	NameMatch    int
	Jurisdiction int
	EntityType   int
	Status       int
	Weighted     int
	Reasons      []string
}

// Scorer computes deterministic candidate scores. It is stateless apart
// from its weights and safe for concurrent use.
type Scorer struct {
	weights Weights
}

// NewScorer creates a Scorer with the given weights.
func NewScorer(w Weights) *Scorer {
	return &Scorer{weights: w}
}

// Score computes all sub-scores and the weighted total for a candidate
// against the extracted company name and the task's domain.
func (s *Scorer) Score(c domain.Candidate, companyName, domainName string) Subscores {
	_, tld := domain.SplitDomain(domainName)

	out := Subscores{
		NameMatch:    nameMatchScore(c.LegalName, companyName),
		Jurisdiction: jurisdictionScore(c.Jurisdiction, tld),
		EntityType:   entityTypeScore(c, tld),
		Status:       statusScore(c),
	}

	weighted := s.weights.Name*float64(out.NameMatch) +
		s.weights.Jurisdiction*float64(out.Jurisdiction) +
		s.weights.EntityType*float64(out.EntityType) +
		s.weights.Status*float64(out.Status)

	out.Weighted = clampScore(int(math.Round(weighted)))
	out.Reasons = []string{
		fmt.Sprintf("name=%d jurisdiction=%d entity_type=%d status=%d", out.NameMatch, out.Jurisdiction, out.EntityType, out.Status),
	}

	return out
}

// Apply copies the sub-scores onto the candidate.
func (sc Subscores) Apply(c *domain.Candidate) {
	c.NameMatchScore = sc.NameMatch
	c.JurisdictionScore = sc.Jurisdiction
	c.EntityTypeScore = sc.EntityType
	c.StatusScore = sc.Status
	c.WeightedScore = sc.Weighted
}

// nameMatchScore compares the candidate's legal name with the extracted
// company name. 100 exact, 85 containment either direction, token-overlap
// ratio scaled to 80 otherwise, floor of 10 so one bad extraction never
// starves every candidate.
func nameMatchScore(legalName, companyName string) int {
	extracted := domain.NormalizeName(companyName)
	legal := domain.NormalizeName(legalName)

	if extracted == "" || legal == "" {
		return 10
	}
	if extracted == legal {
		return 100
	}
	if strings.Contains(legal, extracted) || strings.Contains(extracted, legal) {
		return 85
	}

	extractedTokens := strings.Fields(extracted)
	legalTokens := make(map[string]struct{})
	for _, tok := range strings.Fields(legal) {
		legalTokens[tok] = struct{}{}
	}

	shared := 0
	for _, tok := range extractedTokens {
		if _, ok := legalTokens[tok]; ok {
			shared++
		}
	}
	if len(extractedTokens) == 0 {
		return 10
	}

	score := int(math.Round(float64(shared) / float64(len(extractedTokens)) * 80))
	if score < 10 {
		return 10
	}
	return score
}

// jurisdictionScore rates how well the candidate's jurisdiction fits the
// domain's TLD.
func jurisdictionScore(jurisdiction, tld string) int {
	if jurisdiction == "" {
		return 25
	}

	if expected := expectedJurisdiction(tld); expected != "" {
		if jurisdiction == expected {
			return 100
		}
		return 10
	}

	if isGenericTLD(tld) {
		if jurisdiction == comHomeJurisdiction {
			return 90
		}
		if _, ok := secondaryBusinessJurisdictions[jurisdiction]; ok {
			return 70
		}
		return 30
	}

	return 25
}

// entityTypeScore rates the plausibility of the candidate's corporate
// shape for the domain: base 50, bonuses for active status, issued
// registration, a commercial legal form, and complete address data;
// a penalty for foundation/trust forms on commercial domains.
func entityTypeScore(c domain.Candidate, tld string) int {
	score := 50

	active := c.EntityStatus == domain.EntityStatusActive
	if active {
		score += 25
	}

	switch c.RegistrationStatus {
	case domain.RegistrationStatusIssued:
		score += 15
	case domain.RegistrationStatusLapsed:
		// Lapsed registration of a still-active entity is common enough
		// that it earns a reduced bonus, not a penalty.
		if active {
			score += 5
		}
	}

	if isCommercialDomain(tld) {
		if isNonCommercialForm(c.LegalForm, c.LegalName) {
			score -= 10
		} else if domain.HasCorporateSuffix(c.LegalName) {
			score += 15
		}
	}

	if c.HasCompleteAddress() {
		score += 10
	}

	return clampScore(score)
}

// statusScore is the registry-status bonus: a recognized corporate suffix
// on an active entity scores full marks, graduating down to 25 for
// inactive or unrecognized entities.
func statusScore(c domain.Candidate) int {
	suffix := domain.HasCorporateSuffix(c.LegalName)
	active := c.EntityStatus == domain.EntityStatusActive

	switch {
	case suffix && active:
		return 100
	case active:
		return 70
	case suffix:
		return 50
	default:
		return 25
	}
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
