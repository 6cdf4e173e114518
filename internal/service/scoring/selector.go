package scoring

import (
	"sort"

	"github.com/leiscope/domain-resolver/internal/domain"
)

const (
	// ambiguityGap flags manual review when the top two effective
	// scores are closer than this.
	ambiguityGap = 15

	// lowConfidenceTop flags manual review when even the best
	// candidate scores below this.
	lowConfidenceTop = 30
)

// Selection is the outcome of ranking scored candidates: a primary
// selection, the remaining alternatives, and an ambiguity flag.
type Selection struct {
	Primary              domain.Candidate
	Alternatives         []domain.Candidate
	Ranked               []domain.Candidate
	ManualReviewRequired bool
}

// Selector picks the primary candidate from a validated, scored set.
// Pure and safe for concurrent use.
type Selector struct{}

// NewSelector creates a Selector.
func NewSelector() *Selector {
	return &Selector{}
}

// Select sorts candidates by effective score (stable, descending),
// assigns dense rank positions starting at 1, marks rank 1 primary, and
// decides whether the selection needs manual review. An empty input
// returns domain.ErrNoValidCandidates, never a silent nil selection.
func (s *Selector) Select(candidates []domain.Candidate) (Selection, error) {
	if len(candidates) == 0 {
		return Selection{}, domain.ErrNoValidCandidates
	}

	ranked := make([]domain.Candidate, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].EffectiveScore() > ranked[j].EffectiveScore()
	})

	for i := range ranked {
		ranked[i].RankPosition = i + 1
		ranked[i].IsPrimarySelection = i == 0
	}

	review := ranked[0].EffectiveScore() < lowConfidenceTop
	if len(ranked) >= 2 && ranked[0].EffectiveScore()-ranked[1].EffectiveScore() < ambiguityGap {
		review = true
	}

	return Selection{
		Primary:              ranked[0],
		Alternatives:         ranked[1:],
		Ranked:               ranked,
		ManualReviewRequired: review,
	}, nil
}
