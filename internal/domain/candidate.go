package domain

import (
	"time"

	"github.com/google/uuid"
)

// Candidate is one legal entity returned by the GLEIF lookup for a
// domain's extracted company name. Partial registry payloads are
// normalized into this one shape at the client boundary; downstream
// code never re-checks field presence.
type Candidate struct {
	ID                 uuid.UUID
	TaskID             uuid.UUID
	LEI                string
	LegalName          string
	Jurisdiction       string // ISO 3166-1 alpha-2, upper case, may be ""
	EntityStatus       EntityStatus
	RegistrationStatus RegistrationStatus
	LegalForm          string
	City               string
	Country            string

	// Derived during scoring and selection.
	NameMatchScore     int
	JurisdictionScore  int
	EntityTypeScore    int
	StatusScore        int
	ValidationScore    int
	WeightedScore      int
	RankPosition       int
	IsPrimarySelection bool

	CreatedAt time.Time
}

// EffectiveScore is the score used for ranking and selection: validator
// evidence can rescue a candidate whose algorithmic score is mediocre.
func (c *Candidate) EffectiveScore() int {
	if c.ValidationScore > c.WeightedScore {
		return c.ValidationScore
	}
	return c.WeightedScore
}

// HasCompleteAddress reports whether both city and country are known.
func (c *Candidate) HasCompleteAddress() bool {
	return c.City != "" && c.Country != ""
}
