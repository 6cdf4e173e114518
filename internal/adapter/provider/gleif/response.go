package gleif

import (
	"strings"

	"github.com/leiscope/domain-resolver/internal/domain"
)

// DTO structures mirroring the JSON:API shape of the GLEIF
// /lei-records endpoint. Only the fields we consume are declared.

type apiResponse struct {
	Data []apiRecord `json:"data"`
}

type apiRecord struct {
	ID         string        `json:"id"`
	Attributes apiAttributes `json:"attributes"`
}

type apiAttributes struct {
	LEI          string          `json:"lei"`
	Entity       apiEntity       `json:"entity"`
	Registration apiRegistration `json:"registration"`
}

type apiEntity struct {
	LegalName    apiName    `json:"legalName"`
	LegalForm    apiForm    `json:"legalForm"`
	Jurisdiction string     `json:"jurisdiction"`
	Status       string     `json:"status"`
	LegalAddress apiAddress `json:"legalAddress"`
}

type apiName struct {
	Name string `json:"name"`
}

type apiForm struct {
	ID string `json:"id"`
}

type apiAddress struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

type apiRegistration struct {
	Status string `json:"status"`
}

// mapAPIResponse normalizes registry records into candidates. All
// jurisdiction and status variance is absorbed here so downstream code
// works with one canonical shape.
func mapAPIResponse(resp apiResponse) []domain.Candidate {
	candidates := make([]domain.Candidate, 0, len(resp.Data))
	for _, rec := range resp.Data {
		lei := rec.Attributes.LEI
		if lei == "" {
			lei = rec.ID
		}
		name := strings.TrimSpace(rec.Attributes.Entity.LegalName.Name)
		if lei == "" || name == "" {
			continue
		}
		candidates = append(candidates, domain.Candidate{
			LEI:                lei,
			LegalName:          name,
			Jurisdiction:       normalizeJurisdiction(rec.Attributes.Entity.Jurisdiction),
			EntityStatus:       normalizeEntityStatus(rec.Attributes.Entity.Status),
			RegistrationStatus: normalizeRegistrationStatus(rec.Attributes.Registration.Status),
			LegalForm:          strings.TrimSpace(rec.Attributes.Entity.LegalForm.ID),
			City:               strings.TrimSpace(rec.Attributes.Entity.LegalAddress.City),
			Country:            strings.ToUpper(strings.TrimSpace(rec.Attributes.Entity.LegalAddress.Country)),
		})
	}
	return candidates
}

// normalizeJurisdiction reduces subdivision codes like "US-DE" to the
// ISO 3166-1 alpha-2 country part.
func normalizeJurisdiction(j string) string {
	j = strings.ToUpper(strings.TrimSpace(j))
	if idx := strings.IndexByte(j, '-'); idx > 0 {
		j = j[:idx]
	}
	if len(j) != 2 {
		return ""
	}
	return j
}

func normalizeEntityStatus(s string) domain.EntityStatus {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ACTIVE":
		return domain.EntityStatusActive
	case "INACTIVE":
		return domain.EntityStatusInactive
	default:
		return domain.EntityStatusNull
	}
}

func normalizeRegistrationStatus(s string) domain.RegistrationStatus {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ISSUED":
		return domain.RegistrationStatusIssued
	case "LAPSED":
		return domain.RegistrationStatusLapsed
	case "RETIRED":
		return domain.RegistrationStatusRetired
	case "MERGED":
		return domain.RegistrationStatusMerged
	case "PENDING_VALIDATION":
		return domain.RegistrationStatusPending
	case "CANCELLED":
		return domain.RegistrationStatusCancelled
	default:
		return domain.RegistrationStatus(strings.ToUpper(strings.TrimSpace(s)))
	}
}
