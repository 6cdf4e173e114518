package extract

import (
	"strings"

	"github.com/leiscope/domain-resolver/internal/domain"
)

type apiRequest struct {
	Domain string `json:"domain"`
}

type apiResponse struct {
	CompanyName     string `json:"company_name"`
	Method          string `json:"method"`
	Confidence      int    `json:"confidence"`
	Connectivity    string `json:"connectivity"`
	FailureCategory string `json:"failure_category"`
	Error           string `json:"error"`
}

// mapAPIResponse normalizes the extractor payload. Unknown connectivity
// and category values collapse to safe defaults so a misbehaving
// extractor cannot inject states the task machine does not know.
func mapAPIResponse(resp apiResponse) domain.Extraction {
	e := domain.Extraction{
		CompanyName:  strings.TrimSpace(resp.CompanyName),
		Method:       domain.ExtractionMethod(strings.ToLower(strings.TrimSpace(resp.Method))),
		Confidence:   clampConfidence(resp.Confidence),
		ErrorMessage: strings.TrimSpace(resp.Error),
	}

	e.Connectivity = domain.Connectivity(strings.ToUpper(strings.TrimSpace(resp.Connectivity)))
	if !e.Connectivity.IsValid() {
		e.Connectivity = domain.ConnectivityUnknown
	}

	e.FailureCategory = domain.FailureCategory(strings.ToUpper(strings.TrimSpace(resp.FailureCategory)))
	if resp.FailureCategory == "" && e.CompanyName != "" {
		e.FailureCategory = domain.FailureCategoryNone
	}
	if !e.FailureCategory.IsValid() {
		e.FailureCategory = domain.FailureCategoryNoName
	}

	return e
}

func clampConfidence(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
