package domain

// Extraction is the outcome of one company-name extraction attempt for
// a domain. A failed extraction is still a well-formed Extraction; the
// resolution flow inspects Connectivity and FailureCategory to decide
// what it means for the task.
type Extraction struct {
	CompanyName     string
	Method          ExtractionMethod
	Confidence      int // 0..100
	Connectivity    Connectivity
	FailureCategory FailureCategory
	ErrorMessage    string
}

// Succeeded reports whether the extraction produced a usable name:
// something was extracted, the site was reachable, and the extractor
// itself did not classify the attempt as a failure.
func (e Extraction) Succeeded(minConfidence int) bool {
	return e.CompanyName != "" &&
		e.Confidence >= minConfidence &&
		e.Connectivity != ConnectivityUnreachable &&
		e.FailureCategory == FailureCategoryNone
}
