package scoring

import (
	"github.com/leiscope/domain-resolver/internal/domain"
)

// tldJurisdictions maps country-coded TLDs to their expected ISO 3166-1
// alpha-2 jurisdiction. Two-part suffixes appear as produced by
// domain.SplitDomain.
var tldJurisdictions = map[string]string{
	"de": "DE", "fr": "FR", "it": "IT", "es": "ES", "nl": "NL",
	"be": "BE", "ch": "CH", "at": "AT", "se": "SE", "no": "NO",
	"dk": "DK", "fi": "FI", "pl": "PL", "pt": "PT", "ie": "IE",
	"us": "US", "ca": "CA", "mx": "MX", "br": "BR", "ar": "AR",
	"jp": "JP", "cn": "CN", "kr": "KR", "in": "IN", "sg": "SG",
	"hk": "HK", "ru": "RU", "za": "ZA", "nz": "NZ", "tr": "TR",

	"uk": "GB", "co.uk": "GB", "ac.uk": "GB", "gov.uk": "GB",
	"com.au": "AU", "net.au": "AU", "au": "AU",
	"co.jp": "JP", "co.in": "IN", "co.nz": "NZ", "co.za": "ZA",
	"com.br": "BR", "com.mx": "MX", "com.sg": "SG", "com.hk": "HK",
}

// genericTLDs carry no jurisdiction signal; they map to the global set
// and always pass the geographic check.
var genericTLDs = map[string]struct{}{
	"com": {}, "net": {}, "org": {}, "io": {}, "co": {}, "info": {},
	"biz": {}, "app": {}, "dev": {}, "ai": {}, "tech": {}, "cloud": {},
	"online": {}, "site": {}, "xyz": {}, "eu": {},
}

// comHomeJurisdiction is the "home" country of the dominant generic
// commercial TLDs for scoring purposes.
const comHomeJurisdiction = "US"

// secondaryBusinessJurisdictions are jurisdictions commonly used for
// incorporation regardless of where a business operates.
var secondaryBusinessJurisdictions = map[string]struct{}{
	"US": {}, "GB": {}, "DE": {}, "CH": {}, "NL": {}, "LU": {},
	"IE": {}, "SG": {}, "HK": {}, "KY": {}, "JE": {}, "BM": {},
}

// nonCommercialTLDs mark domains that do not look commercial; the
// entity-type checks relax for them.
var nonCommercialTLDs = map[string]struct{}{
	"org": {}, "edu": {}, "gov": {}, "ngo": {}, "ac.uk": {}, "gov.uk": {},
}

// isGenericTLD reports whether the TLD maps to the global jurisdiction set.
func isGenericTLD(tld string) bool {
	_, ok := genericTLDs[tld]
	return ok
}

// expectedJurisdiction returns the jurisdiction a country-coded TLD implies,
// or "" when the TLD is generic or unmapped.
func expectedJurisdiction(tld string) string {
	return tldJurisdictions[tld]
}

// isCommercialDomain reports whether the domain's TLD suggests a
// commercial operation.
func isCommercialDomain(tld string) bool {
	_, nc := nonCommercialTLDs[tld]
	return !nc
}

// JurisdictionHint returns the jurisdiction a domain's country-coded
// TLD implies, or "" when the TLD carries no jurisdiction signal.
// Used to narrow registry searches, never to exclude candidates.
func JurisdictionHint(domainName string) string {
	_, tld := domain.SplitDomain(domainName)
	if isGenericTLD(tld) {
		return ""
	}
	return expectedJurisdiction(tld)
}
