package domain

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// NormalizeName prepares a company or entity name for comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses multiple spaces into one
//   - drops trailing punctuation
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = strings.ToLower(name)
	name = strings.TrimRight(name, ".,;!?")

	var b strings.Builder
	b.Grow(len(name))
	prevSpace := false
	for _, r := range name {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeDomain lowercases a domain and strips surrounding whitespace,
// a trailing dot, and any scheme or path the caller left attached.
func NormalizeDomain(domain string) string {
	domain = strings.TrimSpace(strings.ToLower(domain))
	if i := strings.Index(domain, "://"); i >= 0 {
		domain = domain[i+3:]
	}
	if i := strings.IndexAny(domain, "/?#"); i >= 0 {
		domain = domain[:i]
	}
	domain = strings.TrimPrefix(domain, "www.")
	return strings.TrimSuffix(domain, ".")
}

// DomainHash returns the md5 hex digest of the normalized domain.
// It is the persistent identity of a domain across batches.
func DomainHash(domain string) string {
	sum := md5.Sum([]byte(NormalizeDomain(domain)))
	return hex.EncodeToString(sum[:])
}

// SplitDomain separates the registrable root label from the TLD chain.
// "acme-corp.co.uk" → ("acme-corp", "co.uk"); a bare label comes back
// with an empty TLD.
func SplitDomain(domain string) (root, tld string) {
	domain = NormalizeDomain(domain)
	parts := strings.Split(domain, ".")
	if len(parts) < 2 {
		return domain, ""
	}
	// Treat two-part suffixes like co.uk / com.au as a single TLD.
	if len(parts) >= 3 {
		second := parts[len(parts)-2]
		switch second {
		case "co", "com", "org", "net", "ac", "gov", "edu":
			return parts[len(parts)-3], second + "." + parts[len(parts)-1]
		}
	}
	return parts[len(parts)-2], parts[len(parts)-1]
}

// corporateSuffixes are tokens that mark a name as a registered legal
// entity rather than a brand or a slogan.
var corporateSuffixes = []string{
	"inc", "corp", "llc", "ltd", "gmbh", "ag", "sa", "sas",
	"spa", "bv", "nv", "pty", "plc", "se", "limited",
	"corporation", "company", "incorporated",
}

// HasCorporateSuffix reports whether the name ends with a recognized
// corporate-suffix token. Used as a quality gate on cached results and
// as a status bonus during scoring.
func HasCorporateSuffix(name string) bool {
	n := NormalizeName(name)
	for _, suffix := range corporateSuffixes {
		if n == suffix {
			continue // a bare suffix is not a company name
		}
		if strings.HasSuffix(n, " "+suffix) || strings.HasSuffix(n, " "+suffix+".") {
			return true
		}
	}
	return false
}
