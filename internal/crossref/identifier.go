// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package crossref

import (
	"regexp"
	"strings"
)

// IdentifierType classifies a user-supplied publication identifier.
type IdentifierType int

const (
	TypeUnknown IdentifierType = iota
	TypeDOI
	TypeArxiv
)

func (t IdentifierType) String() string {
	switch t {
	case TypeDOI:
		return "doi"
	case TypeArxiv:
		return "arxiv"
	default:
		return "unknown"
	}
}

// doiPattern matches DOIs: "10.1038/s41467-023-41261-2".
var doiPattern = regexp.MustCompile(`^10\.\d{4,9}/[^\s]+$`)

// arxivPattern matches arXiv IDs: "2301.07041", "arXiv:2301.07041", "2301.07041v2".
var arxivPattern = regexp.MustCompile(`^(?i:arXiv:)?(\d{4}\.\d{4,5}(?:v\d+)?)$`)

// doiPrefixes are stripped before matching, longest first.
var doiPrefixes = []string{
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"https://doi.org/",
	"http://doi.org/",
	"doi.org/",
	"doi:",
}

// ValidDOI reports whether doi looks like a bare DOI.
func ValidDOI(doi string) bool {
	return doiPattern.MatchString(strings.TrimSpace(doi))
}

// IsArxiv reports whether the identifier was assigned by arXiv. Those
// records carry no usable contributor or subject metadata in CrossRef.
func IsArxiv(doi string) bool {
	return strings.Contains(strings.ToLower(doi), "arxiv")
}

// Classify determines the identifier type and returns the normalized form.
// Resolver URLs and "doi:" prefixes are stripped so the result is a bare
// DOI. DOIs registered by arXiv classify as TypeArxiv.
func Classify(identifier string) (IdentifierType, string) {
	identifier = strings.TrimSpace(identifier)

	if m := arxivPattern.FindStringSubmatch(identifier); m != nil {
		return TypeArxiv, m[1]
	}

	bare := identifier
	lower := strings.ToLower(bare)
	for _, p := range doiPrefixes {
		if strings.HasPrefix(lower, p) {
			bare = bare[len(p):]
			break
		}
	}

	if doiPattern.MatchString(bare) {
		if IsArxiv(bare) {
			return TypeArxiv, bare
		}
		return TypeDOI, bare
	}
	return TypeUnknown, identifier
}
