// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package crossref

import "testing"

func TestValidDOI(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"10.1038/s41467-023-41261-2", true},
		{" 10.1101/2020.01.17.909838 ", true},
		{"10.12/short-registrant", false},
		{"doi:10.1038/x", false},
		{"", false},
		{"not-a-doi", false},
	}
	for _, tt := range tests {
		if got := ValidDOI(tt.in); got != tt.want {
			t.Errorf("ValidDOI(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsArxiv(t *testing.T) {
	if !IsArxiv("10.48550/arXiv.2301.07041") {
		t.Error("arXiv DOI not detected")
	}
	if IsArxiv("10.1038/s41467-023-41261-2") {
		t.Error("journal DOI detected as arXiv")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType IdentifierType
		wantNorm string
	}{
		{"bare doi", "10.1038/s41467-023-41261-2", TypeDOI, "10.1038/s41467-023-41261-2"},
		{"doi with whitespace", "  10.1101/2020.01.17.909838\n", TypeDOI, "10.1101/2020.01.17.909838"},
		{"doi prefix", "doi:10.1038/x", TypeDOI, "10.1038/x"},
		{"upper-case doi prefix", "DOI:10.1038/x", TypeDOI, "10.1038/x"},
		{"resolver url", "https://doi.org/10.1038/x", TypeDOI, "10.1038/x"},
		{"legacy resolver url", "http://dx.doi.org/10.1038/x", TypeDOI, "10.1038/x"},
		{"arxiv doi", "10.48550/arXiv.2301.07041", TypeArxiv, "10.48550/arXiv.2301.07041"},
		{"arxiv doi url", "https://doi.org/10.48550/ARXIV.2301.07041", TypeArxiv, "10.48550/ARXIV.2301.07041"},
		{"arxiv id", "2301.07041", TypeArxiv, "2301.07041"},
		{"arxiv id with prefix", "arXiv:2301.07041v2", TypeArxiv, "2301.07041v2"},
		{"short registrant", "10.12/x", TypeUnknown, "10.12/x"},
		{"landing page", "https://www.nature.com/articles/x", TypeUnknown, "https://www.nature.com/articles/x"},
		{"empty", "", TypeUnknown, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, gotNorm := Classify(tt.input)
			if gotType != tt.wantType {
				t.Errorf("Classify(%q) type = %v, want %v", tt.input, gotType, tt.wantType)
			}
			if gotNorm != tt.wantNorm {
				t.Errorf("Classify(%q) norm = %q, want %q", tt.input, gotNorm, tt.wantNorm)
			}
		})
	}
}
