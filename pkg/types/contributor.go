// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ContributorKind tags the variant of a resolved Contributor.
type ContributorKind string

const (
	KindPerson       ContributorKind = "person"
	KindOrganization ContributorKind = "organization"
)

// SchemaKey returns the schema name used when the contributor is serialized
// for the dataset repository ("Person" or "Organization").
func (k ContributorKind) SchemaKey() string {
	if k == KindPerson {
		return "Person"
	}
	return "Organization"
}

// Role is a contributor role name.
type Role string

// RoleAuthor is assigned to every person recognized in a DOI record.
const RoleAuthor Role = "dcite:Author"

// Contributor is a resolved contributor. Kind is decided once, at
// classification time; consumers branch on Kind rather than on which
// fields happen to be set.
type Contributor struct {
	Kind ContributorKind `json:"-" yaml:"-"`

	// SchemaKey mirrors Kind in serialized output.
	SchemaKey string `json:"schemaKey" yaml:"schemaKey"`

	// Identifier is the bare ORCID for persons or the ROR for organizations.
	Identifier *string `json:"identifier" yaml:"identifier"`

	// Name is "Family, Given" for persons; nil when it cannot be derived.
	Name *string `json:"name" yaml:"name"`

	Email *string `json:"email" yaml:"email"`
	URL   *string `json:"url" yaml:"url"`

	// Affiliations is nil for organizations and for persons without any.
	Affiliations []Affiliation `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`

	RoleName          []Role `json:"roleName,omitempty" yaml:"roleName,omitempty"`
	IncludeInCitation bool   `json:"includeInCitation" yaml:"includeInCitation"`
}

// NewPerson builds a person contributor with the implicit Author role.
func NewPerson(identifier, name, email, url *string, affiliations []Affiliation) Contributor {
	if len(affiliations) == 0 {
		affiliations = nil
	}
	return Contributor{
		Kind:              KindPerson,
		SchemaKey:         KindPerson.SchemaKey(),
		Identifier:        identifier,
		Name:              name,
		Email:             email,
		URL:               url,
		Affiliations:      affiliations,
		RoleName:          []Role{RoleAuthor},
		IncludeInCitation: true,
	}
}

// NewOrganization builds an organization contributor.
func NewOrganization(identifier, name, email, url *string) Contributor {
	return Contributor{
		Kind:              KindOrganization,
		SchemaKey:         KindOrganization.SchemaKey(),
		Identifier:        identifier,
		Name:              name,
		Email:             email,
		URL:               url,
		IncludeInCitation: true,
	}
}

// IsPerson reports whether the contributor is the person variant.
func (c Contributor) IsPerson() bool { return c.Kind == KindPerson }
