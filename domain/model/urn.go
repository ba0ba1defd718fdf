package model

import "strings"

type URNKind int

const (
	URNPerson URNKind = iota + 1
	URNOrganization
)

const (
	personURNPrefix       = "urn:li:person:"
	organizationURNPrefix = "urn:li:organization:"
)

// URN identifies a LinkedIn post author.
type URN struct {
	Kind URNKind
	ID   string
}

func PersonURN(id string) URN { return URN{Kind: URNPerson, ID: id} }

func OrganizationURN(id string) URN { return URN{Kind: URNOrganization, ID: id} }

// String returns the wire form used by the LinkedIn REST API.
func (u URN) String() string {
	switch u.Kind {
	case URNPerson:
		return personURNPrefix + u.ID
	case URNOrganization:
		return organizationURNPrefix + u.ID
	}
	return ""
}

// Target returns the audience name stored alongside per-item results.
func (u URN) Target() string {
	if u.Kind == URNOrganization {
		return TargetOrganization
	}
	return TargetPersonal
}

func (u URN) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

// OrganizationIDFromURN strips the organization URN prefix. Values without the
// prefix are returned unchanged.
func OrganizationIDFromURN(s string) string {
	return strings.TrimPrefix(s, organizationURNPrefix)
}
