package container

import "strings"

// Profile names a deployment context controlling which adapter is bound to
// a port. Profiles are matched case-insensitively; NewProfile lowercases.
//
// The built-in set covers the usual environments. Custom profiles are
// ordinary values:
//
//	integration := container.NewProfile("integration")
type Profile string

const (
	Production  Profile = "production"
	Test        Profile = "test"
	Development Profile = "development"
	Staging     Profile = "staging"
	CI          Profile = "ci"

	// All is the wildcard profile: a declaration carrying it is eligible
	// under every active profile, but loses to an exact-profile candidate.
	All Profile = "*"
)

// NewProfile normalizes a raw string into a Profile.
func NewProfile(name string) Profile {
	return Profile(strings.ToLower(strings.TrimSpace(name)))
}

func (p Profile) String() string { return string(p) }

// IsWildcard reports whether p is the universal profile.
func (p Profile) IsWildcard() bool { return p == All }

// In builds a profile set for a Declaration.
//
//	Profiles: container.In(container.Test, container.Development)
func In(profiles ...Profile) []Profile { return profiles }
