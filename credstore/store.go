package credstore

import "github.com/agentdesk/agentdesk-go/users"

// Store persists the bearer credential and the opportunistically cached
// profile. The token is an opaque string; the store never inspects it.
//
// Clear removes both entries together: a reader following a Clear never
// observes one present without the other.
type Store interface {
	// SaveToken persists the bearer credential.
	SaveToken(token string) error

	// Token returns the stored credential, or false when none is held.
	Token() (string, bool)

	// HasToken reports whether a credential is currently stored.
	HasToken() bool

	// SaveProfile caches the profile for fast paint on the next start.
	SaveProfile(profile *users.Profile) error

	// Profile returns the cached profile, or false when none is cached.
	// The cached copy is a hint only, it must be re-validated before trust.
	Profile() (*users.Profile, bool)

	// Clear removes the credential and the cached profile.
	Clear() error
}
