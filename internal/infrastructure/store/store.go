package store

// TokenPair is the persisted access/refresh credential pair.
type TokenPair struct {
	Access  string
	Refresh string
}

// IsZero reports whether no credentials are stored.
func (p TokenPair) IsZero() bool {
	return p.Access == "" && p.Refresh == ""
}

// Store is the browser-profile-scoped persistent storage equivalent: it holds
// the session token pair and small UI preference values.
type Store interface {
	// Tokens returns the stored pair; a zero pair means unauthenticated.
	Tokens() (TokenPair, error)
	// SaveTokens replaces the stored pair.
	SaveTokens(pair TokenPair) error
	// ClearTokens removes both tokens.
	ClearTokens() error

	// Get returns the value for key, or "" when absent.
	Get(key string) (string, error)
	// Set stores the value for key.
	Set(key, value string) error
	// Delete removes a key. Missing keys are not an error.
	Delete(key string) error

	Close() error
}
