package domain

import "time"

// TokenSnapshot is a point-in-time copy of the OAuth session.
type TokenSnapshot struct {
	State        string
	RedirectURI  string
	AccessToken  string
	RefreshToken string
	ExpiresAt    *time.Time
	ObtainedAt   *time.Time
}

// HasAccessToken reports whether an exchange or refresh has succeeded.
func (s TokenSnapshot) HasAccessToken() bool { return s.AccessToken != "" }

// HasRefreshToken reports whether a refresh token is held.
func (s TokenSnapshot) HasRefreshToken() bool { return s.RefreshToken != "" }

// Authenticated is true only for a held token whose expiry is known and still ahead.
func (s TokenSnapshot) Authenticated(now time.Time) bool {
	return s.AccessToken != "" && s.ExpiresAt != nil && s.ExpiresAt.After(now)
}

// Expired reports whether a known expiry has passed. An unknown expiry is not expired.
func (s TokenSnapshot) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !s.ExpiresAt.After(now)
}
