package service

import (
	"sync"
	"time"

	"github.com/aussiebroadwan/amxprobe/internal/probe/domain"
	"github.com/aussiebroadwan/amxprobe/pkg/approvalsdk"
)

// TokenStore is the single process-wide OAuth session slot. Nothing is persisted.
type TokenStore struct {
	mu sync.RWMutex

	state        string
	redirectURI  string
	accessToken  string
	refreshToken string
	expiresAt    *time.Time
	obtainedAt   *time.Time
}

func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// BeginAuthorization records the state and redirect URI of a new auth request,
// replacing any previous in-flight attempt.
func (s *TokenStore) BeginAuthorization(state, redirectURI string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state
	s.redirectURI = redirectURI
}

// PendingAuthorization returns the state and redirect URI of the last auth request.
func (s *TokenStore) PendingAuthorization() (state, redirectURI string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state, s.redirectURI
}

// StoreTokens saves a token response obtained at now. A response without a
// refresh token keeps the one already held.
func (s *TokenStore) StoreTokens(tokens *approvalsdk.TokenResponse, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accessToken = tokens.AccessToken
	if tokens.RefreshToken != "" {
		s.refreshToken = tokens.RefreshToken
	}
	s.expiresAt = tokens.ExpiresAt(now)
	obtained := now
	s.obtainedAt = &obtained
}

// Snapshot returns a copy of the session.
func (s *TokenStore) Snapshot() domain.TokenSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.TokenSnapshot{
		State:        s.state,
		RedirectURI:  s.redirectURI,
		AccessToken:  s.accessToken,
		RefreshToken: s.refreshToken,
		ExpiresAt:    copyTime(s.expiresAt),
		ObtainedAt:   copyTime(s.obtainedAt),
	}
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
