package service

import (
	"context"
	"sync"
	"time"

	"github.com/aussiebroadwan/amxprobe/internal/probe/domain"
	"github.com/aussiebroadwan/amxprobe/pkg/approvalsdk"
	"github.com/aussiebroadwan/amxprobe/pkg/cryptox"
	"github.com/aussiebroadwan/amxprobe/pkg/slogx"
)

// Requester performs authenticated calls against the approvals API.
type Requester interface {
	Request(ctx context.Context, req approvalsdk.Request) (*approvalsdk.Response, error)
}

// APIClient sends API calls with the token held in Tokens.
//
// With AutoRefresh set, an expired access token is refreshed once before the
// call when a refresh token is held. Otherwise the stored token is sent as-is
// and the provider decides.
type APIClient struct {
	Client      *approvalsdk.SDKClient
	Tokens      *TokenStore
	Journal     *JournalService
	AutoRefresh bool

	refreshMu sync.Mutex
}

var _ Requester = (*APIClient)(nil)

// Request performs req. It fails with approvalsdk.ErrNotAuthenticated before
// any network call when no token is held.
func (c *APIClient) Request(ctx context.Context, req approvalsdk.Request) (*approvalsdk.Response, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	return c.Client.Do(ctx, token, req)
}

// Refresh forces a refresh_token grant and stores the result.
func (c *APIClient) Refresh(ctx context.Context) (*approvalsdk.TokenResponse, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	return c.refreshLocked(ctx, c.Tokens.Snapshot())
}

func (c *APIClient) accessToken(ctx context.Context) (string, error) {
	snap := c.Tokens.Snapshot()
	if !snap.HasAccessToken() {
		return "", approvalsdk.ErrNotAuthenticated
	}
	if !c.AutoRefresh || !snap.HasRefreshToken() || !snap.Expired(time.Now()) {
		return snap.AccessToken, nil
	}

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// Another request may have refreshed while we waited.
	snap = c.Tokens.Snapshot()
	if !snap.Expired(time.Now()) {
		return snap.AccessToken, nil
	}

	tokens, err := c.refreshLocked(ctx, snap)
	if err != nil {
		return "", err
	}
	return tokens.AccessToken, nil
}

func (c *APIClient) refreshLocked(ctx context.Context, snap domain.TokenSnapshot) (*approvalsdk.TokenResponse, error) {
	log := slogx.FromContext(ctx)
	started := time.Now()

	tokens, err := c.Client.RefreshGrant(ctx, snap.RefreshToken)

	entry := domain.JournalEntry{
		Kind:             domain.JournalTokenRefresh,
		Success:          err == nil,
		StatusCode:       approvalsdk.StatusCode(err),
		TokenFingerprint: cryptox.FingerprintToken(snap.AccessToken),
		DurationMS:       time.Since(started).Milliseconds(),
	}

	if err != nil {
		entry.Detail = err.Error()
		c.Journal.Record(ctx, entry)
		log.Warn("token refresh failed", "error", err)
		return nil, err
	}

	c.Tokens.StoreTokens(tokens, time.Now())
	entry.TokenFingerprint = cryptox.FingerprintToken(tokens.AccessToken)
	c.Journal.Record(ctx, entry)

	log.Info("access token refreshed",
		"access_token", slogx.Secret(tokens.AccessToken),
		"expires_in", tokens.ExpiresIn,
	)
	return tokens, nil
}
