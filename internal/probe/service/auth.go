package service

import (
	"context"
	"net/url"
	"time"

	"github.com/aussiebroadwan/amxprobe/internal/probe/domain"
	"github.com/aussiebroadwan/amxprobe/pkg/approvalsdk"
	"github.com/aussiebroadwan/amxprobe/pkg/cryptox"
	"github.com/aussiebroadwan/amxprobe/pkg/idx"
	"github.com/aussiebroadwan/amxprobe/pkg/jwtx"
	"github.com/aussiebroadwan/amxprobe/pkg/slogx"
)

// SmokeTestEndpoint is called right after a successful exchange.
const SmokeTestEndpoint = "/companies"

// AuthService drives the authorization-code flow against the provider.
type AuthService struct {
	Client  *approvalsdk.SDKClient
	Tokens  *TokenStore
	History *CallbackHistory
	Journal *JournalService

	// API is used for the post-exchange smoke test. Nil disables it.
	API Requester

	// StrictState rejects callbacks whose state differs from the one issued.
	StrictState bool
	SmokeTest   bool
}

// StartResult is the outcome of beginning an authorization.
type StartResult struct {
	AuthURL     string
	State       string
	RedirectURI string
}

// Start builds the consent URL with a fresh state, replacing any previous
// in-flight attempt. The configured redirect URI wins over fallbackRedirectURI,
// which is normally derived from the request origin.
func (s *AuthService) Start(ctx context.Context, fallbackRedirectURI string) (StartResult, error) {
	state, err := approvalsdk.GenerateState()
	if err != nil {
		return StartResult{}, err
	}

	redirectURI := s.Client.RedirectURI()
	if redirectURI == "" {
		redirectURI = fallbackRedirectURI
	}

	s.Tokens.BeginAuthorization(state, redirectURI)
	authURL := s.Client.BuildAuthorizeURL(state, redirectURI)

	s.Journal.Record(ctx, domain.JournalEntry{
		Kind:     domain.JournalAuthStart,
		Endpoint: redirectURI,
		Success:  true,
	})
	slogx.FromContext(ctx).Info("authorization started", "redirect_uri", redirectURI)

	return StartResult{AuthURL: authURL, State: state, RedirectURI: redirectURI}, nil
}

// CallbackRequest is what the redirect endpoint received.
type CallbackRequest struct {
	// URL is the request URI as received, used for display only.
	URL   string
	Query url.Values

	// FallbackRedirectURI is the origin-derived callback URL, used when neither
	// a pending authorization nor configuration names one.
	FallbackRedirectURI string
}

// HandleCallback processes the provider redirect: it rejects provider errors
// and missing codes, exchanges the code, stores the tokens and optionally runs
// a smoke test. Every outcome is added to History. The returned record is
// always populated, even alongside an error.
func (s *AuthService) HandleCallback(ctx context.Context, req CallbackRequest) (domain.CallbackRecord, error) {
	log := slogx.FromContext(ctx)
	now := time.Now()

	rec := domain.CallbackRecord{
		ID:        idx.NewAt(now).String(),
		Timestamp: now.UTC(),
		URL:       req.URL,
		Params:    flattenQuery(req.Query),
	}

	err := s.handleCallback(ctx, req, &rec)
	if err != nil {
		rec.Error = err.Error()
		log.Warn("callback failed", "error", err)
	}

	s.History.Add(rec)
	s.Journal.Record(ctx, domain.JournalEntry{
		Kind:     domain.JournalCallback,
		Endpoint: req.URL,
		Success:  err == nil,
		Detail:   rec.Error,
	})

	return rec, err
}

func (s *AuthService) handleCallback(ctx context.Context, req CallbackRequest, rec *domain.CallbackRecord) error {
	log := slogx.FromContext(ctx)

	code, state, err := approvalsdk.ParseAuthorizationCallback(req.Query)
	rec.Success = code != ""
	if err != nil {
		return err
	}

	pendingState, pendingRedirect := s.Tokens.PendingAuthorization()
	if s.StrictState && (pendingState == "" || state != pendingState) {
		return &approvalsdk.StateMismatchError{Expected: pendingState, Got: state}
	}
	if pendingState != "" && state != pendingState {
		log.Warn("callback state does not match the last issued state")
	}

	redirectURI := firstNonEmpty(pendingRedirect, s.Client.RedirectURI(), req.FallbackRedirectURI)

	started := time.Now()
	tokens, err := s.Client.ExchangeAuthorizationCode(ctx, code, redirectURI)
	s.recordExchange(ctx, tokens, err, time.Since(started))
	if err != nil {
		rec.TokenExchange = &domain.ExchangeSummary{
			Success:    false,
			Error:      err.Error(),
			StatusCode: approvalsdk.StatusCode(err),
		}
		return err
	}

	obtained := time.Now()
	s.Tokens.StoreTokens(tokens, obtained)
	rec.TokenExchange = &domain.ExchangeSummary{
		Success:            true,
		TokenType:          tokens.TokenType,
		Scope:              tokens.Scope,
		ExpiresIn:          tokens.ExpiresIn,
		ExpiresAt:          tokens.ExpiresAt(obtained),
		AccessTokenPreview: cryptox.MaskToken(tokens.AccessToken),
		HasRefreshToken:    tokens.RefreshToken != "",
	}

	log.Info("tokens obtained",
		"access_token", slogx.Secret(tokens.AccessToken),
		"expires_in", tokens.ExpiresIn,
		"has_refresh_token", tokens.RefreshToken != "",
	)

	if s.SmokeTest && s.API != nil {
		rec.APITest = s.smokeTest(ctx, cryptox.FingerprintToken(tokens.AccessToken))
	}

	return nil
}

func (s *AuthService) recordExchange(
	ctx context.Context,
	tokens *approvalsdk.TokenResponse,
	err error,
	took time.Duration,
) {
	entry := domain.JournalEntry{
		Kind:       domain.JournalTokenExchange,
		Success:    err == nil,
		StatusCode: approvalsdk.StatusCode(err),
		DurationMS: took.Milliseconds(),
	}
	if err != nil {
		entry.Detail = err.Error()
	} else {
		entry.TokenFingerprint = cryptox.FingerprintToken(tokens.AccessToken)
	}
	s.Journal.Record(ctx, entry)
}

func (s *AuthService) smokeTest(ctx context.Context, fingerprint string) *domain.APITestSummary {
	started := time.Now()
	resp, err := s.API.Request(ctx, approvalsdk.Request{Path: SmokeTestEndpoint})

	summary := &domain.APITestSummary{Endpoint: SmokeTestEndpoint, Success: err == nil}
	entry := domain.JournalEntry{
		Kind:             domain.JournalSmokeTest,
		Endpoint:         SmokeTestEndpoint,
		Success:          err == nil,
		TokenFingerprint: fingerprint,
		DurationMS:       time.Since(started).Milliseconds(),
	}

	if err != nil {
		summary.Error = err.Error()
		entry.StatusCode = approvalsdk.StatusCode(err)
		entry.Detail = err.Error()
	} else {
		summary.Count = approvalsdk.Count(resp.Data)
		entry.StatusCode = resp.Status
	}

	s.Journal.Record(ctx, entry)
	return summary
}

// InspectAccessToken decodes the held access token's claims without verifying
// them. Reference tokens yield jwtx.ErrOpaqueToken.
func (s *AuthService) InspectAccessToken() (jwtx.Inspection, error) {
	snap := s.Tokens.Snapshot()
	if !snap.HasAccessToken() {
		return jwtx.Inspection{}, approvalsdk.ErrNotAuthenticated
	}
	return jwtx.Inspect(snap.AccessToken)
}

func flattenQuery(q url.Values) map[string]string {
	out := make(map[string]string, len(q))
	for key, values := range q {
		if len(values) > 0 {
			out[key] = values[0]
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
