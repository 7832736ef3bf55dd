package http

import (
	"time"

	"github.com/aussiebroadwan/amxprobe/internal/probe/domain"
	"github.com/aussiebroadwan/amxprobe/pkg/jwtx"
)

// ErrorResponse is the uniform failure body.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type AuthStartResponse struct {
	AuthURL string `json:"authUrl"`
}

// AuthStatusResponse reports the held token. ExpiresAt is null before the first exchange.
type AuthStatusResponse struct {
	Authenticated   bool       `json:"authenticated"`
	ExpiresAt       *time.Time `json:"expiresAt"`
	HasRefreshToken bool       `json:"hasRefreshToken"`
}

// AuthRefreshResponse reports a forced refresh. Token values are never returned.
type AuthRefreshResponse struct {
	Success            bool       `json:"success"`
	ExpiresAt          *time.Time `json:"expiresAt"`
	HasRefreshToken    bool       `json:"hasRefreshToken"`
	AccessTokenPreview string     `json:"accessTokenPreview"`
}

type TokenStatus struct {
	HasAccessToken  bool       `json:"hasAccessToken"`
	HasRefreshToken bool       `json:"hasRefreshToken"`
	ExpiresAt       *time.Time `json:"expiresAt"`
	ObtainedAt      *time.Time `json:"obtainedAt,omitempty"`
	IsExpired       *bool      `json:"isExpired"` // null when no expiry is known
}

type ConfigView struct {
	ClientID           string   `json:"clientId"`
	RedirectURI        string   `json:"redirectUri"`
	AuthURL            string   `json:"authUrl"`
	TokenURL           string   `json:"tokenUrl"`
	APIBaseURL         string   `json:"apiBaseUrl"`
	Scopes             []string `json:"scopes"`
	AutoRefresh        bool     `json:"autoRefresh"`
	StrictState        bool     `json:"strictState"`
	CallbackSmokeTest  bool     `json:"callbackSmokeTest"`
	ProbeConcurrency   int      `json:"probeConcurrency"`
	ProbeRatePerSecond float64  `json:"probeRatePerSecond"`
}

type DebugInfoResponse struct {
	Timestamp     time.Time      `json:"timestamp"`
	Config        ConfigView     `json:"config"`
	TokenStatus   TokenStatus    `json:"tokenStatus"`
	RecentJournal []JournalEntry `json:"recentJournal"`
}

// TokenInspectionResponse carries unverified access token claims.
type TokenInspectionResponse struct {
	Success bool             `json:"success"`
	Opaque  bool             `json:"opaque"`
	Expired bool             `json:"expired"`
	Token   *jwtx.Inspection `json:"token,omitempty"`
	Error   string           `json:"error,omitempty"`
}

type JournalEntry struct {
	ID               string    `json:"id"`
	Kind             string    `json:"kind"`
	Endpoint         string    `json:"endpoint,omitempty"`
	Success          bool      `json:"success"`
	StatusCode       int       `json:"statusCode,omitempty"`
	Detail           string    `json:"detail,omitempty"`
	TokenFingerprint string    `json:"tokenFingerprint,omitempty"`
	DurationMS       int64     `json:"durationMs"`
	CreatedAt        time.Time `json:"createdAt"`
}

type JournalResponse struct {
	Entries []JournalEntry `json:"entries"`
}

type StatusResponse struct {
	Status        string          `json:"status"`
	Timestamp     time.Time       `json:"timestamp"`
	Authenticated bool            `json:"authenticated"`
	CallbackCount int             `json:"callbackCount"`
	Callbacks     []CallbackEntry `json:"callbacks"`
}

type HealthStatusResponse struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Authenticated bool      `json:"authenticated"`
}

type ClearResponse struct {
	Success bool `json:"success"`
}

// CallbackEntry is a callback record as reported over the API.
type CallbackEntry struct {
	ID            string                  `json:"id"`
	Timestamp     time.Time               `json:"timestamp"`
	URL           string                  `json:"url"`
	Params        map[string]string       `json:"params"`
	Success       bool                    `json:"success"`
	Error         string                  `json:"error,omitempty"`
	TokenExchange *domain.ExchangeSummary `json:"tokenExchange,omitempty"`
	APITest       *domain.APITestSummary  `json:"apiTest,omitempty"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}

func toJournalEntries(entries []domain.JournalEntry) []JournalEntry {
	out := make([]JournalEntry, len(entries))
	for i, e := range entries {
		out[i] = JournalEntry{
			ID:               e.ID,
			Kind:             string(e.Kind),
			Endpoint:         e.Endpoint,
			Success:          e.Success,
			StatusCode:       e.StatusCode,
			Detail:           e.Detail,
			TokenFingerprint: e.TokenFingerprint,
			DurationMS:       e.DurationMS,
			CreatedAt:        e.CreatedAt,
		}
	}
	return out
}

func toCallbackEntries(records []domain.CallbackRecord) []CallbackEntry {
	out := make([]CallbackEntry, len(records))
	for i, rec := range records {
		out[i] = CallbackEntry{
			ID:            rec.ID,
			Timestamp:     rec.Timestamp,
			URL:           rec.URL,
			Params:        rec.Params,
			Success:       rec.Success,
			Error:         rec.Error,
			TokenExchange: rec.TokenExchange,
			APITest:       rec.APITest,
		}
	}
	return out
}

func tokenStatus(snap domain.TokenSnapshot, now time.Time) TokenStatus {
	status := TokenStatus{
		HasAccessToken:  snap.HasAccessToken(),
		HasRefreshToken: snap.HasRefreshToken(),
		ExpiresAt:       snap.ExpiresAt,
		ObtainedAt:      snap.ObtainedAt,
	}
	if snap.ExpiresAt != nil {
		expired := snap.Expired(now)
		status.IsExpired = &expired
	}
	return status
}
