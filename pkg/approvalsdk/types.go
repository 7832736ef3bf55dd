package approvalsdk

import (
	"net/http"
	"net/url"
	"time"
)

// TokenResponse is the token endpoint's successful answer.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
}

// ExpiresAt returns now plus ExpiresIn, or nil when the server sent no lifetime.
func (t *TokenResponse) ExpiresAt(now time.Time) *time.Time {
	if t.ExpiresIn <= 0 {
		return nil
	}
	at := now.Add(time.Duration(t.ExpiresIn) * time.Second)
	return &at
}

// Request describes one call to the REST API.
type Request struct {
	// Method defaults to GET.
	Method string

	// Path is relative to the API base URL and may carry its own query string.
	Path string

	// Query is merged with any query embedded in Path.
	Query url.Values

	// Body is JSON encoded when non-nil.
	Body any

	// Headers override the defaults.
	Headers map[string]string
}

// Response is a successful API answer with its body decoded as JSON.
type Response struct {
	Status  int
	Data    any
	Headers http.Header
}

// Organization is the subset of a /companies record the probes rely on.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
