package domain

import "time"

// CallbackRecord captures one hit on the OAuth redirect endpoint.
type CallbackRecord struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	URL       string            `json:"url"`
	Params    map[string]string `json:"params"`
	Success   bool              `json:"success"` // code present
	Error     string            `json:"error,omitempty"`

	TokenExchange *ExchangeSummary `json:"tokenExchange,omitempty"`
	APITest       *APITestSummary  `json:"apiTest,omitempty"`
}

// ExchangeSummary describes the code-for-token exchange without exposing secrets.
type ExchangeSummary struct {
	Success            bool       `json:"success"`
	Error              string     `json:"error,omitempty"`
	StatusCode         int        `json:"statusCode,omitempty"`
	TokenType          string     `json:"tokenType,omitempty"`
	Scope              string     `json:"scope,omitempty"`
	ExpiresIn          int64      `json:"expiresIn,omitempty"`
	ExpiresAt          *time.Time `json:"expiresAt,omitempty"`
	AccessTokenPreview string     `json:"accessTokenPreview,omitempty"`
	HasRefreshToken    bool       `json:"hasRefreshToken"`
}

// APITestSummary is the smoke-test call made right after a successful exchange.
type APITestSummary struct {
	Endpoint string `json:"endpoint"`
	Success  bool   `json:"success"`
	Count    int    `json:"count"`
	Error    string `json:"error,omitempty"`
}
