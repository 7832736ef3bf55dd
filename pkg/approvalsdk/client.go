package approvalsdk

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Production endpoints of the approvals provider.
const (
	DefaultAuthURL    = "https://identity.approvalmax.com/connect/authorize"
	DefaultTokenURL   = "https://identity.approvalmax.com/connect/token"
	DefaultAPIBaseURL = "https://public-api.approvalmax.com/api/v1"
)

// DefaultScopes requests read/write API access plus a refresh token.
var DefaultScopes = []string{
	"https://www.approvalmax.com/scopes/public_api/read",
	"https://www.approvalmax.com/scopes/public_api/write",
	"offline_access",
}

// DefaultTimeout bounds every outbound call when no HTTP client is supplied.
const DefaultTimeout = 20 * time.Second

// Config describes the registered OAuth client and the provider endpoints.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string // optional: may be supplied per request instead
	AuthURL      string
	TokenURL     string
	APIBaseURL   string
	Scopes       []string

	// HTTPClient is used for token and API calls. Defaults to a client with DefaultTimeout.
	HTTPClient *http.Client
}

// SDKClient talks to the provider's identity server and REST API.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	clientID string
	oauth    *oauth2.Config
}

// NewSDKClient builds a client. Empty endpoint fields fall back to the
// production defaults.
func NewSDKClient(cfg Config) *SDKClient {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	return &SDKClient{
		BaseURL:    strings.TrimSuffix(orDefault(cfg.APIBaseURL, DefaultAPIBaseURL), "/"),
		HTTPClient: httpClient,
		clientID:   cfg.ClientID,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       append([]string(nil), cfg.Scopes...),
			Endpoint: oauth2.Endpoint{
				AuthURL:  orDefault(cfg.AuthURL, DefaultAuthURL),
				TokenURL: orDefault(cfg.TokenURL, DefaultTokenURL),
				// The identity server expects client_id/client_secret in the form body.
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}
}

// ClientID returns the OAuth client identifier.
func (c *SDKClient) ClientID() string { return c.clientID }

// RedirectURI returns the configured redirect URI, which may be empty.
func (c *SDKClient) RedirectURI() string { return c.oauth.RedirectURL }

// Scopes returns a copy of the requested scopes.
func (c *SDKClient) Scopes() []string { return append([]string(nil), c.oauth.Scopes...) }

// Endpoints returns the authorize and token URLs in use.
func (c *SDKClient) Endpoints() (authURL, tokenURL string) {
	return c.oauth.Endpoint.AuthURL, c.oauth.Endpoint.TokenURL
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
