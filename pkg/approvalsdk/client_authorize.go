package approvalsdk

import (
	"fmt"
	"net/url"

	"github.com/aussiebroadwan/amxprobe/pkg/cryptox"
	"golang.org/x/oauth2"
)

// GenerateState returns a fresh anti-forgery nonce with 128 bits of entropy.
func GenerateState() (string, error) {
	state, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return state, nil
}

// BuildAuthorizeURL constructs the consent-page URL for the authorization code flow.
//
// The URL carries response_type=code, client_id, the space-joined scopes,
// redirect_uri and state. A non-empty redirectURI overrides the configured one;
// whatever is sent here must be sent again to ExchangeAuthorizationCode.
func (c *SDKClient) BuildAuthorizeURL(state, redirectURI string) string {
	var opts []oauth2.AuthCodeOption
	if redirectURI != "" {
		opts = append(opts, oauth2.SetAuthURLParam("redirect_uri", redirectURI))
	}
	return c.oauth.AuthCodeURL(state, opts...)
}

// ParseAuthorizationCallback extracts the code and state from the redirect
// query. A provider error wins over any code that may also be present.
func ParseAuthorizationCallback(query url.Values) (code, state string, err error) {
	state = query.Get("state")

	if errCode := query.Get("error"); errCode != "" {
		return "", state, &AuthorizationDeniedError{
			Code:        errCode,
			Description: query.Get("error_description"),
		}
	}

	code = query.Get("code")
	if code == "" {
		return "", state, ErrMissingAuthorizationCode
	}

	return code, state, nil
}

// ParseAuthorizationCallbackURL is ParseAuthorizationCallback for a full URL.
func ParseAuthorizationCallbackURL(callbackURL string) (code, state string, err error) {
	u, err := url.Parse(callbackURL)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse callback URL: %w", err)
	}
	return ParseAuthorizationCallback(u.Query())
}
