/*
Package approvalsdk is a small client for the approvals provider's OAuth2
identity endpoints and its public REST API.

# Overview

The package has two halves:

  - OAuth2 authorization-code helpers: BuildAuthorizeURL, ParseAuthorizationCallback,
    ExchangeAuthorizationCode and RefreshGrant. They are thin wrappers around
    golang.org/x/oauth2 configured for client_secret_post authentication.
  - An API caller, Do, which sends a bearer-authenticated JSON request and
    normalises the response.

The client holds no tokens. Callers keep the access token wherever suits them
and pass it to Do on every call.

	client := approvalsdk.NewSDKClient(approvalsdk.Config{
		ClientID:     os.Getenv("APPROVALMAX_CLIENT_ID"),
		ClientSecret: os.Getenv("APPROVALMAX_CLIENT_SECRET"),
		RedirectURI:  "https://probe.example.com/callback",
		Scopes:       approvalsdk.DefaultScopes,
	})

	state, _ := approvalsdk.GenerateState()
	url := client.BuildAuthorizeURL(state, "")
	// ... browser consent, callback arrives with ?code=...

	code, _, err := approvalsdk.ParseAuthorizationCallback(r.URL.Query())
	tokens, err := client.ExchangeAuthorizationCode(ctx, code, "")

	resp, err := client.Do(ctx, tokens.AccessToken, approvalsdk.Request{Path: "/companies"})

# Errors

Every failure mode has a type so callers can report it precisely:

  - *AuthorizationDeniedError: the callback carried error=...
  - ErrMissingAuthorizationCode: the callback carried neither code nor error
  - *StateMismatchError: strict state checking rejected the callback
  - *TokenExchangeError: the token endpoint rejected the grant or was unreachable
  - ErrNotAuthenticated: an API call was attempted without a token
  - *DecodeError: the API answered with something that is not JSON
  - *APIError: the API answered with a non-2xx status

Nothing in this package retries.
*/
package approvalsdk
