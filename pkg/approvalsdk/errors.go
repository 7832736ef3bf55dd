package approvalsdk

import (
	"errors"
	"fmt"
	"net/http"
)

// OAuth2 error codes the identity server is known to return (RFC 6749).
const (
	ErrorCodeAccessDenied   = "access_denied"
	ErrorCodeInvalidGrant   = "invalid_grant"
	ErrorCodeInvalidClient  = "invalid_client"
	ErrorCodeInvalidRequest = "invalid_request"
)

var (
	// ErrMissingAuthorizationCode is returned when the callback carries neither a code nor an error.
	ErrMissingAuthorizationCode = errors.New("no authorization code: the provider did not return a code")

	// ErrNotAuthenticated is returned by API calls attempted before a token exists.
	ErrNotAuthenticated = errors.New("no access token available")
)

// AuthorizationDeniedError is the provider's refusal delivered on the redirect.
type AuthorizationDeniedError struct {
	Code        string
	Description string
}

func (e *AuthorizationDeniedError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("authorization failed: %s", e.Code)
	}
	return fmt.Sprintf("authorization failed: %s: %s", e.Code, e.Description)
}

// StateMismatchError is returned when strict state checking is enabled and the
// callback's state does not match the one issued.
type StateMismatchError struct {
	Expected string
	Got      string
}

// Error never echoes the expected state.
func (e *StateMismatchError) Error() string {
	if e.Expected == "" {
		return "state mismatch: no authorization request is pending"
	}
	return fmt.Sprintf("state mismatch: callback carried %q", e.Got)
}

// TokenExchangeError wraps a failed call to the token endpoint.
type TokenExchangeError struct {
	// Grant is the grant type that failed, authorization_code or refresh_token.
	Grant string

	// StatusCode is zero when no HTTP response was received.
	StatusCode int

	Code        string
	Description string
	Err         error
}

func (e *TokenExchangeError) Error() string {
	action := "token exchange failed"
	if e.Grant == "refresh_token" {
		action = "token refresh failed"
	}

	switch {
	case e.Code != "" && e.Description != "":
		return fmt.Sprintf("%s (status %d): %s: %s", action, e.StatusCode, e.Code, e.Description)
	case e.Code != "":
		return fmt.Sprintf("%s (status %d): %s", action, e.StatusCode, e.Code)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s (status %d): %v", action, e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("%s: %v", action, e.Err)
	}
}

func (e *TokenExchangeError) Unwrap() error { return e.Err }

// APIError is a non-2xx answer from the REST API.
type APIError struct {
	StatusCode int
	Message    string

	// Body is the decoded JSON body, kept for diagnostics.
	Body any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API Error: %d - %s", e.StatusCode, e.Message)
}

// DecodeError is returned when the API answers with a body that is not JSON.
// It is reported even for error statuses, so a 502 HTML page surfaces here.
type DecodeError struct {
	StatusCode int
	Preview    string
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode API response (status %d): %v", e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// StatusCode extracts the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var (
		apiErr    *APIError
		decodeErr *DecodeError
		tokenErr  *TokenExchangeError
	)
	switch {
	case errors.As(err, &apiErr):
		return apiErr.StatusCode
	case errors.As(err, &decodeErr):
		return decodeErr.StatusCode
	case errors.As(err, &tokenErr):
		return tokenErr.StatusCode
	}
	return 0
}
