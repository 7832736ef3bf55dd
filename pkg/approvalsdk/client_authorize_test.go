package approvalsdk

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateState(t *testing.T) {
	t.Parallel()

	a, err := GenerateState()
	require.NoError(t, err)
	b, err := GenerateState()
	require.NoError(t, err)

	require.Len(t, a, 22)
	require.NotEqual(t, a, b)
	require.NotContains(t, a, "=")
}

func TestBuildAuthorizeURL(t *testing.T) {
	t.Parallel()

	client := NewSDKClient(Config{
		ClientID:    "client-123",
		RedirectURI: "https://probe.example.com/callback/approvalmax",
		AuthURL:     "https://id.example.com/connect/authorize",
		Scopes:      []string{"api.read", "offline_access"},
	})

	t.Run("configured redirect", func(t *testing.T) {
		u, err := url.Parse(client.BuildAuthorizeURL("st4te", ""))
		require.NoError(t, err)

		require.Equal(t, "id.example.com", u.Host)
		require.Equal(t, "/connect/authorize", u.Path)

		q := u.Query()
		require.Equal(t, "code", q.Get("response_type"))
		require.Equal(t, "client-123", q.Get("client_id"))
		require.Equal(t, "api.read offline_access", q.Get("scope"))
		require.Equal(t, "https://probe.example.com/callback/approvalmax", q.Get("redirect_uri"))
		require.Equal(t, "st4te", q.Get("state"))
	})

	t.Run("override redirect", func(t *testing.T) {
		raw := client.BuildAuthorizeURL("s", "http://localhost:8080/callback")
		u, err := url.Parse(raw)
		require.NoError(t, err)
		require.Equal(t, "http://localhost:8080/callback", u.Query().Get("redirect_uri"))
		require.Equal(t, 1, strings.Count(raw, "redirect_uri="))
	})

	t.Run("defaults", func(t *testing.T) {
		bare := NewSDKClient(Config{ClientID: "x"})
		require.True(t, strings.HasPrefix(bare.BuildAuthorizeURL("s", ""), DefaultAuthURL+"?"))
		require.Equal(t, DefaultAPIBaseURL, bare.BaseURL)
	})
}

func TestParseAuthorizationCallback(t *testing.T) {
	t.Parallel()

	t.Run("code", func(t *testing.T) {
		code, state, err := ParseAuthorizationCallback(url.Values{"code": {"abc"}, "state": {"xyz"}})
		require.NoError(t, err)
		require.Equal(t, "abc", code)
		require.Equal(t, "xyz", state)
	})

	t.Run("provider error wins", func(t *testing.T) {
		_, _, err := ParseAuthorizationCallback(url.Values{
			"code":              {"abc"},
			"error":             {"access_denied"},
			"error_description": {"user said no"},
		})

		var denied *AuthorizationDeniedError
		require.ErrorAs(t, err, &denied)
		require.Equal(t, ErrorCodeAccessDenied, denied.Code)
		require.Equal(t, "user said no", denied.Description)
		require.Contains(t, err.Error(), "access_denied")
	})

	t.Run("missing code", func(t *testing.T) {
		_, state, err := ParseAuthorizationCallback(url.Values{"state": {"xyz"}})
		require.ErrorIs(t, err, ErrMissingAuthorizationCode)
		require.Equal(t, "xyz", state)
	})

	t.Run("from url", func(t *testing.T) {
		code, _, err := ParseAuthorizationCallbackURL("https://probe.example.com/callback?code=c1&state=s1")
		require.NoError(t, err)
		require.Equal(t, "c1", code)
	})
}
