package cmd

import (
	"bytes"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthURLCommand(t *testing.T) {
	t.Setenv("APPROVALMAX_CLIENT_ID", "client-123")
	t.Setenv("APPROVALMAX_REDIRECT_URI", "")
	t.Setenv("APPROVALMAX_AUTH_URL", "https://identity.example.com/connect/authorize")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"auth-url",
		"--env-file", t.TempDir() + "/missing.env",
		"--redirect-uri", "https://probe.example.com/callback/approvalmax",
	})
	require.NoError(t, rootCmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	state := strings.TrimPrefix(lines[0], "state: ")
	require.Len(t, state, 22)

	u, err := url.Parse(lines[1])
	require.NoError(t, err)
	require.Equal(t, "identity.example.com", u.Host)
	require.Equal(t, state, u.Query().Get("state"))
	require.Equal(t, "client-123", u.Query().Get("client_id"))
	require.Equal(t, "https://probe.example.com/callback/approvalmax", u.Query().Get("redirect_uri"))
}
