package service

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/amxprobe/pkg/approvalsdk"
	"github.com/stretchr/testify/require"
)

func TestTokenStore(t *testing.T) {
	t.Parallel()

	t.Run("starts empty", func(t *testing.T) {
		snap := NewTokenStore().Snapshot()
		require.False(t, snap.HasAccessToken())
		require.Nil(t, snap.ExpiresAt)
	})

	t.Run("begin authorization overwrites", func(t *testing.T) {
		s := NewTokenStore()
		s.BeginAuthorization("one", "https://a/cb")
		s.BeginAuthorization("two", "https://b/cb")

		state, redirect := s.PendingAuthorization()
		require.Equal(t, "two", state)
		require.Equal(t, "https://b/cb", redirect)
	})

	t.Run("keeps refresh token when response omits one", func(t *testing.T) {
		s := NewTokenStore()
		now := time.Now()

		s.StoreTokens(&approvalsdk.TokenResponse{AccessToken: "a1", RefreshToken: "r1", ExpiresIn: 60}, now)
		s.StoreTokens(&approvalsdk.TokenResponse{AccessToken: "a2", ExpiresIn: 60}, now)

		snap := s.Snapshot()
		require.Equal(t, "a2", snap.AccessToken)
		require.Equal(t, "r1", snap.RefreshToken)
		require.WithinDuration(t, now.Add(time.Minute), *snap.ExpiresAt, time.Second)
	})

	t.Run("snapshot is a copy", func(t *testing.T) {
		s := authenticatedStore("tok")
		snap := s.Snapshot()
		*snap.ExpiresAt = time.Time{}

		require.False(t, s.Snapshot().ExpiresAt.IsZero())
	})
}
