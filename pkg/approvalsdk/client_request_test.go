package approvalsdk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDo(t *testing.T) {
	t.Parallel()

	t.Run("not authenticated makes no call", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { hits.Add(1) }))
		t.Cleanup(srv.Close)

		client := NewSDKClient(Config{APIBaseURL: srv.URL})
		_, err := client.Do(context.Background(), "", Request{Path: "/companies"})

		require.ErrorIs(t, err, ErrNotAuthenticated)
		require.Zero(t, hits.Load())
	})

	t.Run("success with headers", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer tok" || r.Header.Get("Accept") != "application/json" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"bad headers"}`))
				return
			}
			w.Header().Set("X-Trace", r.Header.Get("X-Trace"))
			_, _ = w.Write([]byte(`[{"id":"1"},{"id":"2"}]`))
		}))
		t.Cleanup(srv.Close)

		client := NewSDKClient(Config{APIBaseURL: srv.URL + "/"})
		resp, err := client.Do(context.Background(), "tok", Request{
			Path:    "/companies",
			Headers: map[string]string{"X-Trace": "t1"},
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.Status)
		require.Equal(t, 2, Count(resp.Data))
		require.Equal(t, "t1", resp.Headers.Get("X-Trace"))
	})

	t.Run("error message precedence", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			body string
			want string
		}{
			{`{"error":"forbidden","message":"ignored"}`, "forbidden"},
			{`{"message":"Not found"}`, "Not found"},
			{`{}`, "Unknown error"},
			{`[]`, "Unknown error"},
		}

		for _, tc := range cases {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(tc.body))
			}))

			client := NewSDKClient(Config{APIBaseURL: srv.URL})
			_, err := client.Do(context.Background(), "tok", Request{Path: "/x"})
			srv.Close()

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
			require.Equal(t, tc.want, apiErr.Message)
			require.Equal(t, "API Error: 404 - "+tc.want, err.Error())
			require.True(t, IsNotFound(err))
		}
	})

	t.Run("non json body", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
		}))
		t.Cleanup(srv.Close)

		client := NewSDKClient(Config{APIBaseURL: srv.URL})
		_, err := client.Do(context.Background(), "tok", Request{Path: "/x"})

		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		require.Equal(t, http.StatusBadGateway, decodeErr.StatusCode)
		require.Contains(t, decodeErr.Preview, "bad gateway")
		require.False(t, IsNotFound(err))
	})
}

func TestResolveURL(t *testing.T) {
	t.Parallel()

	client := NewSDKClient(Config{APIBaseURL: "https://api.example.com/v1"})

	t.Run("merges embedded query", func(t *testing.T) {
		got, err := client.ResolveURL("/events?type=purchase-order", url.Values{"limit": {"50"}})
		require.NoError(t, err)
		require.Equal(t, "https://api.example.com/v1/events?limit=50&type=purchase-order", got)
	})

	t.Run("plain path", func(t *testing.T) {
		got, err := client.ResolveURL("companies", nil)
		require.NoError(t, err)
		require.Equal(t, "https://api.example.com/v1/companies", got)
	})
}
