package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	probehttp "github.com/aussiebroadwan/amxprobe/internal/probe/http"
	"github.com/aussiebroadwan/amxprobe/internal/probe/service"
	"github.com/aussiebroadwan/amxprobe/internal/probe/store/drivers/sqlite"
	"github.com/aussiebroadwan/amxprobe/pkg/approvalsdk"
	"github.com/aussiebroadwan/amxprobe/pkg/slogx"
	"github.com/stretchr/testify/require"
)

// provider is a minimal identity server plus REST API.
type provider struct {
	srv *httptest.Server

	mu         sync.Mutex
	tokenCalls int
	token      string
}

func newProvider(t *testing.T) *provider {
	t.Helper()

	p := &provider{token: "opaque-access-token"}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /connect/token", func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		p.tokenCalls++
		token := p.token
		p.mu.Unlock()

		if r.FormValue("code") == "bad-code" {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":             "invalid_grant",
				"error_description": "code expired",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token":  token,
			"refresh_token": "refresh-token",
			"token_type":    "Bearer",
			"expires_in":    3600,
		})
	})
	mux.HandleFunc("GET /api/companies", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{{"id": "org-1", "name": "Mining"}})
	})
	mux.HandleFunc("GET /api/purchase-orders", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{{"id": "po-1", "status": "pending"}})
	})
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Not found"})
	})

	p.srv = httptest.NewServer(mux)
	t.Cleanup(p.srv.Close)
	return p
}

func (p *provider) tokenRequests() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tokenCalls
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newRouter(t *testing.T, p *provider) *probehttp.Router {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	client := approvalsdk.NewSDKClient(approvalsdk.Config{
		ClientID:     "client-123",
		ClientSecret: "secret",
		AuthURL:      p.srv.URL + "/connect/authorize",
		TokenURL:     p.srv.URL + "/connect/token",
		APIBaseURL:   p.srv.URL + "/api",
		Scopes:       approvalsdk.DefaultScopes,
	})

	tokens := service.NewTokenStore()
	history := service.NewCallbackHistory(service.DefaultCallbackCapacity)
	journal := &service.JournalService{Store: st}
	api := &service.APIClient{Client: client, Tokens: tokens, Journal: journal, AutoRefresh: true}

	router := probehttp.NewRouter(probehttp.Settings{
		ClientID:         "client-123",
		TokenURL:         p.srv.URL + "/connect/token",
		APIBaseURL:       client.BaseURL,
		Scopes:           approvalsdk.DefaultScopes,
		AutoRefresh:      true,
		ProbeConcurrency: 1,
	}, "test", st, slogx.Discard())

	router.Tokens = tokens
	router.History = history
	router.Journal = journal
	router.AuthService = &service.AuthService{
		Client:    client,
		Tokens:    tokens,
		History:   history,
		Journal:   journal,
		API:       api,
		SmokeTest: true,
	}
	router.API = api
	router.Prober = &service.Prober{API: api, Journal: journal, Concurrency: 1}
	router.ApplyRoutes()

	return router
}

func serve(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// authenticate runs /auth/start and the matching callback.
func authenticate(t *testing.T, router http.Handler) {
	t.Helper()

	start := serve(t, router, http.MethodGet, "/auth/start")
	require.Equal(t, http.StatusOK, start.Code)

	authURL, err := url.Parse(decode(t, start)["authUrl"].(string))
	require.NoError(t, err)
	state := authURL.Query().Get("state")

	cb := serve(t, router, http.MethodGet, "/callback/approvalmax?code=good-code&state="+state)
	require.Equal(t, http.StatusOK, cb.Code, cb.Body.String())
}

func TestAuthStart(t *testing.T) {
	t.Parallel()

	router := newRouter(t, newProvider(t))

	rec := serve(t, router, http.MethodGet, "/auth/start")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	authURL, err := url.Parse(decode(t, rec)["authUrl"].(string))
	require.NoError(t, err)

	q := authURL.Query()
	require.Equal(t, "/connect/authorize", authURL.Path)
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, "client-123", q.Get("client_id"))
	require.Equal(t, "http://example.com/callback/approvalmax", q.Get("redirect_uri"))
	require.Len(t, q.Get("state"), 22)
}

func TestCallbackFlow(t *testing.T) {
	t.Parallel()

	p := newProvider(t)
	router := newRouter(t, p)

	t.Run("unauthenticated status", func(t *testing.T) {
		body := decode(t, serve(t, router, http.MethodGet, "/auth/status"))
		require.Equal(t, false, body["authenticated"])
		require.Nil(t, body["expiresAt"])
		require.Equal(t, false, body["hasRefreshToken"])
	})

	t.Run("successful exchange", func(t *testing.T) {
		authenticate(t, router)

		body := decode(t, serve(t, router, http.MethodGet, "/auth/status"))
		require.Equal(t, true, body["authenticated"])
		require.NotNil(t, body["expiresAt"])
		require.Equal(t, true, body["hasRefreshToken"])
	})

	t.Run("status lists the callback with smoke test", func(t *testing.T) {
		body := decode(t, serve(t, router, http.MethodGet, "/status"))
		require.EqualValues(t, 1, body["callbackCount"])

		callbacks := body["callbacks"].([]any)
		first := callbacks[0].(map[string]any)
		require.Equal(t, true, first["success"])
		require.Equal(t, true, first["tokenExchange"].(map[string]any)["success"])

		apiTest := first["apiTest"].(map[string]any)
		require.Equal(t, "/companies", apiTest["endpoint"])
		require.EqualValues(t, 1, apiTest["count"])
	})

	t.Run("clear empties history", func(t *testing.T) {
		rec := serve(t, router, http.MethodPost, "/clear")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, true, decode(t, rec)["success"])

		body := decode(t, serve(t, router, http.MethodGet, "/status"))
		require.EqualValues(t, 0, body["callbackCount"])
	})
}

func TestAuthRefresh(t *testing.T) {
	t.Parallel()

	p := newProvider(t)
	router := newRouter(t, p)

	t.Run("fails without a session", func(t *testing.T) {
		rec := serve(t, router, http.MethodPost, "/auth/refresh")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, 0, p.tokenRequests())
	})

	authenticate(t, router)

	t.Run("refreshes and masks the token", func(t *testing.T) {
		rec := serve(t, router, http.MethodPost, "/auth/refresh")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.NotContains(t, rec.Body.String(), "opaque-access-token")

		body := decode(t, rec)
		require.Equal(t, true, body["success"])
		require.Equal(t, true, body["hasRefreshToken"])
		require.NotEmpty(t, body["accessTokenPreview"])
		require.Equal(t, 2, p.tokenRequests())

		journal := decode(t, serve(t, router, http.MethodGet, "/debug/journal?kind=token_refresh"))
		require.Len(t, journal["entries"], 2)
	})

	require.Equal(t, http.StatusMethodNotAllowed, serve(t, router, http.MethodGet, "/auth/refresh").Code)
}

func TestCallbackFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		query  string
		status int
		title  string
		calls  int
	}{
		{"provider denied", "error=access_denied&error_description=User+said+no", http.StatusBadRequest, "Authorization failed", 0},
		{"missing code", "state=abc", http.StatusBadRequest, "No authorization code", 0},
		{"exchange rejected", "code=bad-code", http.StatusBadRequest, "Token exchange failed", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := newProvider(t)
			router := newRouter(t, p)

			rec := serve(t, router, http.MethodGet, "/callback?"+tt.query)
			require.Equal(t, tt.status, rec.Code)
			require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			require.Contains(t, rec.Body.String(), tt.title)
			require.Equal(t, tt.calls, p.tokenRequests())

			body := decode(t, serve(t, router, http.MethodGet, "/status"))
			require.EqualValues(t, 1, body["callbackCount"])
		})
	}

	t.Run("callback page escapes provider text", func(t *testing.T) {
		t.Parallel()

		router := newRouter(t, newProvider(t))
		rec := serve(t, router, http.MethodGet, "/callback?error=%3Cscript%3Ealert(1)%3C%2Fscript%3E")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotContains(t, rec.Body.String(), "<script>alert(1)</script>")
	})
}

func TestProbeEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("unauthenticated probe is data", func(t *testing.T) {
		t.Parallel()

		router := newRouter(t, newProvider(t))
		rec := serve(t, router, http.MethodGet, "/test/companies")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode(t, rec)
		require.Equal(t, false, body["success"])
		require.Equal(t, "/companies", body["endpoint"])
		require.Equal(t, approvalsdk.ErrNotAuthenticated.Error(), body["error"])
	})

	t.Run("authenticated probes", func(t *testing.T) {
		t.Parallel()

		router := newRouter(t, newProvider(t))
		authenticate(t, router)

		body := decode(t, serve(t, router, http.MethodGet, "/test/purchase-orders"))
		require.Equal(t, true, body["success"])
		require.EqualValues(t, 1, body["count"])

		flat := decode(t, serve(t, router, http.MethodGet, "/test/po-events"))
		require.Len(t, flat["attempts"], 4)
		results := flat["results"].(map[string]any)
		require.Len(t, results, 4)
		for _, r := range results {
			require.Equal(t, false, r.(map[string]any)["success"])
		}

		perOrg := decode(t, serve(t, router, http.MethodGet, "/test/po-events-per-org"))
		require.Len(t, perOrg["organizations"], 1)
		mining := perOrg["poEventsByOrg"].(map[string]any)["Mining"].(map[string]any)
		require.Equal(t, "org-1", mining["organizationId"])
		require.EqualValues(t, 1, mining["recordCount"])
		require.NotContains(t, mining, "events")
	})
}

func TestDebugEndpoints(t *testing.T) {
	t.Parallel()

	router := newRouter(t, newProvider(t))

	t.Run("token requires authentication", func(t *testing.T) {
		rec := serve(t, router, http.MethodGet, "/debug/token")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	authenticate(t, router)

	t.Run("opaque token", func(t *testing.T) {
		body := decode(t, serve(t, router, http.MethodGet, "/debug/token"))
		require.Equal(t, true, body["success"])
		require.Equal(t, true, body["opaque"])
	})

	t.Run("info never leaks the token", func(t *testing.T) {
		rec := serve(t, router, http.MethodGet, "/debug/info")
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotContains(t, rec.Body.String(), "opaque-access-token")

		body := decode(t, rec)
		status := body["tokenStatus"].(map[string]any)
		require.Equal(t, true, status["hasAccessToken"])
		require.Equal(t, false, status["isExpired"])
		require.NotEmpty(t, body["recentJournal"])
		require.Contains(t, body["config"].(map[string]any)["tokenUrl"], "/connect/token")
	})

	t.Run("journal filter and limit", func(t *testing.T) {
		body := decode(t, serve(t, router, http.MethodGet, "/debug/journal?kind=token_exchange"))
		entries := body["entries"].([]any)
		require.Len(t, entries, 1)
		require.Equal(t, "token_exchange", entries[0].(map[string]any)["kind"])

		rec := serve(t, router, http.MethodGet, "/debug/journal?limit=zero")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSystemEndpoints(t *testing.T) {
	t.Parallel()

	router := newRouter(t, newProvider(t))

	for _, path := range []string{"/livez", "/readyz", "/health"} {
		rec := serve(t, router, http.MethodGet, path)
		require.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := serve(t, router, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), "client-123"))

	require.Equal(t, http.StatusNotFound, serve(t, router, http.MethodGet, "/nope").Code)
	require.Equal(t, http.StatusMethodNotAllowed, serve(t, router, http.MethodGet, "/clear").Code)
}
