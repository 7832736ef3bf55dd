package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/amxprobe/pkg/approvalsdk"
)

// fakeProvider is an in-process identity server plus REST API.
type fakeProvider struct {
	srv *httptest.Server

	mu          sync.Mutex
	tokenForms  []map[string]string
	tokenStatus int
	tokenBody   map[string]any
	routes      map[string]http.HandlerFunc
	apiCalls    []string
	authHeaders []string
}

func newFakeProvider(t *testing.T) *fakeProvider {
	t.Helper()

	f := &fakeProvider{
		tokenStatus: http.StatusOK,
		tokenBody: map[string]any{
			"access_token":  "X",
			"refresh_token": "R",
			"token_type":    "Bearer",
			"expires_in":    3600,
		},
		routes: make(map[string]http.HandlerFunc),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /connect/token", f.serveToken)
	mux.HandleFunc("/api/", f.serveAPI)

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeProvider) serveToken(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()

	f.mu.Lock()
	form := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		form[key] = r.PostForm.Get(key)
	}
	f.tokenForms = append(f.tokenForms, form)
	status, body := f.tokenStatus, f.tokenBody
	f.mu.Unlock()

	reply(w, status, body)
}

func (f *fakeProvider) serveAPI(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api")

	f.mu.Lock()
	call := path
	if r.URL.RawQuery != "" {
		call += "?" + r.URL.RawQuery
	}
	f.apiCalls = append(f.apiCalls, call)
	f.authHeaders = append(f.authHeaders, r.Header.Get("Authorization"))
	h, ok := f.routes[path]
	f.mu.Unlock()

	if !ok {
		reply(w, http.StatusNotFound, map[string]any{"message": "Not found"})
		return
	}
	h(w, r)
}

func (f *fakeProvider) handle(path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[path] = h
}

func (f *fakeProvider) respond(path string, status int, body any) {
	f.handle(path, func(w http.ResponseWriter, _ *http.Request) { reply(w, status, body) })
}

func (f *fakeProvider) setToken(status int, body map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokenStatus, f.tokenBody = status, body
}

func (f *fakeProvider) tokenRequests() []map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]string(nil), f.tokenForms...)
}

func (f *fakeProvider) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.apiCalls...)
}

func (f *fakeProvider) lastAuthorization() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.authHeaders) == 0 {
		return ""
	}
	return f.authHeaders[len(f.authHeaders)-1]
}

func (f *fakeProvider) client(redirectURI string) *approvalsdk.SDKClient {
	return approvalsdk.NewSDKClient(approvalsdk.Config{
		ClientID:     "client-123",
		ClientSecret: "secret",
		RedirectURI:  redirectURI,
		AuthURL:      "https://id.example.com/connect/authorize",
		TokenURL:     f.srv.URL + "/connect/token",
		APIBaseURL:   f.srv.URL + "/api",
		Scopes:       []string{"public_api/read", "offline_access"},
		HTTPClient:   &http.Client{Timeout: 5 * time.Second},
	})
}

func reply(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func records(ids ...string) []map[string]any {
	out := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, map[string]any{"id": id})
	}
	return out
}

// authenticatedStore returns a store holding a token valid for an hour.
func authenticatedStore(token string) *TokenStore {
	s := NewTokenStore()
	s.StoreTokens(&approvalsdk.TokenResponse{AccessToken: token, ExpiresIn: 3600}, time.Now())
	return s
}
