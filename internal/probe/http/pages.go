package http

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/aussiebroadwan/amxprobe/internal/probe/domain"
	"github.com/aussiebroadwan/amxprobe/internal/probe/service"
	"github.com/aussiebroadwan/amxprobe/pkg/httpx"
	"github.com/aussiebroadwan/amxprobe/pkg/slogx"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = template.Must(
	template.New("pages").
		Funcs(template.FuncMap{
			"pretty":    prettyJSON,
			"timestamp": formatTimestamp,
		}).
		ParseFS(templatesFS, "templates/*.html"),
)

// DashboardPage feeds templates/dashboard.html.
type DashboardPage struct {
	ClientID        string
	RedirectURI     string
	Authenticated   bool
	HasRefreshToken bool
	ExpiresAt       *time.Time
	Probes          []service.EndpointProbe
	Callbacks       []domain.CallbackRecord
}

// CallbackPage feeds templates/callback.html.
type CallbackPage struct {
	Title   string
	Success bool
	Message string
	Record  domain.CallbackRecord
}

// renderPage buffers the template so a failed render never leaves a half-written page.
func renderPage(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		slogx.FromContext(r.Context()).Error("failed to render page", "page", name, "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func prettyJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(b)
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return "unknown"
	}
	return t.UTC().Format(time.RFC3339)
}
