package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/amxprobe/internal/probe/service"
	"github.com/aussiebroadwan/amxprobe/internal/probe/store"
	"github.com/aussiebroadwan/amxprobe/pkg/httpx"
	"github.com/aussiebroadwan/amxprobe/pkg/slogx"

	_ "github.com/aussiebroadwan/amxprobe/api/probe" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Settings is the non-secret runtime configuration the handlers need or report.
type Settings struct {
	ClientID              string
	RedirectURI           string
	AuthURL               string
	TokenURL              string
	APIBaseURL            string
	Scopes                []string
	TrustForwardedHeaders bool
	AutoRefresh           bool
	StrictState           bool
	CallbackSmokeTest     bool
	ProbeConcurrency      int
	ProbeRatePerSecond    float64
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	settings     Settings
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	AuthService *service.AuthService
	API         *service.APIClient
	Prober      *service.Prober
	Tokens      *service.TokenStore
	History     *service.CallbackHistory
	Journal     *service.JournalService
}

func NewRouter(
	settings Settings,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		settings:     settings,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerDashboard()
	r.registerAuth()
	r.registerProbes()
	r.registerDebug()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			ApprovalMax OAuth Probe API
//	@version		0.1.0
//	@description	Diagnostic harness for the ApprovalMax authorization-code flow and speculative
//	@description	endpoint probing. Every probe failure is reported as data with HTTP 200.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/amxprobe
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerDashboard() {
	h := &DashboardHandler{
		Settings: r.settings,
		Tokens:   r.Tokens,
		History:  r.History,
	}

	// GET / only; the bare "/" pattern would swallow every unknown path
	r.Mux.Handle("GET /{$}",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService:           r.AuthService,
		API:                   r.API,
		Tokens:                r.Tokens,
		TrustForwardedHeaders: r.settings.TrustForwardedHeaders,
	}

	r.Mux.Handle("GET /auth/start",
		httpx.Chain(http.HandlerFunc(h.HandleStart),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// Provider redirect target, served on both callback paths
	callback := httpx.Chain(http.HandlerFunc(h.HandleCallback),
		httpx.RateLimitByIP(httpx.ModerateLimit),
	)
	r.Mux.Handle("GET /callback", callback)
	r.Mux.Handle("GET /callback/approvalmax", callback)

	r.Mux.Handle("POST /auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /auth/status",
		httpx.Chain(http.HandlerFunc(h.HandleStatus),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerProbes() {
	h := &ProbeHandler{Prober: r.Prober}

	// Single-call probes - one provider call each
	for _, p := range service.EndpointProbes() {
		r.Mux.Handle("GET /test/"+p.Name,
			httpx.Chain(h.Endpoint(p.Name),
				httpx.RateLimitByIP(httpx.ModerateLimit),
			),
		)
	}

	// Fan-out probes - several provider calls each, strict limit
	r.Mux.Handle("GET /test/po-events",
		httpx.Chain(http.HandlerFunc(h.HandleFlat),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("GET /test/po-events-per-org",
		httpx.Chain(http.HandlerFunc(h.HandlePerOrganization),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerDebug() {
	h := &DebugHandler{
		Settings:    r.settings,
		AuthService: r.AuthService,
		Prober:      r.Prober,
		Tokens:      r.Tokens,
		Journal:     r.Journal,
	}

	r.Mux.Handle("GET /debug/empty-arrays",
		httpx.Chain(http.HandlerFunc(h.HandleEmptyArrays),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("GET /debug/info",
		httpx.Chain(http.HandlerFunc(h.HandleInfo),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /debug/token",
		httpx.Chain(http.HandlerFunc(h.HandleToken),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /debug/journal",
		httpx.Chain(http.HandlerFunc(h.HandleJournal),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	h := &StatusHandler{
		Tokens:  r.Tokens,
		History: r.History,
	}

	r.Mux.Handle("GET /status",
		httpx.Chain(http.HandlerFunc(h.HandleStatus),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /health",
		httpx.Chain(http.HandlerFunc(h.HandleHealth),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("POST /clear",
		httpx.Chain(http.HandlerFunc(h.HandleClear),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// Health check endpoints - monitoring systems may poll frequently
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
