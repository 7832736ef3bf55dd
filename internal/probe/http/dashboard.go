package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/amxprobe/internal/probe/service"
)

type DashboardHandler struct {
	Settings Settings
	Tokens   *service.TokenStore
	History  *service.CallbackHistory
}

// ServeHTTP renders the operator dashboard.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	snap := h.Tokens.Snapshot()

	renderPage(w, r, http.StatusOK, "dashboard.html", DashboardPage{
		ClientID:        h.Settings.ClientID,
		RedirectURI:     h.Settings.RedirectURI,
		Authenticated:   snap.Authenticated(time.Now()),
		HasRefreshToken: snap.HasRefreshToken(),
		ExpiresAt:       snap.ExpiresAt,
		Probes:          service.EndpointProbes(),
		Callbacks:       h.History.List(),
	})
}
