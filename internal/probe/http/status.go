package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/amxprobe/internal/probe/service"
	"github.com/aussiebroadwan/amxprobe/pkg/httpx"
	"github.com/aussiebroadwan/amxprobe/pkg/slogx"
)

type StatusHandler struct {
	Tokens  *service.TokenStore
	History *service.CallbackHistory
}

// HandleStatus summarises the session and recent callbacks.
//
//	@Summary		Callback history
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	StatusResponse
//	@Router			/status [get]
func (h *StatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	callbacks := h.History.List()

	httpx.WriteJSON(w, http.StatusOK, StatusResponse{
		Status:        "running",
		Timestamp:     now.UTC(),
		Authenticated: h.Tokens.Snapshot().Authenticated(now),
		CallbackCount: len(callbacks),
		Callbacks:     toCallbackEntries(callbacks),
	})
}

// HandleHealth is the lightweight liveness summary.
//
//	@Summary		Health
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	HealthStatusResponse
//	@Router			/health [get]
func (h *StatusHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	httpx.WriteJSON(w, http.StatusOK, HealthStatusResponse{
		Status:        "healthy",
		Timestamp:     now.UTC(),
		Authenticated: h.Tokens.Snapshot().Authenticated(now),
	})
}

// HandleClear empties the callback history. Tokens are kept.
//
//	@Summary		Clear callback history
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	ClearResponse
//	@Router			/clear [post]
func (h *StatusHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	h.History.Clear()
	slogx.FromContext(r.Context()).Info("callback history cleared")
	httpx.WriteJSON(w, http.StatusOK, ClearResponse{Success: true})
}
