package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aussiebroadwan/amxprobe/internal/probe/domain"
	"github.com/aussiebroadwan/amxprobe/internal/probe/service"
	"github.com/aussiebroadwan/amxprobe/pkg/approvalsdk"
	"github.com/aussiebroadwan/amxprobe/pkg/httpx"
	"github.com/aussiebroadwan/amxprobe/pkg/jwtx"
	"github.com/aussiebroadwan/amxprobe/pkg/slogx"
)

const (
	debugInfoJournalEntries = 5
	defaultJournalLimit     = 50
	maxJournalLimit         = 500
)

type DebugHandler struct {
	Settings    Settings
	AuthService *service.AuthService
	Prober      *service.Prober
	Tokens      *service.TokenStore
	Journal     *service.JournalService
}

// HandleEmptyArrays runs the empty listing diagnostics.
//
//	@Summary		Diagnose empty purchase order listings
//	@Description	Independent checks: bare listing, status filter sweep, document scan and distinct statuses.
//	@Tags			Debug
//	@Produce		json
//	@Success		200	{object}	service.EmptyListingsReport
//	@Router			/debug/empty-arrays [get]
func (h *DebugHandler) HandleEmptyArrays(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.Prober.DiagnoseEmptyListings(r.Context()))
}

// HandleInfo reports configuration, token presence and recent activity.
//
//	@Summary		Debug information
//	@Tags			Debug
//	@Produce		json
//	@Success		200	{object}	DebugInfoResponse
//	@Router			/debug/info [get]
func (h *DebugHandler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now()

	recent, err := h.Journal.Recent(ctx, "", debugInfoJournalEntries)
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to read journal", "error", err)
	}

	httpx.WriteJSON(w, http.StatusOK, DebugInfoResponse{
		Timestamp: now.UTC(),
		Config: ConfigView{
			ClientID:           h.Settings.ClientID,
			RedirectURI:        h.Settings.RedirectURI,
			AuthURL:            h.Settings.AuthURL,
			TokenURL:           h.Settings.TokenURL,
			APIBaseURL:         h.Settings.APIBaseURL,
			Scopes:             h.Settings.Scopes,
			AutoRefresh:        h.Settings.AutoRefresh,
			StrictState:        h.Settings.StrictState,
			CallbackSmokeTest:  h.Settings.CallbackSmokeTest,
			ProbeConcurrency:   h.Settings.ProbeConcurrency,
			ProbeRatePerSecond: h.Settings.ProbeRatePerSecond,
		},
		TokenStatus:   tokenStatus(h.Tokens.Snapshot(), now),
		RecentJournal: toJournalEntries(recent),
	})
}

// HandleToken decodes the held access token without verifying it.
//
//	@Summary		Inspect access token claims
//	@Description	Claims are decoded without signature verification. Reference tokens are reported as opaque.
//	@Tags			Debug
//	@Produce		json
//	@Success		200	{object}	TokenInspectionResponse
//	@Failure		401	{object}	TokenInspectionResponse
//	@Router			/debug/token [get]
func (h *DebugHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	inspection, err := h.AuthService.InspectAccessToken()
	switch {
	case errors.Is(err, approvalsdk.ErrNotAuthenticated):
		httpx.WriteJSON(w, http.StatusUnauthorized, TokenInspectionResponse{Error: err.Error()})
	case errors.Is(err, jwtx.ErrOpaqueToken):
		httpx.WriteJSON(w, http.StatusOK, TokenInspectionResponse{Success: true, Opaque: true})
	case err != nil:
		httpx.WriteJSON(w, http.StatusInternalServerError, TokenInspectionResponse{Error: err.Error()})
	default:
		httpx.WriteJSON(w, http.StatusOK, TokenInspectionResponse{
			Success: true,
			Expired: inspection.Expired(time.Now()),
			Token:   &inspection,
		})
	}
}

// HandleJournal lists recent activity.
//
//	@Summary		Activity journal
//	@Description	Most recent entries first. Entries carry token fingerprints, never tokens.
//	@Tags			Debug
//	@Produce		json
//	@Param			kind	query		string	false	"Filter by kind"	Enums(auth_start, callback, token_exchange, token_refresh, probe, smoke_test)
//	@Param			limit	query		int		false	"Maximum entries (default 50, max 500)"
//	@Success		200		{object}	JournalResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/debug/journal [get]
func (h *DebugHandler) HandleJournal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultJournalLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httpx.WriteError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxJournalLimit)
	}

	kind := domain.JournalKind(r.URL.Query().Get("kind"))
	entries, err := h.Journal.Recent(ctx, kind, limit)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to read journal", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to read journal")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, JournalResponse{Entries: toJournalEntries(entries)})
}
