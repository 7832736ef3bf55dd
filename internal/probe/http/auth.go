package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/amxprobe/internal/probe/service"
	"github.com/aussiebroadwan/amxprobe/pkg/approvalsdk"
	"github.com/aussiebroadwan/amxprobe/pkg/cryptox"
	"github.com/aussiebroadwan/amxprobe/pkg/httpx"
	"github.com/aussiebroadwan/amxprobe/pkg/slogx"
)

// DefaultCallbackPath is where the provider is told to redirect when no
// redirect URI is configured.
const DefaultCallbackPath = "/callback/approvalmax"

type AuthHandler struct {
	AuthService           *service.AuthService
	API                   *service.APIClient
	Tokens                *service.TokenStore
	TrustForwardedHeaders bool
}

// HandleStart begins an authorization.
//
//	@Summary		Start authorization
//	@Description	Generates a fresh state and returns the provider consent URL. Any earlier in-flight state is replaced.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	AuthStartResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/auth/start [get]
func (h *AuthHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	fallback := httpx.RequestOrigin(r, h.TrustForwardedHeaders) + DefaultCallbackPath
	result, err := h.AuthService.Start(ctx, fallback)
	if err != nil {
		log.Error("failed to start authorization", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.WriteJSON(w, http.StatusOK, AuthStartResponse{AuthURL: result.AuthURL})
}

// HandleCallback processes the provider redirect and renders the outcome.
//
//	@Summary		OAuth redirect target
//	@Description	Rejects provider errors and missing codes, exchanges the code for tokens and runs the optional API smoke test.
//	@Tags			Auth
//	@Produce		html
//	@Param			code				query	string	false	"Authorization code"
//	@Param			state				query	string	false	"State issued by /auth/start"
//	@Param			error				query	string	false	"Provider error code"
//	@Param			error_description	query	string	false	"Provider error description"
//	@Success		200
//	@Failure		400
//	@Failure		500
//	@Router			/callback/approvalmax [get]
//	@Router			/callback [get]
func (h *AuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rec, err := h.AuthService.HandleCallback(ctx, service.CallbackRequest{
		URL:                 r.URL.RequestURI(),
		Query:               r.URL.Query(),
		FallbackRedirectURI: httpx.RequestOrigin(r, h.TrustForwardedHeaders) + r.URL.Path,
	})

	page := CallbackPage{Record: rec}
	status := http.StatusOK

	var (
		denied   *approvalsdk.AuthorizationDeniedError
		mismatch *approvalsdk.StateMismatchError
		exchange *approvalsdk.TokenExchangeError
	)
	switch {
	case err == nil:
		page.Title = "Authentication successful"
		page.Success = true
		page.Message = "Access token obtained. Ready to probe API endpoints."
	case errors.As(err, &denied):
		status = http.StatusBadRequest
		page.Title = "Authorization failed"
		page.Message = denied.Error()
	case errors.Is(err, approvalsdk.ErrMissingAuthorizationCode):
		status = http.StatusBadRequest
		page.Title = "No authorization code"
		page.Message = "The provider did not return an authorization code."
	case errors.As(err, &mismatch):
		status = http.StatusBadRequest
		page.Title = "State mismatch"
		page.Message = mismatch.Error()
	case errors.As(err, &exchange):
		status = http.StatusBadRequest
		page.Title = "Token exchange failed"
		page.Message = exchange.Error()
	default:
		status = http.StatusInternalServerError
		page.Title = "Server error"
		page.Message = err.Error()
	}

	renderPage(w, r, status, "callback.html", page)
}

// HandleRefresh forces a refresh_token grant.
//
//	@Summary		Refresh the access token
//	@Description	Exchanges the held refresh token for a new access token. Fails without a refresh token.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	AuthRefreshResponse
//	@Failure		400	{object}	ErrorResponse
//	@Router			/auth/refresh [post]
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tokens, err := h.API.Refresh(ctx)
	if err != nil {
		slogx.FromContext(ctx).Warn("forced refresh failed", "error", err)
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap := h.Tokens.Snapshot()
	httpx.WriteJSON(w, http.StatusOK, AuthRefreshResponse{
		Success:            true,
		ExpiresAt:          snap.ExpiresAt,
		HasRefreshToken:    snap.HasRefreshToken(),
		AccessTokenPreview: cryptox.MaskToken(tokens.AccessToken),
	})
}

// HandleStatus reports the held token. It never refreshes.
//
//	@Summary		Authentication status
//	@Description	Authenticated only while an access token is held and its expiry lies in the future.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	AuthStatusResponse
//	@Router			/auth/status [get]
func (h *AuthHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	snap := h.Tokens.Snapshot()
	httpx.WriteJSON(w, http.StatusOK, AuthStatusResponse{
		Authenticated:   snap.Authenticated(time.Now()),
		ExpiresAt:       snap.ExpiresAt,
		HasRefreshToken: snap.HasRefreshToken(),
	})
}
