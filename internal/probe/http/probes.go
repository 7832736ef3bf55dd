package http

import (
	"net/http"

	"github.com/aussiebroadwan/amxprobe/internal/probe/service"
	"github.com/aussiebroadwan/amxprobe/pkg/httpx"
	"github.com/aussiebroadwan/amxprobe/pkg/slogx"
)

// ProbeHandler exposes the endpoint prober. Provider failures are reported as
// data with HTTP 200; only the organization listing can fail a probe outright.
type ProbeHandler struct {
	Prober *service.Prober
}

// Endpoint returns the handler for one named single-call probe.
//
//	@Summary		Probe a single endpoint
//	@Description	Calls one provider listing (companies, documents, purchase-orders or bills) with the held token.
//	@Tags			Probes
//	@Produce		json
//	@Param			name	path		string	true	"Probe name"	Enums(companies, documents, purchase-orders, bills)
//	@Success		200		{object}	service.EndpointResult
//	@Failure		404		{object}	ErrorResponse
//	@Router			/test/{name} [get]
func (h *ProbeHandler) Endpoint(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result, err := h.Prober.ProbeEndpoint(r.Context(), name)
		if err != nil {
			httpx.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		httpx.WriteJSON(w, http.StatusOK, result)
	})
}

// HandleFlat tries every guessed purchase order events location.
//
//	@Summary		Probe purchase order event candidates
//	@Description	Tries each candidate path with limit=50. Every attempt is reported under its path.
//	@Tags			Probes
//	@Produce		json
//	@Success		200	{object}	service.FlatProbeResult
//	@Router			/test/po-events [get]
func (h *ProbeHandler) HandleFlat(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.Prober.ProbeFlat(r.Context()))
}

// HandlePerOrganization walks organizations, their purchase orders and the first events.
//
//	@Summary		Probe purchase order events per organization
//	@Description	Lists organizations, then each organization's purchase orders, then events for the first five.
//	@Tags			Probes
//	@Produce		json
//	@Success		200	{object}	service.OrganizationProbeResult
//	@Router			/test/po-events-per-org [get]
func (h *ProbeHandler) HandlePerOrganization(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.Prober.ProbePerOrganization(ctx)
	if err != nil {
		slogx.FromContext(ctx).Warn("organization listing failed", "error", err)
		httpx.WriteError(w, http.StatusOK, err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, result)
}
