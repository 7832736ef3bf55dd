package service

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/aussiebroadwan/amxprobe/internal/probe/domain"
	"github.com/aussiebroadwan/amxprobe/pkg/approvalsdk"
	"github.com/aussiebroadwan/amxprobe/pkg/slogx"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// MaxProbeConcurrency caps simultaneous outbound probe calls.
const MaxProbeConcurrency = 5

var ErrUnknownProbe = errors.New("unknown probe")

// Prober runs speculative API calls and reports every outcome as data.
//
// Calls are sequential unless Concurrency is above 1, in which case up to
// Concurrency calls (capped at MaxProbeConcurrency) run at once. Result order
// never depends on completion order.
type Prober struct {
	API         Requester
	Journal     *JournalService
	Concurrency int

	// Limiter paces outbound calls when set.
	Limiter *rate.Limiter
}

// Attempt performs one candidate request and folds any failure into the outcome.
func (p *Prober) Attempt(ctx context.Context, c domain.Candidate) domain.Outcome {
	out := domain.Outcome{Key: c.Key}
	started := time.Now()

	if p.Limiter != nil {
		if err := p.Limiter.Wait(ctx); err != nil {
			out.Err = err
			out.Error = err.Error()
			return out
		}
	}

	resp, err := p.API.Request(ctx, approvalsdk.Request{Path: c.Path, Query: c.Query})
	out.Duration = time.Since(started)
	if err != nil {
		out.Err = err
		out.Error = err.Error()
		out.Status = approvalsdk.StatusCode(err)
		return out
	}

	out.Success = true
	out.Status = resp.Status
	out.Data = resp.Data
	out.Count = approvalsdk.Count(resp.Data)
	out.Headers = resp.Headers
	return out
}

// FlatProbeResult lists what was tried and how each attempt went.
type FlatProbeResult struct {
	Message  string                    `json:"message"`
	Attempts []string                  `json:"attempts"`
	Results  map[string]domain.Outcome `json:"results"`
}

// ProbeFlat tries every purchase order event candidate. It never fails as a whole.
func (p *Prober) ProbeFlat(ctx context.Context) FlatProbeResult {
	candidates := PurchaseOrderEventCandidates()
	outcomes := p.attemptAll(ctx, candidates)

	result := FlatProbeResult{
		Message:  "Testing multiple possible PO Events endpoints",
		Attempts: make([]string, len(candidates)),
		Results:  make(map[string]domain.Outcome, len(candidates)),
	}
	for i, c := range candidates {
		result.Attempts[i] = c.Key
		result.Results[c.Key] = outcomes[i]
	}

	p.journal(ctx, outcomes...)
	return result
}

// OrganizationProbeResult is the per-organization probe tree.
type OrganizationProbeResult struct {
	Organizations []approvalsdk.Organization          `json:"organizations"`
	PoEventsByOrg map[string]domain.OrganizationProbe `json:"poEventsByOrg"`
}

// ProbePerOrganization lists organizations, then each organization's purchase
// orders, then events for the first few of those. Only the organization listing
// can fail the whole probe; organization failures are recorded in the tree and
// event failures are logged and left out.
func (p *Prober) ProbePerOrganization(ctx context.Context) (OrganizationProbeResult, error) {
	listing := p.Attempt(ctx, domain.Candidate{Key: organizationsPath, Path: organizationsPath})
	if !listing.Success {
		p.journal(ctx, listing)
		return OrganizationProbeResult{}, listing.Err
	}

	orgs := approvalsdk.Organizations(listing.Data)
	if orgs == nil {
		orgs = []approvalsdk.Organization{}
	}

	branches := make([]domain.OrganizationProbe, len(orgs))
	attempts := make([][]domain.Outcome, len(orgs))
	p.forEach(ctx, len(orgs), func(i int) {
		branches[i], attempts[i] = p.probeOrganization(ctx, orgs[i])
	})

	result := OrganizationProbeResult{
		Organizations: orgs,
		PoEventsByOrg: make(map[string]domain.OrganizationProbe, len(orgs)),
	}
	all := []domain.Outcome{listing}
	for i, org := range orgs {
		result.PoEventsByOrg[organizationKey(result.PoEventsByOrg, org)] = branches[i]
		all = append(all, attempts[i]...)
	}

	p.journal(ctx, all...)
	return result, nil
}

func (p *Prober) probeOrganization(
	ctx context.Context,
	org approvalsdk.Organization,
) (domain.OrganizationProbe, []domain.Outcome) {
	listing := p.Attempt(ctx, domain.Candidate{
		Key:  purchaseOrdersPath,
		Path: purchaseOrdersPath,
		Query: url.Values{
			"organizationId": {org.ID},
			"limit":          {strconv.Itoa(perOrganizationLimit)},
		},
	})
	attempts := []domain.Outcome{listing}

	if !listing.Success {
		return domain.OrganizationProbe{OrganizationID: org.ID, Error: listing.Error}, attempts
	}

	branch := domain.OrganizationProbe{
		OrganizationID: org.ID,
		RecordCount:    listing.Count,
		Data:           listing.Data,
	}

	for _, rec := range approvalsdk.Records(approvalsdk.Head(listing.Data, eventsProbedPerOrg)) {
		id := approvalsdk.StringField(rec, "id")
		if id == "" {
			continue
		}

		path := purchaseOrdersPath + "/" + url.PathEscape(id) + "/events"
		events := p.Attempt(ctx, domain.Candidate{Key: path, Path: path})
		attempts = append(attempts, events)

		if !events.Success {
			logSwallowed(ctx, path, events)
			continue
		}
		if branch.Events == nil {
			branch.Events = make(map[string]any)
		}
		branch.Events[id] = events.Data
	}

	return branch, attempts
}

// EndpointResult is the outcome of a single named probe.
type EndpointResult struct {
	Success  bool              `json:"success"`
	Endpoint string            `json:"endpoint"`
	Count    *int              `json:"count,omitempty"`
	Status   int               `json:"status,omitempty"`
	Data     any               `json:"data,omitempty"`
	Headers  map[string]string `json:"headers,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// ProbeEndpoint runs the named single-call probe from the catalog.
func (p *Prober) ProbeEndpoint(ctx context.Context, name string) (EndpointResult, error) {
	var probe *EndpointProbe
	for i := range endpointProbes {
		if endpointProbes[i].Name == name {
			probe = &endpointProbes[i]
			break
		}
	}
	if probe == nil {
		return EndpointResult{}, ErrUnknownProbe
	}

	out := p.Attempt(ctx, domain.Candidate{Key: probe.Endpoint, Path: probe.Path, Query: probe.Query})
	p.journal(ctx, out)

	if !out.Success {
		return EndpointResult{Endpoint: probe.Endpoint, Error: out.Error}, nil
	}

	result := EndpointResult{
		Success:  true,
		Endpoint: probe.Endpoint,
		Status:   out.Status,
		Data:     out.Data,
		Headers:  flattenHeaders(out),
	}
	if probe.Counted {
		count := out.Count
		result.Count = &count
	}
	return result, nil
}

// attemptAll runs candidates and returns outcomes in candidate order.
func (p *Prober) attemptAll(ctx context.Context, candidates []domain.Candidate) []domain.Outcome {
	outcomes := make([]domain.Outcome, len(candidates))
	p.forEach(ctx, len(candidates), func(i int) {
		outcomes[i] = p.Attempt(ctx, candidates[i])
	})
	return outcomes
}

func (p *Prober) forEach(ctx context.Context, n int, fn func(i int)) {
	limit := min(p.Concurrency, MaxProbeConcurrency)
	if limit <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait() // fn never fails; outcomes carry errors
}

func (p *Prober) journal(ctx context.Context, outcomes ...domain.Outcome) {
	entries := make([]domain.JournalEntry, 0, len(outcomes))
	for _, o := range outcomes {
		entries = append(entries, domain.JournalEntry{
			Kind:       domain.JournalProbe,
			Endpoint:   o.Key,
			Success:    o.Success,
			StatusCode: o.Status,
			Detail:     o.Error,
			DurationMS: o.Duration.Milliseconds(),
		})
	}
	p.Journal.RecordBatch(ctx, entries)
}

// logSwallowed keeps a not-found sub-probe quiet and everything else visible.
func logSwallowed(ctx context.Context, path string, out domain.Outcome) {
	log := slogx.FromContext(ctx)
	if approvalsdk.IsNotFound(out.Err) {
		log.Debug("sub-probe endpoint not found", "path", path)
		return
	}
	log.Warn("sub-probe failed", "path", path, "status", out.Status, "error", out.Err)
}

// organizationKey names an organization's branch, disambiguating blank and duplicate names.
func organizationKey(taken map[string]domain.OrganizationProbe, org approvalsdk.Organization) string {
	key := org.Name
	if key == "" {
		key = org.ID
	}
	if _, dup := taken[key]; dup {
		key = key + " (" + org.ID + ")"
	}
	return key
}

func flattenHeaders(out domain.Outcome) map[string]string {
	if len(out.Headers) == 0 {
		return nil
	}
	flat := make(map[string]string, len(out.Headers))
	for key := range out.Headers {
		flat[key] = out.Headers.Get(key)
	}
	return flat
}
