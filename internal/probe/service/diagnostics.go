package service

import (
	"context"
	"net/url"
	"time"

	"github.com/aussiebroadwan/amxprobe/internal/probe/domain"
	"github.com/aussiebroadwan/amxprobe/pkg/approvalsdk"
)

// EmptyListingsReport gathers evidence for purchase order listings that come back empty.
type EmptyListingsReport struct {
	Timestamp time.Time      `json:"timestamp"`
	Problem   string         `json:"problem"`
	Tests     map[string]any `json:"tests"`
}

// DiagnoseEmptyListings runs four independent checks: a bare listing, a sweep
// of status filters, a scan of documents for purchase orders, and the set of
// statuses actually present. A failing check never affects the others.
func (p *Prober) DiagnoseEmptyListings(ctx context.Context) EmptyListingsReport {
	const (
		basic     = "basicPOs"
		documents = "documentsAsPOs"
		statuses  = "actualStatuses"
	)

	candidates := []domain.Candidate{
		{Key: basic, Path: purchaseOrdersPath},
		{Key: documents, Path: documentsPath, Query: limit(documentScanLimit)},
		{Key: statuses, Path: purchaseOrdersPath, Query: limit(statusEnumerationLimit)},
	}
	for _, status := range statusFilters {
		candidates = append(candidates, domain.Candidate{
			Key:   status,
			Path:  purchaseOrdersPath,
			Query: url.Values{"status": {status}},
		})
	}

	outcomes := p.attemptAll(ctx, candidates)
	p.journal(ctx, outcomes...)

	byStatus := make(map[string]any, len(statusFilters))
	for _, out := range outcomes[3:] {
		byStatus[out.Key] = statusFilterResult(out)
	}

	return EmptyListingsReport{
		Timestamp: time.Now().UTC(),
		Problem:   "Purchase order listings return empty arrays although approvals are pending",
		Tests: map[string]any{
			basic:           basicListingResult(outcomes[0]),
			"statusFilters": byStatus,
			documents:       documentScanResult(outcomes[1]),
			statuses:        statusEnumerationResult(outcomes[2]),
		},
	}
}

func basicListingResult(out domain.Outcome) map[string]any {
	if !out.Success {
		return map[string]any{"success": false, "error": out.Error}
	}
	return map[string]any{
		"success":    true,
		"count":      out.Count,
		"isEmpty":    out.Count == 0,
		"sampleData": approvalsdk.Head(out.Data, samplePurchaseOrders),
	}
}

func statusFilterResult(out domain.Outcome) map[string]any {
	if !out.Success {
		return map[string]any{"error": out.Error}
	}
	return map[string]any{
		"count": out.Count,
		"data":  approvalsdk.Head(out.Data, sampleStatusRecords),
	}
}

func documentScanResult(out domain.Outcome) map[string]any {
	if !out.Success {
		return map[string]any{"error": out.Error}
	}

	matches := []any{}
	for _, rec := range approvalsdk.Records(out.Data) {
		if approvalsdk.IsPurchaseOrderDocument(rec) {
			matches = append(matches, rec)
		}
	}

	return map[string]any{
		"totalDocuments": out.Count,
		"poDocuments":    len(matches),
		"poData":         approvalsdk.Head(matches, samplePODocuments),
	}
}

func statusEnumerationResult(out domain.Outcome) map[string]any {
	if !out.Success {
		return map[string]any{"error": out.Error}
	}

	seen := make(map[string]bool)
	unique := []string{}
	for _, rec := range approvalsdk.Records(out.Data) {
		status := approvalsdk.StringField(rec, "status")
		if status == "" || seen[status] {
			continue
		}
		seen[status] = true
		unique = append(unique, status)
	}

	return map[string]any{
		"uniqueStatuses": unique,
		"totalPOs":       out.Count,
	}
}
