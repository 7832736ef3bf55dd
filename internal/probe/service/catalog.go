package service

import (
	"net/url"
	"strconv"

	"github.com/aussiebroadwan/amxprobe/internal/probe/domain"
)

// Guessed locations of purchase order events. Keys are the bare paths; the
// limit is added as a proper query parameter.
var purchaseOrderEventCandidates = []domain.Candidate{
	{Key: "/purchase-orders/events", Path: "/purchase-orders/events", Query: limit(50)},
	{Key: "/events?type=purchase-order", Path: "/events?type=purchase-order", Query: limit(50)},
	{Key: "/documents/events?documentType=PurchaseOrder", Path: "/documents/events?documentType=PurchaseOrder", Query: limit(50)},
	{Key: "/purchase-order-events", Path: "/purchase-order-events", Query: limit(50)},
}

// PurchaseOrderEventCandidates returns a copy of the flat probe catalog.
func PurchaseOrderEventCandidates() []domain.Candidate {
	return append([]domain.Candidate(nil), purchaseOrderEventCandidates...)
}

const (
	organizationsPath      = "/companies"
	purchaseOrdersPath     = "/purchase-orders"
	documentsPath          = "/documents"
	perOrganizationLimit   = 50
	eventsProbedPerOrg     = 5
	documentScanLimit      = 50
	statusEnumerationLimit = 100
	samplePurchaseOrders   = 3
	sampleStatusRecords    = 2
	samplePODocuments      = 3
)

// statusFilters are the status values tried when purchase order listings come back empty.
var statusFilters = []string{"pending", "waiting", "awaiting", "submitted", "draft"}

// EndpointProbe is a named single-call probe.
type EndpointProbe struct {
	Name     string
	Endpoint string // reported in results
	Path     string
	Query    url.Values
	Counted  bool // report the array length as count
}

var endpointProbes = []EndpointProbe{
	{Name: "companies", Endpoint: "/companies", Path: "/companies"},
	{Name: "documents", Endpoint: "/documents", Path: "/documents", Query: limit(20), Counted: true},
	{Name: "purchase-orders", Endpoint: "/purchase-orders", Path: "/purchase-orders", Query: limit(20), Counted: true},
	{Name: "bills", Endpoint: "/bills", Path: "/bills", Query: limit(20), Counted: true},
}

// EndpointProbes returns the single-call probe catalog.
func EndpointProbes() []EndpointProbe {
	return append([]EndpointProbe(nil), endpointProbes...)
}

func limit(n int) url.Values {
	return url.Values{"limit": {strconv.Itoa(n)}}
}
