package domain

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

// Candidate is one guessed API request. Key labels the outcome in results.
type Candidate struct {
	Key   string
	Path  string
	Query url.Values
}

// Outcome is the result of attempting a Candidate. Failures are data.
type Outcome struct {
	Key      string
	Success  bool
	Status   int
	Count    int
	Data     any
	Headers  http.Header
	Error    string
	Err      error
	Duration time.Duration
}

// MarshalJSON renders {success, count, data} or {success:false, error}.
func (o Outcome) MarshalJSON() ([]byte, error) {
	if !o.Success {
		return json.Marshal(struct {
			Success bool   `json:"success"`
			Status  int    `json:"status,omitempty"`
			Error   string `json:"error"`
		}{false, o.Status, o.Error})
	}
	return json.Marshal(struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
		Data    any  `json:"data"`
	}{true, o.Count, o.Data})
}

// OrganizationProbe is one branch of the per-organization probe tree.
type OrganizationProbe struct {
	OrganizationID string
	RecordCount    int
	Data           any
	Events         map[string]any
	Error          string
}

// MarshalJSON renders the success shape or {organizationId, error}.
func (p OrganizationProbe) MarshalJSON() ([]byte, error) {
	if p.Error != "" {
		return json.Marshal(struct {
			OrganizationID string `json:"organizationId"`
			Error          string `json:"error"`
		}{p.OrganizationID, p.Error})
	}

	data := p.Data
	if data == nil {
		data = []any{}
	}
	return json.Marshal(struct {
		OrganizationID string         `json:"organizationId"`
		RecordCount    int            `json:"recordCount"`
		Data           any            `json:"data"`
		Events         map[string]any `json:"events,omitempty"`
	}{p.OrganizationID, p.RecordCount, data, p.Events})
}
