package domain

import "time"

// JournalKind classifies activity journal entries.
type JournalKind string

const (
	JournalAuthStart     JournalKind = "auth_start"
	JournalCallback      JournalKind = "callback"
	JournalTokenExchange JournalKind = "token_exchange"
	JournalTokenRefresh  JournalKind = "token_refresh"
	JournalProbe         JournalKind = "probe"
	JournalSmokeTest     JournalKind = "smoke_test"
)

// JournalEntry is one persisted activity record. It never holds token material,
// only a fingerprint of the access token in use.
type JournalEntry struct {
	ID               string      `json:"id"`
	Kind             JournalKind `json:"kind"`
	Endpoint         string      `json:"endpoint,omitempty"`
	Success          bool        `json:"success"`
	StatusCode       int         `json:"statusCode,omitempty"`
	Detail           string      `json:"detail,omitempty"`
	TokenFingerprint string      `json:"tokenFingerprint,omitempty"`
	DurationMS       int64       `json:"durationMs"`
	CreatedAt        time.Time   `json:"createdAt"`
}
