package service

import (
	"sync"

	"github.com/aussiebroadwan/amxprobe/internal/probe/domain"
)

// DefaultCallbackCapacity is how many callback records are retained.
const DefaultCallbackCapacity = 10

// CallbackHistory is a bounded newest-first list of callback records.
type CallbackHistory struct {
	mu       sync.Mutex
	capacity int
	records  []domain.CallbackRecord
}

func NewCallbackHistory(capacity int) *CallbackHistory {
	if capacity <= 0 {
		capacity = DefaultCallbackCapacity
	}
	return &CallbackHistory{capacity: capacity}
}

// Add inserts rec at the head, evicting the oldest record on overflow.
func (h *CallbackHistory) Add(rec domain.CallbackRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.records = append([]domain.CallbackRecord{rec}, h.records...)
	if len(h.records) > h.capacity {
		h.records = h.records[:h.capacity]
	}
}

// List returns a copy of the records, newest first.
func (h *CallbackHistory) List() []domain.CallbackRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]domain.CallbackRecord, len(h.records))
	copy(out, h.records)
	return out
}

func (h *CallbackHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.records)
}

// Clear empties the history.
func (h *CallbackHistory) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.records = nil
}
