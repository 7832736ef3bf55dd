package service

import (
	"context"
	"time"

	"github.com/aussiebroadwan/amxprobe/internal/probe/domain"
	"github.com/aussiebroadwan/amxprobe/internal/probe/store"
	"github.com/aussiebroadwan/amxprobe/pkg/idx"
	"github.com/aussiebroadwan/amxprobe/pkg/slogx"
)

// JournalService writes the activity journal. Recording is best effort: a
// failed write is logged and never fails the operation being recorded.
// A nil *JournalService is a valid no-op journal.
type JournalService struct {
	Store store.Store
}

// Record stamps and stores a single entry.
func (j *JournalService) Record(ctx context.Context, e domain.JournalEntry) {
	j.RecordBatch(ctx, []domain.JournalEntry{e})
}

// RecordBatch stores entries atomically.
func (j *JournalService) RecordBatch(ctx context.Context, entries []domain.JournalEntry) {
	if j == nil || j.Store == nil || len(entries) == 0 {
		return
	}

	now := time.Now().UTC()
	for i := range entries {
		stamp(&entries[i], now)
	}

	// The caller's request may already be gone; the journal write should not be.
	ctx = context.WithoutCancel(ctx)

	err := j.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, e := range entries {
			if err := tx.Journal().AppendEntry(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to write journal", "entries", len(entries), "error", err)
	}
}

// Recent returns up to limit entries, newest first, optionally filtered by kind.
func (j *JournalService) Recent(
	ctx context.Context,
	kind domain.JournalKind,
	limit int,
) ([]domain.JournalEntry, error) {
	if j == nil || j.Store == nil {
		return nil, nil
	}
	return j.Store.Journal().ListRecentEntries(ctx, kind, limit)
}

// Prune deletes entries older than retention.
func (j *JournalService) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	if j == nil || j.Store == nil {
		return 0, nil
	}
	return j.Store.Journal().DeleteEntriesBefore(ctx, time.Now().Add(-retention))
}

func stamp(e *domain.JournalEntry, now time.Time) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.ID == "" {
		e.ID = idx.NewAt(e.CreatedAt).String()
	}
}
