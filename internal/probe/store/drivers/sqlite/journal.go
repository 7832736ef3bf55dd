package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aussiebroadwan/amxprobe/internal/probe/domain"
)

type journalRepo struct {
	q querier
}

const journalColumns = `id, kind, endpoint, success, status_code, detail, token_fingerprint, duration_ms, created_at`

func (r *journalRepo) AppendEntry(ctx context.Context, e domain.JournalEntry) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO journal_entries (`+journalColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		string(e.Kind),
		mapStringNull(e.Endpoint),
		e.Success,
		e.StatusCode,
		mapStringNull(e.Detail),
		mapStringNull(e.TokenFingerprint),
		e.DurationMS,
		e.CreatedAt.UTC().UnixMilli(),
	)
	return err
}

func (r *journalRepo) GetEntry(ctx context.Context, id string) (domain.JournalEntry, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+journalColumns+` FROM journal_entries WHERE id = ?`, id)

	e, err := scanEntry(row)
	if err != nil {
		return domain.JournalEntry{}, mapNotFound(err)
	}
	return e, nil
}

func (r *journalRepo) ListRecentEntries(
	ctx context.Context,
	kind domain.JournalKind,
	limit int,
) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.q.QueryContext(ctx,
		`SELECT `+journalColumns+` FROM journal_entries
		 WHERE (? = '' OR kind = ?)
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		string(kind), string(kind), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.JournalEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *journalRepo) CountEntries(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM journal_entries`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *journalRepo) DeleteEntriesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM journal_entries WHERE created_at < ?`, cutoff.UTC().UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (domain.JournalEntry, error) {
	var (
		e           domain.JournalEntry
		kind        string
		endpoint    sql.NullString
		detail      sql.NullString
		fingerprint sql.NullString
		createdAt   int64
	)

	if err := s.Scan(
		&e.ID,
		&kind,
		&endpoint,
		&e.Success,
		&e.StatusCode,
		&detail,
		&fingerprint,
		&e.DurationMS,
		&createdAt,
	); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("scan journal entry: %w", err)
	}

	e.Kind = domain.JournalKind(kind)
	e.Endpoint = mapNullString(endpoint)
	e.Detail = mapNullString(detail)
	e.TokenFingerprint = mapNullString(fingerprint)
	e.CreatedAt = time.UnixMilli(createdAt).UTC()
	return e, nil
}
