package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Asad-28/weather-app/internal/modules/weather/types"
)

// tsLayout is fixed width so that ORDER BY ts sorts chronologically.
const tsLayout = "2006-01-02T15:04:05.000000000Z07:00"

//go:embed sql/insert-lookup.sql
var insertLookupSQL string

//go:embed sql/get-recent-lookups.sql
var getRecentLookupsSQL string

//go:embed sql/get-lookups-by-city.sql
var getLookupsByCitySQL string

// LookupRepository is the append-only journal of lookups. It is never read to
// answer a weather request.
type LookupRepository interface {
	InsertLookup(ctx context.Context, l types.Lookup) error
	GetRecentLookups(ctx context.Context, limit int) ([]types.Lookup, error)
	GetLookupsByCity(ctx context.Context, city string, limit int) ([]types.Lookup, error)
}

type repositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) LookupRepository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) InsertLookup(ctx context.Context, l types.Lookup) error {
	if l.ID == "" {
		return fmt.Errorf("insert lookup: id is required")
	}
	switch l.Outcome {
	case types.OutcomeOK, types.OutcomeConnectionError, types.OutcomeNotFound:
	default:
		return fmt.Errorf("insert lookup: unknown outcome %q", l.Outcome)
	}

	ts := l.Time.UTC().Format(tsLayout)
	_, err := r.db.ExecContext(ctx, insertLookupSQL, l.ID, l.City, cityKey(l.City), string(l.Outcome), l.Summary, l.Details, ts)
	if err != nil {
		return fmt.Errorf("insert lookup: %w", err)
	}
	return nil
}

func (r *repositoryImpl) GetRecentLookups(ctx context.Context, limit int) ([]types.Lookup, error) {
	rows, err := r.db.QueryContext(ctx, getRecentLookupsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close recent lookups rows", "error", err)
		}
	}()
	return scanLookups(rows)
}

func (r *repositoryImpl) GetLookupsByCity(ctx context.Context, city string, limit int) ([]types.Lookup, error) {
	rows, err := r.db.QueryContext(ctx, getLookupsByCitySQL, cityKey(city), limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close city lookups rows", "error", err)
		}
	}()
	return scanLookups(rows)
}

// cityKey folds case for any script; SQLite NOCASE only knows ASCII.
func cityKey(city string) string {
	return strings.ToLower(city)
}

func scanLookups(rows *sql.Rows) ([]types.Lookup, error) {
	out := []types.Lookup{}
	for rows.Next() {
		var l types.Lookup
		var outcome, ts string
		if err := rows.Scan(&l.ID, &l.City, &outcome, &l.Summary, &l.Details, &ts); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			var err2 error
			t, err2 = time.Parse(time.RFC3339, ts)
			if err2 != nil {
				return nil, fmt.Errorf("parse timestamp %q: RFC3339Nano: %w; RFC3339: %w", ts, err, err2)
			}
		}
		l.Outcome = types.Outcome(outcome)
		l.Time = t
		out = append(out, l)
	}
	return out, rows.Err()
}
