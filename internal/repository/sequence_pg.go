package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/saraye/internal/ids"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGSequence keeps one counter row per prefix in id_sequences. The upsert takes
// a row lock, so concurrent callers are serialized by PostgreSQL.
type PGSequence struct {
	db *pgxpool.Pool
}

func NewSequence(db *pgxpool.Pool) *PGSequence {
	return &PGSequence{db: db}
}

func (s *PGSequence) NextValue(ctx context.Context, prefix string) (int64, error) {
	return nextValue(ctx, s.db, prefix)
}

// seedSources maps each prefix to the table and column holding its ids.
var seedSources = map[string]struct{ table, column string }{
	ids.PrefixBooking:  {"bookings", "id"},
	ids.PrefixProperty: {"properties", "id"},
	ids.PrefixAddress:  {"addresses", "id"},
	ids.PrefixPayment:  {"payments", "id"},
	ids.PrefixReview:   {"reviews", "id"},
	ids.PrefixReport:   {"reports", "id"},
	"G":                {"users", "id"},
	"H":                {"users", "id"},
	"A":                {"users", "id"},
}

// SeedFromTables creates missing counters starting at the highest id already
// stored for that prefix. Existing counters are left alone.
func (s *PGSequence) SeedFromTables(ctx context.Context) error {
	for prefix, src := range seedSources {
		query := fmt.Sprintf(`INSERT INTO id_sequences (prefix, last_value)
			SELECT $1, COALESCE(MAX(CAST(SUBSTRING(%[2]s FROM $2) AS BIGINT)), 0) FROM %[1]s WHERE %[2]s ~ $3
			ON CONFLICT (prefix) DO NOTHING`, src.table, src.column)
		digits := fmt.Sprintf("^%s([0-9]+)$", prefix)
		if _, err := s.db.Exec(ctx, query, prefix, digits, digits); err != nil {
			return fmt.Errorf("seed %s sequence: %w", prefix, classify(err))
		}
	}
	return nil
}

func nextValue(ctx context.Context, q querier, prefix string) (int64, error) {
	var n int64
	err := q.QueryRow(ctx, `INSERT INTO id_sequences (prefix, last_value) VALUES ($1, 1)
		ON CONFLICT (prefix) DO UPDATE SET last_value = id_sequences.last_value + 1
		RETURNING last_value`, prefix).Scan(&n)
	if err != nil {
		return 0, classify(err)
	}
	return n, nil
}

func nextID(ctx context.Context, q querier, prefix string) (string, error) {
	n, err := nextValue(ctx, q, prefix)
	if err != nil {
		return "", err
	}
	return ids.Format(prefix, n), nil
}

var _ ids.Sequence = (*PGSequence)(nil)
