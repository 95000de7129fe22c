package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lukaswerth/business-number-service/internal/sequence"
)

// SequenceRepo is the persisted counter behind the number generator.  One
// row per two-digit year and kind, advanced by exactly one on each call.
type SequenceRepo struct{ DB *sql.DB }

func NewSequenceRepo(db *sql.DB) *SequenceRepo { return &SequenceRepo{DB: db} }

// Table names are a closed map keyed by kind.  Kinds never come from user
// input, so interpolating the table name into the statement is safe.
var sequenceTables = map[sequence.Kind]string{
	sequence.KindCustomer: "customer_sequences",
	sequence.KindOrder:    "order_sequences",
}

// Next atomically increments the counter for (kind, year) and returns the
// new value.  The whole read-increment-write is one INSERT ... ON DUPLICATE
// KEY UPDATE round trip: the first call of a year inserts the row with 1,
// later calls bump last_sequence under the row lock MySQL takes for the
// upsert.  LAST_INSERT_ID(expr) echoes the fresh value back through
// Result.LastInsertId, so no second query can race in between.  On error
// nothing was incremented.
func (r *SequenceRepo) Next(ctx context.Context, kind sequence.Kind, year string) (uint64, error) {
	table, ok := sequenceTables[kind]
	if !ok {
		return 0, fmt.Errorf("sequence repo: unknown kind %q", kind)
	}
	q := fmt.Sprintf(
		"INSERT INTO %s (year, last_sequence) VALUES (?, LAST_INSERT_ID(1)) "+
			"ON DUPLICATE KEY UPDATE last_sequence = LAST_INSERT_ID(last_sequence + 1)",
		table)
	res, err := r.DB.ExecContext(ctx, q, year)
	if err != nil {
		return 0, fmt.Errorf("sequence repo: upsert %s: %w", table, err)
	}
	n, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sequence repo: read new value: %w", err)
	}
	return uint64(n), nil
}

// Current returns the last issued value for (kind, year) without advancing
// anything.  Years with no issuance yet report 0.
func (r *SequenceRepo) Current(ctx context.Context, kind sequence.Kind, year string) (uint64, error) {
	table, ok := sequenceTables[kind]
	if !ok {
		return 0, fmt.Errorf("sequence repo: unknown kind %q", kind)
	}
	var n uint64
	err := r.DB.QueryRowContext(ctx,
		fmt.Sprintf("SELECT last_sequence FROM %s WHERE year=? LIMIT 1", table),
		year).Scan(&n)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("sequence repo: read %s: %w", table, err)
	}
	return n, nil
}
