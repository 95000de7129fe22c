package sequence

import (
    "context"
    "fmt"
    "time"
)

// CounterStore advances the persisted counter for one (kind, year) pair and
// returns the new value.  Implementations must make the read-increment-write
// a single indivisible operation: two concurrent calls for the same pair may
// never return the same value.  On error no value has been consumed.
type CounterStore interface {
    Next(ctx context.Context, kind Kind, year string) (uint64, error)
}

// Generator issues formatted business numbers.  It derives the two-digit
// year from its clock, asks the counter store for the next value and formats
// the result.  All coordination lives in the store; the generator itself is
// stateless and safe for concurrent use.
type Generator struct {
    store CounterStore
    now   func() time.Time
}

// NewGenerator returns a Generator backed by the given store.
func NewGenerator(store CounterStore) *Generator {
    return &Generator{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// NewGeneratorAt is like NewGenerator but with an explicit clock.  Used by
// tests to pin the year.
func NewGeneratorAt(store CounterStore, now func() time.Time) *Generator {
    return &Generator{store: store, now: now}
}

// Next issues the next number for the given kind.  A failed store call
// propagates as-is and consumes nothing; a successful one durably advanced
// the counter, so the returned number must be treated as spent even if the
// caller fails afterwards.
func (g *Generator) Next(ctx context.Context, kind Kind) (string, error) {
    if !kind.Valid() {
        return "", fmt.Errorf("sequence: unknown kind %q", kind)
    }
    year := g.yearKey()
    n, err := g.store.Next(ctx, kind, year)
    if err != nil {
        return "", fmt.Errorf("sequence: next %s/%s: %w", kind, year, err)
    }
    return Format(kind, year, n), nil
}

// yearKey returns the last two digits of the current year, zero-padded.
func (g *Generator) yearKey() string {
    return fmt.Sprintf("%02d", g.now().Year()%100)
}
