// Package sequence issues the year-scoped business numbers handed out for
// customers and orders.  A number has the shape {prefix}{YY}-{NNNNNNN}:
// a one-letter kind prefix, the two-digit year the number was issued in,
// and a seven-digit zero-padded sequence that restarts at 1 every year.
package sequence

import (
    "fmt"
    "regexp"
    "strconv"
)

// Kind selects which counter a number is drawn from.  Each kind has its own
// sequence table, so customer and order numbers advance independently.
type Kind string

const (
    KindCustomer Kind = "customer"
    KindOrder    Kind = "order"
)

// Prefix returns the single letter leading a formatted number.
func (k Kind) Prefix() string {
    if k == KindOrder {
        return "O"
    }
    return "C"
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
    return k == KindCustomer || k == KindOrder
}

var numberPattern = regexp.MustCompile(`^([CO])(\d{2})-(\d{7})$`)

// Format renders a business number from its parts, e.g.
// Format(KindCustomer, "25", 1) -> "C25-0000001".
func Format(kind Kind, year string, n uint64) string {
    return fmt.Sprintf("%s%s-%07d", kind.Prefix(), year, n)
}

// IsNumber reports whether s has the shape of an issued number.
func IsNumber(s string) bool {
    return numberPattern.MatchString(s)
}

// Parse splits a formatted number back into kind, two-digit year and
// sequence value.  It returns an error for anything that does not match
// the issued format exactly.
func Parse(s string) (Kind, string, uint64, error) {
    m := numberPattern.FindStringSubmatch(s)
    if m == nil {
        return "", "", 0, fmt.Errorf("sequence: malformed number %q", s)
    }
    kind := KindCustomer
    if m[1] == "O" {
        kind = KindOrder
    }
    n, err := strconv.ParseUint(m[3], 10, 64)
    if err != nil {
        return "", "", 0, fmt.Errorf("sequence: malformed number %q", s)
    }
    return kind, m[2], n, nil
}
