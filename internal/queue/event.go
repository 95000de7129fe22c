// Package queue defines message payloads exchanged over the message broker.
package queue

// NumberIssuedEvent is published after a business number has been issued and
// its entity row stored.  It carries enough information for downstream
// consumers to log or trigger analytics without querying the primary
// database.
type NumberIssuedEvent struct {
    Kind     string `json:"kind"`      // "customer" or "order"
    Number   string `json:"number"`    // formatted identifier, e.g. "C25-0000001"
    Year     string `json:"year"`      // two-digit year scope
    Sequence uint64 `json:"sequence"`  // raw counter value behind the number
    IssuedBy string `json:"issued_by"` // username of the authenticated caller
    IssuedAt string `json:"issued_at"` // RFC3339 UTC timestamp
}
