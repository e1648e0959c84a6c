// Package calculator computes per-member balances from a sequence of
// transactions. It has no storage dependency; callers feed it a chain.
package calculator
