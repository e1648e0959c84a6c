package storage

import "errors"

var (
	// ErrNoSuchAccount is returned when an account ID is not present.
	ErrNoSuchAccount = errors.New("no such account")

	// ErrNoSuchTransaction is returned when an (account, transaction) pair is not present.
	ErrNoSuchTransaction = errors.New("no such transaction")
)
