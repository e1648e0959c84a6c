// Package ledger walks an account's transaction chain and derives
// balances from it. It works against any storage.Repository.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/mmynk/flouze/internal/models"
	"github.com/mmynk/flouze/internal/storage"
)

// ErrCorruptChain is returned when a chain's parent links loop back on themselves.
var ErrCorruptChain = errors.New("corrupt transaction chain")

// Chain is a lazy, newest-first walk over an account's transactions,
// following Parent links from the account's LatestTransaction to the root.
//
// It is used like sql.Rows:
//
//	chain := ledger.NewChain(repo, account)
//	for chain.Next(ctx) {
//		tx := chain.Transaction()
//		...
//	}
//	if err := chain.Err(); err != nil {
//		...
//	}
//
// Every transaction ever linked in is returned, including ones marked
// Deleted or superseded through Replaces. A Chain is not restartable and
// must not be shared between goroutines.
type Chain struct {
	repo      storage.Repository
	accountID models.AccountID
	cursor    models.TransactionID
	seen      map[models.TransactionID]struct{}
	current   *models.Transaction
	err       error
	done      bool
}

// NewChain starts a walk at account.LatestTransaction.
func NewChain(repo storage.Repository, account *models.Account) *Chain {
	return &Chain{
		repo:      repo,
		accountID: account.UUID,
		cursor:    account.LatestTransaction,
		seen:      make(map[models.TransactionID]struct{}),
	}
}

// Next fetches the next transaction. It returns false once the root has been
// passed or a fetch failed; Err distinguishes the two.
func (c *Chain) Next(ctx context.Context) bool {
	c.current = nil
	if c.done {
		return false
	}
	if c.cursor.IsZero() {
		c.done = true
		return false
	}
	if _, ok := c.seen[c.cursor]; ok {
		c.fail(fmt.Errorf("%w: transaction %s reached twice in account %s", ErrCorruptChain, c.cursor, c.accountID))
		return false
	}

	tx, err := c.repo.GetTransaction(ctx, c.accountID, c.cursor)
	if err != nil {
		c.fail(err)
		return false
	}

	c.seen[c.cursor] = struct{}{}
	c.cursor = tx.Parent
	c.current = tx
	return true
}

// Transaction returns the transaction fetched by the last successful Next.
func (c *Chain) Transaction() *models.Transaction {
	return c.current
}

// Err returns the error that ended the walk, if any.
// A dangling parent surfaces as storage.ErrNoSuchTransaction.
func (c *Chain) Err() error {
	return c.err
}

// All adapts the chain to a range-over-func sequence. A failure is yielded
// once as (nil, err) and ends the sequence.
func (c *Chain) All(ctx context.Context) iter.Seq2[*models.Transaction, error] {
	return func(yield func(*models.Transaction, error) bool) {
		for c.Next(ctx) {
			if !yield(c.current, nil) {
				return
			}
		}
		if c.err != nil {
			yield(nil, c.err)
		}
	}
}

func (c *Chain) fail(err error) {
	c.err = err
	c.done = true
}
