// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/flouze/internal/models"
)

// Repository defines the storage contract for accounts and their transactions.
// This abstraction allows swapping storage backends (memory, bbolt, SQLite)
// without changing the ledger or service layers.
//
// Values returned by a Repository are independent copies: mutating them does
// not affect storage until they are added again.
type Repository interface {
	// AddAccount stores the account under account.UUID, replacing any
	// previous value.
	AddAccount(ctx context.Context, account *models.Account) error

	// GetAccount retrieves an account by ID.
	// Returns ErrNoSuchAccount if the account is not found.
	GetAccount(ctx context.Context, accountID models.AccountID) (*models.Account, error)

	// DeleteAccount removes an account record. Its transactions are left in place.
	// Returns ErrNoSuchAccount if the account is not found.
	DeleteAccount(ctx context.Context, accountID models.AccountID) error

	// ListAccounts returns every stored account. The order is backend
	// specific but stable for a given backend state.
	ListAccounts(ctx context.Context) ([]*models.Account, error)

	// SetLatestTransaction moves the head of an account's chain.
	// Returns ErrNoSuchAccount if the account is not found.
	SetLatestTransaction(ctx context.Context, accountID models.AccountID, txID models.TransactionID) error

	// AddTransaction stores the transaction under (accountID, transaction.UUID),
	// replacing any previous value. It neither validates Parent nor moves
	// the account's head.
	AddTransaction(ctx context.Context, accountID models.AccountID, transaction *models.Transaction) error

	// GetTransaction retrieves a transaction of an account.
	// Returns ErrNoSuchTransaction if it is not found for that account.
	GetTransaction(ctx context.Context, accountID models.AccountID, txID models.TransactionID) (*models.Transaction, error)

	// Close releases any resources held by the repository.
	Close() error
}
