// Package memory provides an in-memory implementation of storage.Repository.
// It is used by tests and for temporary, throwaway ledgers.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mmynk/flouze/internal/models"
	"github.com/mmynk/flouze/internal/storage"
)

// Ensure Store implements storage.Repository
var _ storage.Repository = (*Store)(nil)

type txKey struct {
	account models.AccountID
	tx      models.TransactionID
}

// Store keeps accounts and transactions in maps guarded by a RWMutex.
// Accounts are listed in first-insertion order.
type Store struct {
	mu           sync.RWMutex
	accounts     map[models.AccountID]*models.Account
	order        []models.AccountID
	transactions map[txKey]*models.Transaction
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		accounts:     make(map[models.AccountID]*models.Account),
		transactions: make(map[txKey]*models.Transaction),
	}
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

// AddAccount stores a copy of the account, replacing any previous value.
func (s *Store) AddAccount(ctx context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.UUID]; !exists {
		s.order = append(s.order, account.UUID)
	}
	s.accounts[account.UUID] = account.Clone()
	return nil
}

// GetAccount returns a copy of the stored account.
func (s *Store) GetAccount(ctx context.Context, accountID models.AccountID) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", accountID, storage.ErrNoSuchAccount)
	}
	return account.Clone(), nil
}

// DeleteAccount removes the account record. Transactions are kept.
func (s *Store) DeleteAccount(ctx context.Context, accountID models.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[accountID]; !ok {
		return fmt.Errorf("account %s: %w", accountID, storage.ErrNoSuchAccount)
	}
	delete(s.accounts, accountID)
	for i, id := range s.order {
		if id == accountID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// ListAccounts returns copies of all accounts in first-insertion order.
func (s *Store) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]*models.Account, 0, len(s.order))
	for _, id := range s.order {
		accounts = append(accounts, s.accounts[id].Clone())
	}
	return accounts, nil
}

// SetLatestTransaction updates only the head pointer of the account.
func (s *Store) SetLatestTransaction(ctx context.Context, accountID models.AccountID, txID models.TransactionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return fmt.Errorf("account %s: %w", accountID, storage.ErrNoSuchAccount)
	}
	account.LatestTransaction = txID
	return nil
}

// AddTransaction stores a copy of the transaction, replacing any previous value.
func (s *Store) AddTransaction(ctx context.Context, accountID models.AccountID, transaction *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions[txKey{account: accountID, tx: transaction.UUID}] = transaction.Clone()
	return nil
}

// GetTransaction returns a copy of the stored transaction.
func (s *Store) GetTransaction(ctx context.Context, accountID models.AccountID, txID models.TransactionID) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.transactions[txKey{account: accountID, tx: txID}]
	if !ok {
		return nil, fmt.Errorf("transaction %s in account %s: %w", txID, accountID, storage.ErrNoSuchTransaction)
	}
	return tx.Clone(), nil
}
