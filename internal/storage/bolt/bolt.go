// Package bolt provides a bbolt-backed implementation of storage.Repository.
//
// Layout:
//
//	accounts/<account id>                      -> codec account
//	transactions/<account id>/<transaction id> -> codec transaction
//	meta/schema_version                        -> codec.SchemaVersion
//
// Ids are stored as their raw 16 bytes, so ListAccounts returns accounts in
// key byte order.
package bolt

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/mmynk/flouze/internal/codec"
	"github.com/mmynk/flouze/internal/models"
	"github.com/mmynk/flouze/internal/storage"
)

// Ensure Store implements storage.Repository
var _ storage.Repository = (*Store)(nil)

// ErrSchemaMismatch is returned when a database was written with another codec layout.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Bucket names.
const (
	BucketAccounts     = "accounts"
	BucketTransactions = "transactions"
	BucketMeta         = "meta"
)

var keySchemaVersion = []byte("schema_version")

// Store represents the bbolt database wrapper.
type Store struct {
	db *bbolt.DB
}

// New opens (or creates) the database at dbPath and initializes buckets.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range []string{BucketAccounts, BucketTransactions, BucketMeta} {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return checkSchema(tx.Bucket([]byte(BucketMeta)))
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddAccount stores the account, replacing any previous value.
func (s *Store) AddAccount(ctx context.Context, account *models.Account) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketAccounts))
		if err := b.Put(accountKey(account.UUID), codec.MarshalAccount(account)); err != nil {
			return fmt.Errorf("failed to put account: %w", err)
		}
		return nil
	})
}

// GetAccount retrieves an account by ID.
func (s *Store) GetAccount(ctx context.Context, accountID models.AccountID) (*models.Account, error) {
	var account *models.Account
	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		account, err = getAccount(tx.Bucket([]byte(BucketAccounts)), accountID)
		return err
	})
	return account, err
}

// DeleteAccount removes the account record. Transactions are kept.
func (s *Store) DeleteAccount(ctx context.Context, accountID models.AccountID) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketAccounts))
		key := accountKey(accountID)
		if b.Get(key) == nil {
			return fmt.Errorf("account %s: %w", accountID, storage.ErrNoSuchAccount)
		}
		if err := b.Delete(key); err != nil {
			return fmt.Errorf("failed to delete account: %w", err)
		}
		return nil
	})
}

// ListAccounts returns all accounts in key order.
func (s *Store) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	accounts := []*models.Account{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(BucketAccounts)).ForEach(func(k, v []byte) error {
			account, err := codec.UnmarshalAccount(v)
			if err != nil {
				return fmt.Errorf("failed to decode account %x: %w", k, err)
			}
			accounts = append(accounts, account)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// SetLatestTransaction rewrites the account with a new head pointer.
func (s *Store) SetLatestTransaction(ctx context.Context, accountID models.AccountID, txID models.TransactionID) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketAccounts))
		account, err := getAccount(b, accountID)
		if err != nil {
			return err
		}
		account.LatestTransaction = txID
		if err := b.Put(accountKey(accountID), codec.MarshalAccount(account)); err != nil {
			return fmt.Errorf("failed to put account: %w", err)
		}
		return nil
	})
}

// AddTransaction stores the transaction in the account's nested bucket.
func (s *Store) AddTransaction(ctx context.Context, accountID models.AccountID, transaction *models.Transaction) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.Bucket([]byte(BucketTransactions)).CreateBucketIfNotExists(accountKey(accountID))
		if err != nil {
			return fmt.Errorf("failed to create transaction bucket: %w", err)
		}
		if err := b.Put(transactionKey(transaction.UUID), codec.MarshalTransaction(transaction)); err != nil {
			return fmt.Errorf("failed to put transaction: %w", err)
		}
		return nil
	})
}

// GetTransaction retrieves a transaction of an account.
func (s *Store) GetTransaction(ctx context.Context, accountID models.AccountID, txID models.TransactionID) (*models.Transaction, error) {
	var transaction *models.Transaction
	err := s.db.View(func(tx *bbolt.Tx) error {
		notFound := fmt.Errorf("transaction %s in account %s: %w", txID, accountID, storage.ErrNoSuchTransaction)

		b := tx.Bucket([]byte(BucketTransactions)).Bucket(accountKey(accountID))
		if b == nil {
			return notFound
		}
		data := b.Get(transactionKey(txID))
		if data == nil {
			return notFound
		}

		var err error
		transaction, err = codec.UnmarshalTransaction(data)
		if err != nil {
			return fmt.Errorf("failed to decode transaction %s: %w", txID, err)
		}
		return nil
	})
	return transaction, err
}

func getAccount(b *bbolt.Bucket, accountID models.AccountID) (*models.Account, error) {
	data := b.Get(accountKey(accountID))
	if data == nil {
		return nil, fmt.Errorf("account %s: %w", accountID, storage.ErrNoSuchAccount)
	}
	account, err := codec.UnmarshalAccount(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode account %s: %w", accountID, err)
	}
	return account, nil
}

func checkSchema(meta *bbolt.Bucket) error {
	data := meta.Get(keySchemaVersion)
	if data == nil {
		v := make([]byte, 8)
		binary.BigEndian.PutUint64(v, codec.SchemaVersion)
		return meta.Put(keySchemaVersion, v)
	}
	if len(data) != 8 || binary.BigEndian.Uint64(data) != codec.SchemaVersion {
		return fmt.Errorf("%w: database has %x, want %d", ErrSchemaMismatch, data, codec.SchemaVersion)
	}
	return nil
}

// accountKey returns the raw 16 bytes of the id. bbolt rejects empty keys,
// so the empty id maps to 16 zero bytes rather than to models.AccountID.Bytes.
func accountKey(id models.AccountID) []byte {
	k := [models.IDSize]byte(id)
	return k[:]
}

func transactionKey(id models.TransactionID) []byte {
	k := [models.IDSize]byte(id)
	return k[:]
}
