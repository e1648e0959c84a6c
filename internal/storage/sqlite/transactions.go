package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/flouze/internal/models"
	"github.com/mmynk/flouze/internal/storage"
)

const (
	sharePayedBy  = "by"
	sharePayedFor = "for"
)

// AddTransaction inserts or fully replaces a transaction and its shares.
func (s *SQLiteStore) AddTransaction(ctx context.Context, accountID models.AccountID, transaction *models.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	accountKey := key(accountID)
	txKey := key(transaction.UUID)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (account_id, id, parent, amount, label, timestamp, deleted, replaces)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(account_id, id) DO UPDATE SET
		     parent = excluded.parent,
		     amount = excluded.amount,
		     label = excluded.label,
		     timestamp = excluded.timestamp,
		     deleted = excluded.deleted,
		     replaces = excluded.replaces`,
		accountKey, txKey, ref(transaction.Parent.Bytes()), transaction.Amount,
		transaction.Label, transaction.Timestamp, transaction.Deleted, ref(transaction.Replaces.Bytes()),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert transaction: %w", err)
	}

	// Replace shares
	_, err = tx.ExecContext(ctx,
		"DELETE FROM transaction_shares WHERE account_id = ? AND transaction_id = ?",
		accountKey, txKey,
	)
	if err != nil {
		return fmt.Errorf("failed to clear shares: %w", err)
	}

	insertShare := func(kind string, position int, person models.PersonID, amount int64) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO transaction_shares (account_id, transaction_id, kind, position, person_id, amount)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			accountKey, txKey, kind, position, ref(person.Bytes()), amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert share: %w", err)
		}
		return nil
	}
	for i, p := range transaction.PayedBy {
		if err := insertShare(sharePayedBy, i, p.Person, p.Amount); err != nil {
			return err
		}
	}
	for i, p := range transaction.PayedFor {
		if err := insertShare(sharePayedFor, i, p.Person, p.Amount); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetTransaction retrieves a transaction of an account, including its shares.
func (s *SQLiteStore) GetTransaction(ctx context.Context, accountID models.AccountID, txID models.TransactionID) (*models.Transaction, error) {
	var parent, replaces []byte
	transaction := &models.Transaction{UUID: txID}

	err := s.db.QueryRowContext(ctx,
		`SELECT parent, amount, label, timestamp, deleted, replaces
		 FROM transactions WHERE account_id = ? AND id = ?`,
		key(accountID), key(txID),
	).Scan(&parent, &transaction.Amount, &transaction.Label, &transaction.Timestamp, &transaction.Deleted, &replaces)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("transaction %s in account %s: %w", txID, accountID, storage.ErrNoSuchTransaction)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	if transaction.Parent, err = models.TransactionIDFromBytes(parent); err != nil {
		return nil, fmt.Errorf("failed to decode parent: %w", err)
	}
	if transaction.Replaces, err = models.TransactionIDFromBytes(replaces); err != nil {
		return nil, fmt.Errorf("failed to decode replaces: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, person_id, amount FROM transaction_shares
		 WHERE account_id = ? AND transaction_id = ? ORDER BY kind, position`,
		key(accountID), key(txID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var person []byte
		var amount int64
		if err := rows.Scan(&kind, &person, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		personID, err := models.PersonIDFromBytes(person)
		if err != nil {
			return nil, fmt.Errorf("failed to decode share person: %w", err)
		}

		switch kind {
		case sharePayedBy:
			transaction.PayedBy = append(transaction.PayedBy, models.PayedBy{Person: personID, Amount: amount})
		case sharePayedFor:
			transaction.PayedFor = append(transaction.PayedFor, models.PayedFor{Person: personID, Amount: amount})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shares: %w", err)
	}

	return transaction, nil
}
