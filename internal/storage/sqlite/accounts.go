package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/flouze/internal/models"
	"github.com/mmynk/flouze/internal/storage"
)

// AddAccount inserts or fully replaces an account and its member list.
func (s *SQLiteStore) AddAccount(ctx context.Context, account *models.Account) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	accountKey := key(account.UUID)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO accounts (id, label, latest_transaction) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET label = excluded.label, latest_transaction = excluded.latest_transaction`,
		accountKey, account.Label, ref(account.LatestTransaction.Bytes()),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert account: %w", err)
	}

	// Replace members
	if _, err := tx.ExecContext(ctx, "DELETE FROM account_members WHERE account_id = ?", accountKey); err != nil {
		return fmt.Errorf("failed to clear members: %w", err)
	}
	for i, m := range account.Members {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO account_members (account_id, position, person_id, name) VALUES (?, ?, ?, ?)",
			accountKey, i, ref(m.UUID.Bytes()), m.Name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetAccount retrieves an account by ID, including its members.
func (s *SQLiteStore) GetAccount(ctx context.Context, accountID models.AccountID) (*models.Account, error) {
	var latest []byte
	var label string
	err := s.db.QueryRowContext(ctx,
		"SELECT label, latest_transaction FROM accounts WHERE id = ?",
		key(accountID),
	).Scan(&label, &latest)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("account %s: %w", accountID, storage.ErrNoSuchAccount)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	account := &models.Account{UUID: accountID, Label: label}
	if account.LatestTransaction, err = models.TransactionIDFromBytes(latest); err != nil {
		return nil, fmt.Errorf("failed to decode latest transaction: %w", err)
	}
	if account.Members, err = s.getMembers(ctx, accountID); err != nil {
		return nil, err
	}

	return account, nil
}

// DeleteAccount removes an account and its member rows. Transactions are kept.
func (s *SQLiteStore) DeleteAccount(ctx context.Context, accountID models.AccountID) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM accounts WHERE id = ?", key(accountID))
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("account %s: %w", accountID, storage.ErrNoSuchAccount)
	}

	return nil
}

// ListAccounts retrieves all accounts in first-insertion order.
func (s *SQLiteStore) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, label, latest_transaction FROM accounts ORDER BY seq",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []*models.Account{}
	for rows.Next() {
		var id, latest []byte
		account := &models.Account{}
		if err := rows.Scan(&id, &account.Label, &latest); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		if account.UUID, err = models.AccountIDFromBytes(id); err != nil {
			return nil, fmt.Errorf("failed to decode account id: %w", err)
		}
		if account.LatestTransaction, err = models.TransactionIDFromBytes(latest); err != nil {
			return nil, fmt.Errorf("failed to decode latest transaction: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}
	rows.Close()

	// Members are loaded once the account cursor is released (single connection)
	for _, account := range accounts {
		if account.Members, err = s.getMembers(ctx, account.UUID); err != nil {
			return nil, err
		}
	}

	return accounts, nil
}

// SetLatestTransaction updates only the latest_transaction column.
func (s *SQLiteStore) SetLatestTransaction(ctx context.Context, accountID models.AccountID, txID models.TransactionID) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE accounts SET latest_transaction = ? WHERE id = ?",
		ref(txID.Bytes()), key(accountID),
	)
	if err != nil {
		return fmt.Errorf("failed to set latest transaction: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("account %s: %w", accountID, storage.ErrNoSuchAccount)
	}

	return nil
}

func (s *SQLiteStore) getMembers(ctx context.Context, accountID models.AccountID) ([]models.Person, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT person_id, name FROM account_members WHERE account_id = ? ORDER BY position",
		key(accountID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []models.Person
	for rows.Next() {
		var id []byte
		var m models.Person
		if err := rows.Scan(&id, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		if m.UUID, err = models.PersonIDFromBytes(id); err != nil {
			return nil, fmt.Errorf("failed to decode member id: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}
