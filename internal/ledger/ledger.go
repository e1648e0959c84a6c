package ledger

import (
	"context"
	"fmt"

	"github.com/mmynk/flouze/internal/calculator"
	"github.com/mmynk/flouze/internal/models"
	"github.com/mmynk/flouze/internal/storage"
)

// ListTransactions returns the full chain of an account, newest first.
func ListTransactions(ctx context.Context, repo storage.Repository, accountID models.AccountID) ([]*models.Transaction, error) {
	account, err := repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	var txs []*models.Transaction
	for tx, err := range NewChain(repo, account).All(ctx) {
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// AppendTransaction stores tx and makes it the head of the account's chain.
// The caller is responsible for tx.Parent pointing at the previous head.
//
// An unknown account is refused before anything is written. The two writes
// are not atomic: if the account is deleted in between, or advancing the
// head fails, tx stays stored but unreachable from the chain.
func AppendTransaction(ctx context.Context, repo storage.Repository, accountID models.AccountID, tx *models.Transaction) error {
	if _, err := repo.GetAccount(ctx, accountID); err != nil {
		return err
	}
	if err := repo.AddTransaction(ctx, accountID, tx); err != nil {
		return fmt.Errorf("failed to add transaction: %w", err)
	}
	if err := repo.SetLatestTransaction(ctx, accountID, tx.UUID); err != nil {
		return fmt.Errorf("failed to advance chain head: %w", err)
	}
	return nil
}

// Balance replays the account's chain and returns the net balance of each
// member. Positive means the member is owed money.
func Balance(ctx context.Context, repo storage.Repository, account *models.Account) (map[models.PersonID]int64, error) {
	return calculator.NetBalances(account.Members, NewChain(repo, account).All(ctx))
}

// MemberBalances is Balance with per-member paid/owed totals, in member order.
func MemberBalances(ctx context.Context, repo storage.Repository, account *models.Account) ([]calculator.MemberBalance, error) {
	return calculator.CalculateBalances(account.Members, NewChain(repo, account).All(ctx))
}
