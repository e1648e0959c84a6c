package ledger

import (
	"context"
	"testing"

	"github.com/mmynk/flouze/internal/storage/storagetest"
)

func TestBalance(t *testing.T) {
	ctx := context.Background()
	repo, account := setup(t)

	tx1 := storagetest.MakeTransaction1(t, account)
	tx2 := storagetest.MakeTransaction2(t, account, tx1.UUID)
	if err := AppendTransaction(ctx, repo, account.UUID, tx1); err != nil {
		t.Fatalf("AppendTransaction failed: %v", err)
	}
	if err := AppendTransaction(ctx, repo, account.UUID, tx2); err != nil {
		t.Fatalf("AppendTransaction failed: %v", err)
	}

	account, err := repo.GetAccount(ctx, account.UUID)
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}

	balance, err := Balance(ctx, repo, account)
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if got := balance[account.Members[0].UUID]; got != 8 {
		t.Errorf("member 0 balance = %d, want 8", got)
	}
	if got := balance[account.Members[1].UUID]; got != -8 {
		t.Errorf("member 1 balance = %d, want -8", got)
	}

	members, err := MemberBalances(ctx, repo, account)
	if err != nil {
		t.Fatalf("MemberBalances failed: %v", err)
	}
	if members[0].TotalPaid != 35 || members[0].TotalOwed != 27 {
		t.Errorf("member 0 paid/owed = %d/%d, want 35/27", members[0].TotalPaid, members[0].TotalOwed)
	}
}

func TestBalanceNoTransactions(t *testing.T) {
	repo, account := setup(t)

	balance, err := Balance(context.Background(), repo, account)
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if len(balance) != len(account.Members) {
		t.Fatalf("expected %d entries, got %d", len(account.Members), len(balance))
	}
	for id, b := range balance {
		if b != 0 {
			t.Errorf("%s = %d, want 0", id, b)
		}
	}
}

func TestBalanceBrokenChain(t *testing.T) {
	ctx := context.Background()
	repo, account := setup(t)

	tx := storagetest.MakeTransaction2(t, account, storagetest.NewTransactionID(t))
	if err := AppendTransaction(ctx, repo, account.UUID, tx); err != nil {
		t.Fatalf("AppendTransaction failed: %v", err)
	}
	account.LatestTransaction = tx.UUID

	balance, err := Balance(ctx, repo, account)
	storagetest.ExpectNoSuchTransaction(t, err)
	if balance != nil {
		t.Errorf("expected no partial balance, got %v", balance)
	}
}

func TestListTransactions(t *testing.T) {
	ctx := context.Background()
	repo, account := setup(t)

	t.Run("unknown account", func(t *testing.T) {
		_, err := ListTransactions(ctx, repo, storagetest.NewAccountID(t))
		storagetest.ExpectNoSuchAccount(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		txs, err := ListTransactions(ctx, repo, account.UUID)
		if err != nil {
			t.Fatalf("ListTransactions failed: %v", err)
		}
		if len(txs) != 0 {
			t.Errorf("expected no transactions, got %d", len(txs))
		}
	})

	tx1 := storagetest.MakeTransaction1(t, account)
	tx2 := storagetest.MakeTransaction2(t, account, tx1.UUID)
	if err := AppendTransaction(ctx, repo, account.UUID, tx1); err != nil {
		t.Fatalf("AppendTransaction failed: %v", err)
	}
	if err := AppendTransaction(ctx, repo, account.UUID, tx2); err != nil {
		t.Fatalf("AppendTransaction failed: %v", err)
	}

	t.Run("newest first", func(t *testing.T) {
		txs, err := ListTransactions(ctx, repo, account.UUID)
		if err != nil {
			t.Fatalf("ListTransactions failed: %v", err)
		}
		if len(txs) != 2 || txs[0].UUID != tx2.UUID || txs[1].UUID != tx1.UUID {
			t.Errorf("unexpected chain: %+v", txs)
		}
	})
}

func TestAppendTransactionUnknownAccount(t *testing.T) {
	ctx := context.Background()
	repo, account := setup(t)
	unknown := storagetest.NewAccountID(t)
	tx := storagetest.MakeTransaction1(t, account)

	err := AppendTransaction(ctx, repo, unknown, tx)
	storagetest.ExpectNoSuchAccount(t, err)

	// Nothing was written under the unknown account
	_, err = repo.GetTransaction(ctx, unknown, tx.UUID)
	storagetest.ExpectNoSuchTransaction(t, err)
}
