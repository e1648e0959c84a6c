package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mmynk/flouze/internal/models"
	"github.com/mmynk/flouze/internal/storage"
	"github.com/mmynk/flouze/internal/storage/storagetest"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Repository {
		return newTestStore(t)
	})
}

func TestListAccountsInsertionOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var ids []models.AccountID
	for i := 0; i < 3; i++ {
		account := storagetest.MakeAccount(t)
		if err := store.AddAccount(ctx, account); err != nil {
			t.Fatalf("AddAccount failed: %v", err)
		}
		ids = append(ids, account.UUID)
	}

	// Updating the first account keeps its position
	first, err := store.GetAccount(ctx, ids[0])
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	first.Label = "Renamed"
	if err := store.AddAccount(ctx, first); err != nil {
		t.Fatalf("AddAccount failed: %v", err)
	}

	accounts, err := store.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(accounts) != len(ids) {
		t.Fatalf("expected %d accounts, got %d", len(ids), len(accounts))
	}
	for i, a := range accounts {
		if a.UUID != ids[i] {
			t.Errorf("position %d: got %s, want %s", i, a.UUID, ids[i])
		}
	}
	if accounts[0].Label != "Renamed" {
		t.Errorf("Label = %q, want %q", accounts[0].Label, "Renamed")
	}
}

func TestSharesKeepOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	account := storagetest.MakeAccount(t)
	if err := store.AddAccount(ctx, account); err != nil {
		t.Fatalf("AddAccount failed: %v", err)
	}

	m0, m1 := account.Members[0].UUID, account.Members[1].UUID
	tx := &models.Transaction{
		UUID:     storagetest.NewTransactionID(t),
		Amount:   30,
		PayedBy:  []models.PayedBy{{Person: m1, Amount: 20}, {Person: m0, Amount: 10}},
		PayedFor: []models.PayedFor{{Person: m1, Amount: 5}, {Person: m0, Amount: 25}},
		Label:    "Groceries",
	}
	if err := store.AddTransaction(ctx, account.UUID, tx); err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}

	got, err := store.GetTransaction(ctx, account.UUID, tx.UUID)
	if err != nil {
		t.Fatalf("GetTransaction failed: %v", err)
	}
	if got.PayedBy[0].Person != m1 || got.PayedBy[1].Person != m0 {
		t.Errorf("PayedBy order not preserved: %+v", got.PayedBy)
	}
	if got.PayedFor[0].Amount != 5 || got.PayedFor[1].Amount != 25 {
		t.Errorf("PayedFor order not preserved: %+v", got.PayedFor)
	}

	// Replacing with fewer shares drops the old ones
	tx.PayedBy = tx.PayedBy[:1]
	tx.PayedFor = nil
	if err := store.AddTransaction(ctx, account.UUID, tx); err != nil {
		t.Fatalf("AddTransaction (update) failed: %v", err)
	}
	got, err = store.GetTransaction(ctx, account.UUID, tx.UUID)
	if err != nil {
		t.Fatalf("GetTransaction failed: %v", err)
	}
	if len(got.PayedBy) != 1 || len(got.PayedFor) != 0 {
		t.Errorf("expected 1 payed_by and 0 payed_for, got %d and %d", len(got.PayedBy), len(got.PayedFor))
	}
}
