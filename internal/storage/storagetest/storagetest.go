// Package storagetest holds fixtures and a conformance suite that every
// storage.Repository backend runs from its own tests.
package storagetest

import (
	"context"
	"crypto/rand"
	"errors"
	"reflect"
	"testing"

	"github.com/mmynk/flouze/internal/models"
	"github.com/mmynk/flouze/internal/storage"
)

// Factory returns a fresh, empty repository. Cleanup is registered on t.
type Factory func(t *testing.T) storage.Repository

var gen = models.NewGenerator(rand.Reader)

// NewAccountID returns a random account id or fails the test.
func NewAccountID(t *testing.T) models.AccountID {
	t.Helper()
	id, err := gen.AccountID()
	if err != nil {
		t.Fatalf("failed to generate account id: %v", err)
	}
	return id
}

// NewTransactionID returns a random transaction id or fails the test.
func NewTransactionID(t *testing.T) models.TransactionID {
	t.Helper()
	id, err := gen.TransactionID()
	if err != nil {
		t.Fatalf("failed to generate transaction id: %v", err)
	}
	return id
}

func newPersonID(t *testing.T) models.PersonID {
	t.Helper()
	id, err := gen.PersonID()
	if err != nil {
		t.Fatalf("failed to generate person id: %v", err)
	}
	return id
}

// MakeAccount returns an account with two members and no transactions.
func MakeAccount(t *testing.T) *models.Account {
	t.Helper()
	return &models.Account{
		UUID:  NewAccountID(t),
		Label: "Test account",
		Members: []models.Person{
			{UUID: newPersonID(t), Name: "Member 1"},
			{UUID: newPersonID(t), Name: "Member 2"},
		},
	}
}

// MakeTransaction1 returns a root transaction: member 0 pays 35,
// split 17/18 between members 0 and 1.
func MakeTransaction1(t *testing.T, account *models.Account) *models.Transaction {
	t.Helper()
	return &models.Transaction{
		UUID:   NewTransactionID(t),
		Amount: 35,
		PayedBy: []models.PayedBy{
			{Person: account.Members[0].UUID, Amount: 35},
		},
		PayedFor: []models.PayedFor{
			{Person: account.Members[0].UUID, Amount: 17},
			{Person: account.Members[1].UUID, Amount: 18},
		},
		Label:     "Fish & Chips",
		Timestamp: 1530288593,
	}
}

// MakeTransaction2 returns a child of parent: member 1 pays 10 for member 0.
func MakeTransaction2(t *testing.T, account *models.Account, parent models.TransactionID) *models.Transaction {
	t.Helper()
	return &models.Transaction{
		UUID:   NewTransactionID(t),
		Parent: parent,
		Amount: 10,
		PayedBy: []models.PayedBy{
			{Person: account.Members[1].UUID, Amount: 10},
		},
		PayedFor: []models.PayedFor{
			{Person: account.Members[0].UUID, Amount: 10},
		},
		Label:     "Book",
		Timestamp: 1530289903,
	}
}

// ExpectNoSuchAccount fails the test unless err is storage.ErrNoSuchAccount.
func ExpectNoSuchAccount(t *testing.T, err error) {
	t.Helper()
	if !errors.Is(err, storage.ErrNoSuchAccount) {
		t.Errorf("expected ErrNoSuchAccount, got %v", err)
	}
}

// ExpectNoSuchTransaction fails the test unless err is storage.ErrNoSuchTransaction.
func ExpectNoSuchTransaction(t *testing.T, err error) {
	t.Helper()
	if !errors.Is(err, storage.ErrNoSuchTransaction) {
		t.Errorf("expected ErrNoSuchTransaction, got %v", err)
	}
}

// Run executes the conformance suite against repositories built by newRepo.
func Run(t *testing.T, newRepo Factory) {
	t.Run("AccountCRUD", func(t *testing.T) { testAccountCRUD(t, newRepo(t)) })
	t.Run("ListAccounts", func(t *testing.T) { testListAccounts(t, newRepo(t)) })
	t.Run("SetLatestTransaction", func(t *testing.T) { testSetLatestTransaction(t, newRepo(t)) })
	t.Run("TransactionInsert", func(t *testing.T) { testTransactionInsert(t, newRepo(t)) })
	t.Run("TransactionsScopedToAccount", func(t *testing.T) { testTransactionsScopedToAccount(t, newRepo(t)) })
	t.Run("DeleteKeepsTransactions", func(t *testing.T) { testDeleteKeepsTransactions(t, newRepo(t)) })
	t.Run("ReturnsCopies", func(t *testing.T) { testReturnsCopies(t, newRepo(t)) })
	t.Run("TransactionChain", func(t *testing.T) { testTransactionChain(t, newRepo(t)) })
	t.Run("EmptyLists", func(t *testing.T) { testEmptyLists(t, newRepo(t)) })
}

func testAccountCRUD(t *testing.T, repo storage.Repository) {
	ctx := context.Background()
	account := MakeAccount(t)

	_, err := repo.GetAccount(ctx, account.UUID)
	ExpectNoSuchAccount(t, err)

	accounts, err := repo.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(accounts) != 0 {
		t.Fatalf("expected no accounts, got %d", len(accounts))
	}

	if err := repo.AddAccount(ctx, account); err != nil {
		t.Fatalf("AddAccount failed: %v", err)
	}

	fetched, err := repo.GetAccount(ctx, account.UUID)
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if !reflect.DeepEqual(fetched, account) {
		t.Errorf("GetAccount = %+v, want %+v", fetched, account)
	}

	accounts, err = repo.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(accounts) != 1 || !reflect.DeepEqual(accounts[0], account) {
		t.Errorf("ListAccounts = %+v, want [%+v]", accounts, account)
	}

	// Full replacement, not merge
	fetched.Label = "New fancy name"
	fetched.Members = fetched.Members[:1]
	if err := repo.AddAccount(ctx, fetched); err != nil {
		t.Fatalf("AddAccount (update) failed: %v", err)
	}
	updated, err := repo.GetAccount(ctx, account.UUID)
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if !reflect.DeepEqual(updated, fetched) {
		t.Errorf("GetAccount after update = %+v, want %+v", updated, fetched)
	}

	ExpectNoSuchAccount(t, repo.DeleteAccount(ctx, NewAccountID(t)))
	if err := repo.DeleteAccount(ctx, account.UUID); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}
	ExpectNoSuchAccount(t, repo.DeleteAccount(ctx, account.UUID))
	_, err = repo.GetAccount(ctx, account.UUID)
	ExpectNoSuchAccount(t, err)
}

func testListAccounts(t *testing.T, repo storage.Repository) {
	ctx := context.Background()

	added := make(map[models.AccountID]bool)
	for i := 0; i < 5; i++ {
		account := MakeAccount(t)
		if err := repo.AddAccount(ctx, account); err != nil {
			t.Fatalf("AddAccount failed: %v", err)
		}
		added[account.UUID] = true
	}

	first, err := repo.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(first) != len(added) {
		t.Fatalf("expected %d accounts, got %d", len(added), len(first))
	}
	for _, a := range first {
		if !added[a.UUID] {
			t.Errorf("unexpected account %s", a.UUID)
		}
	}

	second, err := repo.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	for i := range first {
		if first[i].UUID != second[i].UUID {
			t.Fatalf("ListAccounts order changed at %d: %s then %s", i, first[i].UUID, second[i].UUID)
		}
	}
}

func testSetLatestTransaction(t *testing.T, repo storage.Repository) {
	ctx := context.Background()
	account := MakeAccount(t)
	txID := NewTransactionID(t)

	ExpectNoSuchAccount(t, repo.SetLatestTransaction(ctx, account.UUID, txID))

	if err := repo.AddAccount(ctx, account); err != nil {
		t.Fatalf("AddAccount failed: %v", err)
	}
	if err := repo.SetLatestTransaction(ctx, account.UUID, txID); err != nil {
		t.Fatalf("SetLatestTransaction failed: %v", err)
	}

	fetched, err := repo.GetAccount(ctx, account.UUID)
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if fetched.LatestTransaction != txID {
		t.Errorf("LatestTransaction = %s, want %s", fetched.LatestTransaction, txID)
	}
	if fetched.Label != account.Label || len(fetched.Members) != len(account.Members) {
		t.Errorf("SetLatestTransaction changed other fields: %+v", fetched)
	}
}

func testTransactionInsert(t *testing.T, repo storage.Repository) {
	ctx := context.Background()
	account := MakeAccount(t)
	if err := repo.AddAccount(ctx, account); err != nil {
		t.Fatalf("AddAccount failed: %v", err)
	}

	tx := MakeTransaction1(t, account)

	_, err := repo.GetTransaction(ctx, account.UUID, tx.UUID)
	ExpectNoSuchTransaction(t, err)

	if err := repo.AddTransaction(ctx, account.UUID, tx); err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}

	fetched, err := repo.GetTransaction(ctx, account.UUID, tx.UUID)
	if err != nil {
		t.Fatalf("GetTransaction failed: %v", err)
	}
	if !reflect.DeepEqual(fetched, tx) {
		t.Errorf("GetTransaction = %+v, want %+v", fetched, tx)
	}

	fetched.Timestamp = 1530289104
	fetched.Deleted = true
	if err := repo.AddTransaction(ctx, account.UUID, fetched); err != nil {
		t.Fatalf("AddTransaction (update) failed: %v", err)
	}

	updated, err := repo.GetTransaction(ctx, account.UUID, tx.UUID)
	if err != nil {
		t.Fatalf("GetTransaction failed: %v", err)
	}
	if !reflect.DeepEqual(updated, fetched) {
		t.Errorf("GetTransaction after update = %+v, want %+v", updated, fetched)
	}

	// Adding a transaction never moves the head
	head, err := repo.GetAccount(ctx, account.UUID)
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if !head.LatestTransaction.IsZero() {
		t.Errorf("LatestTransaction = %s, want empty", head.LatestTransaction)
	}
}

func testTransactionsScopedToAccount(t *testing.T, repo storage.Repository) {
	ctx := context.Background()
	a := MakeAccount(t)
	b := MakeAccount(t)
	for _, account := range []*models.Account{a, b} {
		if err := repo.AddAccount(ctx, account); err != nil {
			t.Fatalf("AddAccount failed: %v", err)
		}
	}

	tx := MakeTransaction1(t, a)
	if err := repo.AddTransaction(ctx, a.UUID, tx); err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}

	_, err := repo.GetTransaction(ctx, b.UUID, tx.UUID)
	ExpectNoSuchTransaction(t, err)
}

func testDeleteKeepsTransactions(t *testing.T, repo storage.Repository) {
	ctx := context.Background()
	account := MakeAccount(t)
	if err := repo.AddAccount(ctx, account); err != nil {
		t.Fatalf("AddAccount failed: %v", err)
	}
	tx := MakeTransaction1(t, account)
	if err := repo.AddTransaction(ctx, account.UUID, tx); err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}

	if err := repo.DeleteAccount(ctx, account.UUID); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}

	orphan, err := repo.GetTransaction(ctx, account.UUID, tx.UUID)
	if err != nil {
		t.Fatalf("GetTransaction after DeleteAccount failed: %v", err)
	}
	if orphan.UUID != tx.UUID {
		t.Errorf("got transaction %s, want %s", orphan.UUID, tx.UUID)
	}
}

func testReturnsCopies(t *testing.T, repo storage.Repository) {
	ctx := context.Background()
	account := MakeAccount(t)
	if err := repo.AddAccount(ctx, account); err != nil {
		t.Fatalf("AddAccount failed: %v", err)
	}
	tx := MakeTransaction1(t, account)
	if err := repo.AddTransaction(ctx, account.UUID, tx); err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}

	// Mutating the inputs after the call must not leak into storage
	account.Members[0].Name = "Changed"
	tx.PayedFor[0].Amount = 1000

	fetched, err := repo.GetAccount(ctx, account.UUID)
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if fetched.Members[0].Name != "Member 1" {
		t.Errorf("stored member name = %q, want %q", fetched.Members[0].Name, "Member 1")
	}
	fetched.Label = "Mutated"

	again, err := repo.GetAccount(ctx, account.UUID)
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if again.Label != "Test account" {
		t.Errorf("stored label = %q, want %q", again.Label, "Test account")
	}

	fetchedTx, err := repo.GetTransaction(ctx, account.UUID, tx.UUID)
	if err != nil {
		t.Fatalf("GetTransaction failed: %v", err)
	}
	if fetchedTx.PayedFor[0].Amount != 17 {
		t.Errorf("stored amount = %d, want 17", fetchedTx.PayedFor[0].Amount)
	}
}

// testTransactionChain stores a two-link chain and follows it back from the head.
func testTransactionChain(t *testing.T, repo storage.Repository) {
	ctx := context.Background()
	account := MakeAccount(t)
	if err := repo.AddAccount(ctx, account); err != nil {
		t.Fatalf("AddAccount failed: %v", err)
	}

	tx1 := MakeTransaction1(t, account)
	tx2 := MakeTransaction2(t, account, tx1.UUID)
	for _, tx := range []*models.Transaction{tx1, tx2} {
		if err := repo.AddTransaction(ctx, account.UUID, tx); err != nil {
			t.Fatalf("AddTransaction failed: %v", err)
		}
	}
	if err := repo.SetLatestTransaction(ctx, account.UUID, tx2.UUID); err != nil {
		t.Fatalf("SetLatestTransaction failed: %v", err)
	}

	head, err := repo.GetAccount(ctx, account.UUID)
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}

	var chain []*models.Transaction
	for id := head.LatestTransaction; !id.IsZero(); {
		if len(chain) > 2 {
			t.Fatalf("chain longer than stored: %+v", chain)
		}
		tx, err := repo.GetTransaction(ctx, account.UUID, id)
		if err != nil {
			t.Fatalf("GetTransaction(%s) failed: %v", id, err)
		}
		chain = append(chain, tx)
		id = tx.Parent
	}

	want := []*models.Transaction{tx2, tx1}
	if !reflect.DeepEqual(chain, want) {
		t.Errorf("chain = %+v, want %+v", chain, want)
	}
	if chain[0].Parent != tx1.UUID {
		t.Errorf("Parent = %s, want %s", chain[0].Parent, tx1.UUID)
	}
}

// testEmptyLists checks that empty member and share lists read back as nil.
func testEmptyLists(t *testing.T, repo storage.Repository) {
	ctx := context.Background()
	account := &models.Account{UUID: NewAccountID(t), Label: "Empty", Members: []models.Person{}}
	if err := repo.AddAccount(ctx, account); err != nil {
		t.Fatalf("AddAccount failed: %v", err)
	}

	fetched, err := repo.GetAccount(ctx, account.UUID)
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if fetched.Members != nil {
		t.Errorf("Members = %#v, want nil", fetched.Members)
	}

	tx := &models.Transaction{
		UUID:     NewTransactionID(t),
		Label:    "Nothing",
		PayedBy:  []models.PayedBy{},
		PayedFor: []models.PayedFor{},
	}
	if err := repo.AddTransaction(ctx, account.UUID, tx); err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}
	got, err := repo.GetTransaction(ctx, account.UUID, tx.UUID)
	if err != nil {
		t.Fatalf("GetTransaction failed: %v", err)
	}
	if got.PayedBy != nil || got.PayedFor != nil {
		t.Errorf("shares = %#v / %#v, want nil", got.PayedBy, got.PayedFor)
	}
}
