package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmynk/flouze/internal/ledger"
	"github.com/mmynk/flouze/internal/models"
	"github.com/mmynk/flouze/internal/storage/bolt"
	"github.com/mmynk/flouze/internal/storage/storagetest"
)

// seedStore writes an account with two transactions to a bolt file and
// points the configuration at it.
func seedStore(t *testing.T) *models.Account {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	store, err := bolt.New(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	account := storagetest.MakeAccount(t)
	if err := store.AddAccount(ctx, account); err != nil {
		t.Fatalf("AddAccount failed: %v", err)
	}
	tx1 := storagetest.MakeTransaction1(t, account)
	tx2 := storagetest.MakeTransaction2(t, account, tx1.UUID)
	for _, tx := range []*models.Transaction{tx1, tx2} {
		if err := ledger.AppendTransaction(ctx, store, account.UUID, tx); err != nil {
			t.Fatalf("AppendTransaction failed: %v", err)
		}
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	t.Setenv("FLOUZE_BACKEND", "bolt")
	t.Setenv("FLOUZE_DB_PATH", path)
	return account
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAccounts(t *testing.T) {
	account := seedStore(t)

	out, err := run(t, "accounts")
	if err != nil {
		t.Fatalf("accounts failed: %v", err)
	}
	if !strings.Contains(out, account.UUID.String()) || !strings.Contains(out, "Test account") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestHistory(t *testing.T) {
	account := seedStore(t)

	out, err := run(t, "history", account.UUID.String())
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}

	book := strings.Index(out, "Book")
	fish := strings.Index(out, "Fish & Chips")
	if book < 0 || fish < 0 || book > fish {
		t.Errorf("expected newest transaction first:\n%s", out)
	}
	for _, want := range []string{"0.35", "0.10", "Member 1", "Member 2", "2018-06-29"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBalance(t *testing.T) {
	account := seedStore(t)

	out, err := run(t, "balance", account.UUID.String())
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 members, got:\n%s", out)
	}
	tests := []struct {
		line int
		want []string
	}{
		{1, []string{"Member 1", "0.35", "0.27", "0.08"}},
		{2, []string{"Member 2", "0.10", "0.18", "-0.08"}},
	}
	for _, tt := range tests {
		for _, want := range tt.want {
			if !strings.Contains(lines[tt.line], want) {
				t.Errorf("line %q missing %q", lines[tt.line], want)
			}
		}
	}
}

func TestErrors(t *testing.T) {
	seedStore(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"malformed id", []string{"balance", "not-a-uuid"}, "invalid identifier"},
		{"unknown account", []string{"history", storagetest.NewAccountID(t).String()}, "no such account"},
		{"missing argument", []string{"balance"}, "accepts 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestMissingStore(t *testing.T) {
	t.Setenv("FLOUZE_BACKEND", "bolt")
	t.Setenv("FLOUZE_DB_PATH", filepath.Join(t.TempDir(), "absent.db"))

	if _, err := run(t, "accounts"); err == nil {
		t.Error("expected an error for a missing store")
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0.00"},
		{8, "0.08"},
		{-8, "-0.08"},
		{1234, "12.34"},
		{-100000, "-1000.00"},
	}
	for _, tt := range tests {
		if got := formatAmount(tt.amount); got != tt.want {
			t.Errorf("formatAmount(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
