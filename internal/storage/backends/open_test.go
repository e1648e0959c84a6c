package backends

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mmynk/flouze/internal/config"
	"github.com/mmynk/flouze/internal/ledger"
	"github.com/mmynk/flouze/internal/storage/storagetest"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		cfg     config.StorageConfig
		wantErr bool
	}{
		{name: "memory", cfg: config.StorageConfig{Backend: config.BackendMemory}},
		{name: "bolt", cfg: config.StorageConfig{Backend: config.BackendBolt, Path: filepath.Join(dir, "ledger.bolt")}},
		{name: "sqlite", cfg: config.StorageConfig{Backend: config.BackendSQLite, Path: filepath.Join(dir, "ledger.sqlite")}},
		{name: "unknown", cfg: config.StorageConfig{Backend: "postgres"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := Open(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			defer repo.Close()

			account := storagetest.MakeAccount(t)
			if err := repo.AddAccount(context.Background(), account); err != nil {
				t.Fatalf("AddAccount failed: %v", err)
			}
			if _, err := repo.GetAccount(context.Background(), account.UUID); err != nil {
				t.Errorf("GetAccount failed: %v", err)
			}
		})
	}
}

func TestBalanceOnEveryBackend(t *testing.T) {
	dir := t.TempDir()
	for _, cfg := range []config.StorageConfig{
		{Backend: config.BackendMemory},
		{Backend: config.BackendBolt, Path: filepath.Join(dir, "balance.bolt")},
		{Backend: config.BackendSQLite, Path: filepath.Join(dir, "balance.sqlite")},
	} {
		t.Run(cfg.Backend, func(t *testing.T) {
			ctx := context.Background()
			repo, err := Open(cfg)
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			defer repo.Close()

			account := storagetest.MakeAccount(t)
			if err := repo.AddAccount(ctx, account); err != nil {
				t.Fatalf("AddAccount failed: %v", err)
			}
			tx1 := storagetest.MakeTransaction1(t, account)
			tx2 := storagetest.MakeTransaction2(t, account, tx1.UUID)
			if err := ledger.AppendTransaction(ctx, repo, account.UUID, tx1); err != nil {
				t.Fatalf("AppendTransaction failed: %v", err)
			}
			if err := ledger.AppendTransaction(ctx, repo, account.UUID, tx2); err != nil {
				t.Fatalf("AppendTransaction failed: %v", err)
			}

			account, err = repo.GetAccount(ctx, account.UUID)
			if err != nil {
				t.Fatalf("GetAccount failed: %v", err)
			}
			balance, err := ledger.Balance(ctx, repo, account)
			if err != nil {
				t.Fatalf("Balance failed: %v", err)
			}
			if balance[account.Members[0].UUID] != 8 || balance[account.Members[1].UUID] != -8 {
				t.Errorf("balance = %v, want 8 / -8", balance)
			}
		})
	}
}
