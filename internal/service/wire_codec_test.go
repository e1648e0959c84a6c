package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"reflect"
	"testing"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/mmynk/flouze/internal/codec"
	"github.com/mmynk/flouze/internal/models"
	"github.com/mmynk/flouze/internal/storage/storagetest"
)

func TestListWithWireCodec(t *testing.T) {
	client, _, server := setupTestServer(t)
	ctx := context.Background()

	account := addAccount(t, client)
	alice, bob := account.Members[0].UUID, account.Members[1].UUID

	resp1, err := client.AddTransaction(ctx, connect.NewRequest(&AddTransactionRequest{
		AccountID: account.UUID,
		Transaction: &models.Transaction{
			Amount:   35,
			PayedBy:  []models.PayedBy{{Person: alice, Amount: 35}},
			PayedFor: []models.PayedFor{{Person: alice, Amount: 17}, {Person: bob, Amount: 18}},
			Label:    "Fish & Chips",
		},
	}))
	if err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}
	resp2, err := client.AddTransaction(ctx, connect.NewRequest(&AddTransactionRequest{
		AccountID: account.UUID,
		Transaction: &models.Transaction{
			Parent:   resp1.Msg.Transaction.UUID,
			Amount:   10,
			PayedBy:  []models.PayedBy{{Person: bob, Amount: 10}},
			PayedFor: []models.PayedFor{{Person: alice, Amount: 10}},
			Label:    "Book",
		},
	}))
	if err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}

	t.Run("transactions", func(t *testing.T) {
		wire := connect.NewClient[ListTransactionsRequest, ListTransactionsResponse](
			http.DefaultClient,
			server.URL+LedgerServiceListTransactionsProcedure,
			connect.WithCodec(WireCodec{}),
		)
		resp, err := wire.CallUnary(ctx, connect.NewRequest(&ListTransactionsRequest{AccountID: account.UUID}))
		if err != nil {
			t.Fatalf("ListTransactions failed: %v", err)
		}
		want := []*models.Transaction{resp2.Msg.Transaction, resp1.Msg.Transaction}
		if !reflect.DeepEqual(resp.Msg.Transactions, want) {
			t.Errorf("got %+v, want %+v", resp.Msg.Transactions, want)
		}
	})

	t.Run("transactions unknown account", func(t *testing.T) {
		wire := connect.NewClient[ListTransactionsRequest, ListTransactionsResponse](
			http.DefaultClient,
			server.URL+LedgerServiceListTransactionsProcedure,
			connect.WithCodec(WireCodec{}),
		)
		_, err := wire.CallUnary(ctx, connect.NewRequest(&ListTransactionsRequest{AccountID: storagetest.NewAccountID(t)}))
		expectCode(t, err, connect.CodeNotFound)
	})

	t.Run("accounts body is an AccountList", func(t *testing.T) {
		resp, err := http.Post(server.URL+LedgerServiceListAccountsProcedure, "application/proto", bytes.NewReader(nil))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); ct != "application/proto" {
			t.Errorf("Content-Type = %q, want application/proto", ct)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("failed to read body: %v", err)
		}
		accounts, err := codec.UnmarshalAccountList(body)
		if err != nil {
			t.Fatalf("UnmarshalAccountList failed: %v", err)
		}
		if len(accounts) != 1 || accounts[0].UUID != account.UUID || accounts[0].LatestTransaction != resp2.Msg.Transaction.UUID {
			t.Errorf("unexpected accounts: %+v", accounts)
		}
	})

	t.Run("other procedures stay JSON only", func(t *testing.T) {
		resp, err := http.Post(server.URL+LedgerServiceGetAccountProcedure, "application/proto", bytes.NewReader(nil))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusUnsupportedMediaType {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnsupportedMediaType)
		}
	})
}

func TestWireCodecAccountRef(t *testing.T) {
	id := storagetest.NewAccountID(t)

	t.Run("round trip", func(t *testing.T) {
		b, err := WireCodec{}.Marshal(&ListTransactionsRequest{AccountID: id})
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		var got ListTransactionsRequest
		if err := (WireCodec{}).Unmarshal(b, &got); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if got.AccountID != id {
			t.Errorf("AccountID = %s, want %s", got.AccountID, id)
		}
	})

	t.Run("unknown fields skipped", func(t *testing.T) {
		b, _ := WireCodec{}.Marshal(&ListTransactionsRequest{AccountID: id})
		b = protowire.AppendTag(b, 7, protowire.VarintType)
		b = protowire.AppendVarint(b, 42)

		var got ListTransactionsRequest
		if err := (WireCodec{}).Unmarshal(b, &got); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if got.AccountID != id {
			t.Errorf("AccountID = %s, want %s", got.AccountID, id)
		}
	})

	tests := []struct {
		name string
		data []byte
	}{
		{"truncated tag", []byte{0x80}},
		{"short id", protowire.AppendBytes(protowire.AppendTag(nil, 1, protowire.BytesType), []byte{1, 2, 3})},
		{"truncated bytes", []byte{0x0a, 0x10, 0x01}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ListTransactionsRequest
			err := WireCodec{}.Unmarshal(tt.data, &got)
			if !errors.Is(err, codec.ErrMalformed) {
				t.Errorf("expected ErrMalformed, got %v", err)
			}
		})
	}

	t.Run("unsupported message", func(t *testing.T) {
		if _, err := (WireCodec{}).Marshal(&GetAccountRequest{}); err == nil {
			t.Error("expected an error for a non-list message")
		}
	})
}
