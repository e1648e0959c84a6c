package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/mmynk/flouze/internal/ledger"
	"github.com/mmynk/flouze/internal/models"
	"github.com/mmynk/flouze/internal/storage"
)

// LedgerService implements the Connect LedgerService on top of a repository.
type LedgerService struct {
	repo storage.Repository
	ids  *models.Generator
}

// NewLedgerService creates a new LedgerService. ids fills in identifiers the
// caller left empty.
func NewLedgerService(repo storage.Repository, ids *models.Generator) *LedgerService {
	return &LedgerService{repo: repo, ids: ids}
}

// AddAccount stores an account, replacing any account with the same UUID.
func (s *LedgerService) AddAccount(ctx context.Context, req *connect.Request[AddAccountRequest]) (*connect.Response[AddAccountResponse], error) {
	if req.Msg.Account == nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("account is required"))
	}
	account := req.Msg.Account.Clone()

	slog.Info("AddAccount request received",
		"account_id", account.UUID,
		"label", account.Label,
		"members_count", len(account.Members),
	)

	if err := s.assignAccountIDs(account); err != nil {
		slog.Error("AddAccount failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	if err := s.repo.AddAccount(ctx, account); err != nil {
		slog.Error("AddAccount failed", "account_id", account.UUID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Account stored", "account_id", account.UUID)

	return connect.NewResponse(&AddAccountResponse{Account: account}), nil
}

// GetAccount retrieves an account by UUID.
func (s *LedgerService) GetAccount(ctx context.Context, req *connect.Request[GetAccountRequest]) (*connect.Response[GetAccountResponse], error) {
	slog.Info("GetAccount request received", "account_id", req.Msg.AccountID)

	account, err := s.repo.GetAccount(ctx, req.Msg.AccountID)
	if err != nil {
		slog.Error("GetAccount failed", "account_id", req.Msg.AccountID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&GetAccountResponse{Account: account}), nil
}

// DeleteAccount removes an account. Its transactions stay in storage.
func (s *LedgerService) DeleteAccount(ctx context.Context, req *connect.Request[DeleteAccountRequest]) (*connect.Response[DeleteAccountResponse], error) {
	slog.Info("DeleteAccount request received", "account_id", req.Msg.AccountID)

	if err := s.repo.DeleteAccount(ctx, req.Msg.AccountID); err != nil {
		slog.Error("DeleteAccount failed", "account_id", req.Msg.AccountID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Account deleted", "account_id", req.Msg.AccountID)

	return connect.NewResponse(&DeleteAccountResponse{}), nil
}

// ListAccounts retrieves all accounts.
func (s *LedgerService) ListAccounts(ctx context.Context, req *connect.Request[ListAccountsRequest]) (*connect.Response[ListAccountsResponse], error) {
	slog.Info("ListAccounts request received")

	accounts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		slog.Error("ListAccounts failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("ListAccounts successful", "count", len(accounts))

	return connect.NewResponse(&ListAccountsResponse{Accounts: accounts}), nil
}

// SetLatestTransaction moves the chain head of an account. The transaction
// itself is not checked; a dangling head surfaces on the next walk.
func (s *LedgerService) SetLatestTransaction(ctx context.Context, req *connect.Request[SetLatestTransactionRequest]) (*connect.Response[SetLatestTransactionResponse], error) {
	slog.Info("SetLatestTransaction request received",
		"account_id", req.Msg.AccountID,
		"transaction_id", req.Msg.TransactionID,
	)

	if err := s.repo.SetLatestTransaction(ctx, req.Msg.AccountID, req.Msg.TransactionID); err != nil {
		slog.Error("SetLatestTransaction failed", "account_id", req.Msg.AccountID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&SetLatestTransactionResponse{}), nil
}

// AddTransaction stores a transaction and makes it the head of the account's chain.
func (s *LedgerService) AddTransaction(ctx context.Context, req *connect.Request[AddTransactionRequest]) (*connect.Response[AddTransactionResponse], error) {
	if req.Msg.Transaction == nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("transaction is required"))
	}
	if req.Msg.AccountID.IsZero() {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("account_id is required"))
	}
	tx := req.Msg.Transaction.Clone()

	slog.Info("AddTransaction request received",
		"account_id", req.Msg.AccountID,
		"label", tx.Label,
		"amount", tx.Amount,
	)

	if tx.UUID.IsZero() {
		id, err := s.ids.TransactionID()
		if err != nil {
			slog.Error("AddTransaction failed", "error", err)
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		tx.UUID = id
	}

	if err := ledger.AppendTransaction(ctx, s.repo, req.Msg.AccountID, tx); err != nil {
		slog.Error("AddTransaction failed", "account_id", req.Msg.AccountID, "transaction_id", tx.UUID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Transaction stored", "account_id", req.Msg.AccountID, "transaction_id", tx.UUID)

	return connect.NewResponse(&AddTransactionResponse{Transaction: tx}), nil
}

// GetTransaction retrieves one transaction of an account.
func (s *LedgerService) GetTransaction(ctx context.Context, req *connect.Request[GetTransactionRequest]) (*connect.Response[GetTransactionResponse], error) {
	slog.Info("GetTransaction request received",
		"account_id", req.Msg.AccountID,
		"transaction_id", req.Msg.TransactionID,
	)

	tx, err := s.repo.GetTransaction(ctx, req.Msg.AccountID, req.Msg.TransactionID)
	if err != nil {
		slog.Error("GetTransaction failed", "transaction_id", req.Msg.TransactionID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&GetTransactionResponse{Transaction: tx}), nil
}

// ListTransactions walks the account's chain, newest first.
func (s *LedgerService) ListTransactions(ctx context.Context, req *connect.Request[ListTransactionsRequest]) (*connect.Response[ListTransactionsResponse], error) {
	slog.Info("ListTransactions request received", "account_id", req.Msg.AccountID)

	txs, err := ledger.ListTransactions(ctx, s.repo, req.Msg.AccountID)
	if err != nil {
		slog.Error("ListTransactions failed", "account_id", req.Msg.AccountID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("ListTransactions successful", "account_id", req.Msg.AccountID, "count", len(txs))

	return connect.NewResponse(&ListTransactionsResponse{Transactions: txs}), nil
}

// GetBalance replays the account's chain and returns every member's balance.
func (s *LedgerService) GetBalance(ctx context.Context, req *connect.Request[GetBalanceRequest]) (*connect.Response[GetBalanceResponse], error) {
	slog.Info("GetBalance request received", "account_id", req.Msg.AccountID)

	account, err := s.repo.GetAccount(ctx, req.Msg.AccountID)
	if err != nil {
		slog.Error("GetBalance failed", "account_id", req.Msg.AccountID, "error", err)
		return nil, toConnectError(err)
	}

	results, err := ledger.MemberBalances(ctx, s.repo, account)
	if err != nil {
		slog.Error("GetBalance failed", "account_id", req.Msg.AccountID, "error", err)
		return nil, toConnectError(err)
	}

	balances := make([]MemberBalance, 0, len(results))
	for _, r := range results {
		balances = append(balances, MemberBalance{
			Person:    r.Person,
			Balance:   r.NetBalance,
			TotalPaid: r.TotalPaid,
			TotalOwed: r.TotalOwed,
		})
	}

	return connect.NewResponse(&GetBalanceResponse{Balances: balances}), nil
}

func (s *LedgerService) assignAccountIDs(account *models.Account) error {
	if account.UUID.IsZero() {
		id, err := s.ids.AccountID()
		if err != nil {
			return fmt.Errorf("failed to generate account id: %w", err)
		}
		account.UUID = id
	}
	for i := range account.Members {
		if !account.Members[i].UUID.IsZero() {
			continue
		}
		id, err := s.ids.PersonID()
		if err != nil {
			return fmt.Errorf("failed to generate person id: %w", err)
		}
		account.Members[i].UUID = id
	}
	return nil
}
