package service

import "github.com/mmynk/flouze/internal/models"

type AddAccountRequest struct {
	// Account is stored as-is. A zero UUID (or member UUID) is generated.
	Account *models.Account `json:"account"`
}

type AddAccountResponse struct {
	Account *models.Account `json:"account"`
}

type GetAccountRequest struct {
	AccountID models.AccountID `json:"account_id"`
}

type GetAccountResponse struct {
	Account *models.Account `json:"account"`
}

type DeleteAccountRequest struct {
	AccountID models.AccountID `json:"account_id"`
}

type DeleteAccountResponse struct{}

type ListAccountsRequest struct{}

type ListAccountsResponse struct {
	Accounts []*models.Account `json:"accounts"`
}

type SetLatestTransactionRequest struct {
	AccountID     models.AccountID     `json:"account_id"`
	TransactionID models.TransactionID `json:"transaction_id"`
}

type SetLatestTransactionResponse struct{}

type AddTransactionRequest struct {
	AccountID models.AccountID `json:"account_id"`

	// Transaction becomes the new chain head. A zero UUID is generated;
	// Parent is taken as given.
	Transaction *models.Transaction `json:"transaction"`
}

type AddTransactionResponse struct {
	Transaction *models.Transaction `json:"transaction"`
}

type GetTransactionRequest struct {
	AccountID     models.AccountID     `json:"account_id"`
	TransactionID models.TransactionID `json:"transaction_id"`
}

type GetTransactionResponse struct {
	Transaction *models.Transaction `json:"transaction"`
}

type ListTransactionsRequest struct {
	AccountID models.AccountID `json:"account_id"`
}

type ListTransactionsResponse struct {
	// Transactions is the chain, newest first.
	Transactions []*models.Transaction `json:"transactions"`
}

type GetBalanceRequest struct {
	AccountID models.AccountID `json:"account_id"`
}

// MemberBalance is one member's position in an account.
type MemberBalance struct {
	Person    models.Person `json:"person"`
	Balance   int64         `json:"balance"` // Positive = owed money, Negative = owes money
	TotalPaid int64         `json:"total_paid"`
	TotalOwed int64         `json:"total_owed"`
}

type GetBalanceResponse struct {
	// Balances follow the account's member order.
	Balances []MemberBalance `json:"balances"`
}
