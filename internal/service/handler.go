package service

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "flouze.v1.LedgerService"

// Procedure paths of LedgerService.
const (
	LedgerServiceAddAccountProcedure           = "/flouze.v1.LedgerService/AddAccount"
	LedgerServiceGetAccountProcedure           = "/flouze.v1.LedgerService/GetAccount"
	LedgerServiceDeleteAccountProcedure        = "/flouze.v1.LedgerService/DeleteAccount"
	LedgerServiceListAccountsProcedure         = "/flouze.v1.LedgerService/ListAccounts"
	LedgerServiceSetLatestTransactionProcedure = "/flouze.v1.LedgerService/SetLatestTransaction"
	LedgerServiceAddTransactionProcedure       = "/flouze.v1.LedgerService/AddTransaction"
	LedgerServiceGetTransactionProcedure       = "/flouze.v1.LedgerService/GetTransaction"
	LedgerServiceListTransactionsProcedure     = "/flouze.v1.LedgerService/ListTransactions"
	LedgerServiceGetBalanceProcedure           = "/flouze.v1.LedgerService/GetBalance"
)

// NewLedgerServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
// Every procedure accepts JSON. ListAccounts and ListTransactions also accept
// application/proto, served by WireCodec.
func NewLedgerServiceHandler(svc *LedgerService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
	// The list procedures also speak the binary ledger encoding
	listOpts := append([]connect.HandlerOption{connect.WithCodec(WireCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(LedgerServiceAddAccountProcedure, connect.NewUnaryHandler(LedgerServiceAddAccountProcedure, svc.AddAccount, opts...))
	mux.Handle(LedgerServiceGetAccountProcedure, connect.NewUnaryHandler(LedgerServiceGetAccountProcedure, svc.GetAccount, opts...))
	mux.Handle(LedgerServiceDeleteAccountProcedure, connect.NewUnaryHandler(LedgerServiceDeleteAccountProcedure, svc.DeleteAccount, opts...))
	mux.Handle(LedgerServiceListAccountsProcedure, connect.NewUnaryHandler(LedgerServiceListAccountsProcedure, svc.ListAccounts, listOpts...))
	mux.Handle(LedgerServiceSetLatestTransactionProcedure, connect.NewUnaryHandler(LedgerServiceSetLatestTransactionProcedure, svc.SetLatestTransaction, opts...))
	mux.Handle(LedgerServiceAddTransactionProcedure, connect.NewUnaryHandler(LedgerServiceAddTransactionProcedure, svc.AddTransaction, opts...))
	mux.Handle(LedgerServiceGetTransactionProcedure, connect.NewUnaryHandler(LedgerServiceGetTransactionProcedure, svc.GetTransaction, opts...))
	mux.Handle(LedgerServiceListTransactionsProcedure, connect.NewUnaryHandler(LedgerServiceListTransactionsProcedure, svc.ListTransactions, listOpts...))
	mux.Handle(LedgerServiceGetBalanceProcedure, connect.NewUnaryHandler(LedgerServiceGetBalanceProcedure, svc.GetBalance, opts...))

	return "/" + LedgerServiceName + "/", mux
}

// LedgerServiceClient is a client for the flouze.v1.LedgerService service.
type LedgerServiceClient struct {
	addAccount           *connect.Client[AddAccountRequest, AddAccountResponse]
	getAccount           *connect.Client[GetAccountRequest, GetAccountResponse]
	deleteAccount        *connect.Client[DeleteAccountRequest, DeleteAccountResponse]
	listAccounts         *connect.Client[ListAccountsRequest, ListAccountsResponse]
	setLatestTransaction *connect.Client[SetLatestTransactionRequest, SetLatestTransactionResponse]
	addTransaction       *connect.Client[AddTransactionRequest, AddTransactionResponse]
	getTransaction       *connect.Client[GetTransactionRequest, GetTransactionResponse]
	listTransactions     *connect.Client[ListTransactionsRequest, ListTransactionsResponse]
	getBalance           *connect.Client[GetBalanceRequest, GetBalanceResponse]
}

// NewLedgerServiceClient constructs a client for the flouze.v1.LedgerService
// service at baseURL (e.g., http://localhost:8080).
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)

	return &LedgerServiceClient{
		addAccount:           connect.NewClient[AddAccountRequest, AddAccountResponse](httpClient, baseURL+LedgerServiceAddAccountProcedure, opts...),
		getAccount:           connect.NewClient[GetAccountRequest, GetAccountResponse](httpClient, baseURL+LedgerServiceGetAccountProcedure, opts...),
		deleteAccount:        connect.NewClient[DeleteAccountRequest, DeleteAccountResponse](httpClient, baseURL+LedgerServiceDeleteAccountProcedure, opts...),
		listAccounts:         connect.NewClient[ListAccountsRequest, ListAccountsResponse](httpClient, baseURL+LedgerServiceListAccountsProcedure, opts...),
		setLatestTransaction: connect.NewClient[SetLatestTransactionRequest, SetLatestTransactionResponse](httpClient, baseURL+LedgerServiceSetLatestTransactionProcedure, opts...),
		addTransaction:       connect.NewClient[AddTransactionRequest, AddTransactionResponse](httpClient, baseURL+LedgerServiceAddTransactionProcedure, opts...),
		getTransaction:       connect.NewClient[GetTransactionRequest, GetTransactionResponse](httpClient, baseURL+LedgerServiceGetTransactionProcedure, opts...),
		listTransactions:     connect.NewClient[ListTransactionsRequest, ListTransactionsResponse](httpClient, baseURL+LedgerServiceListTransactionsProcedure, opts...),
		getBalance:           connect.NewClient[GetBalanceRequest, GetBalanceResponse](httpClient, baseURL+LedgerServiceGetBalanceProcedure, opts...),
	}
}

func (c *LedgerServiceClient) AddAccount(ctx context.Context, req *connect.Request[AddAccountRequest]) (*connect.Response[AddAccountResponse], error) {
	return c.addAccount.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetAccount(ctx context.Context, req *connect.Request[GetAccountRequest]) (*connect.Response[GetAccountResponse], error) {
	return c.getAccount.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) DeleteAccount(ctx context.Context, req *connect.Request[DeleteAccountRequest]) (*connect.Response[DeleteAccountResponse], error) {
	return c.deleteAccount.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListAccounts(ctx context.Context, req *connect.Request[ListAccountsRequest]) (*connect.Response[ListAccountsResponse], error) {
	return c.listAccounts.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) SetLatestTransaction(ctx context.Context, req *connect.Request[SetLatestTransactionRequest]) (*connect.Response[SetLatestTransactionResponse], error) {
	return c.setLatestTransaction.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) AddTransaction(ctx context.Context, req *connect.Request[AddTransactionRequest]) (*connect.Response[AddTransactionResponse], error) {
	return c.addTransaction.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetTransaction(ctx context.Context, req *connect.Request[GetTransactionRequest]) (*connect.Response[GetTransactionResponse], error) {
	return c.getTransaction.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListTransactions(ctx context.Context, req *connect.Request[ListTransactionsRequest]) (*connect.Response[ListTransactionsResponse], error) {
	return c.listTransactions.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetBalance(ctx context.Context, req *connect.Request[GetBalanceRequest]) (*connect.Response[GetBalanceResponse], error) {
	return c.getBalance.CallUnary(ctx, req)
}
