package metrics

import (
	"context"
	"time"

	"github.com/mmynk/flouze/internal/models"
	"github.com/mmynk/flouze/internal/storage"
)

// Ensure InstrumentedRepository implements storage.Repository
var _ storage.Repository = (*InstrumentedRepository)(nil)

// InstrumentedRepository decorates a Repository with operation counters and
// latency histograms. Errors pass through unchanged.
type InstrumentedRepository struct {
	next    storage.Repository
	metrics *Metrics
}

// Repository wraps next so every call is recorded in m.
func (m *Metrics) Repository(next storage.Repository) *InstrumentedRepository {
	return &InstrumentedRepository{next: next, metrics: m}
}

func (r *InstrumentedRepository) AddAccount(ctx context.Context, account *models.Account) (err error) {
	defer func(start time.Time) { r.metrics.observeRepo("add_account", start, err) }(time.Now())
	return r.next.AddAccount(ctx, account)
}

func (r *InstrumentedRepository) GetAccount(ctx context.Context, accountID models.AccountID) (account *models.Account, err error) {
	defer func(start time.Time) { r.metrics.observeRepo("get_account", start, err) }(time.Now())
	return r.next.GetAccount(ctx, accountID)
}

func (r *InstrumentedRepository) DeleteAccount(ctx context.Context, accountID models.AccountID) (err error) {
	defer func(start time.Time) { r.metrics.observeRepo("delete_account", start, err) }(time.Now())
	return r.next.DeleteAccount(ctx, accountID)
}

func (r *InstrumentedRepository) ListAccounts(ctx context.Context) (accounts []*models.Account, err error) {
	defer func(start time.Time) { r.metrics.observeRepo("list_accounts", start, err) }(time.Now())
	return r.next.ListAccounts(ctx)
}

func (r *InstrumentedRepository) SetLatestTransaction(ctx context.Context, accountID models.AccountID, txID models.TransactionID) (err error) {
	defer func(start time.Time) { r.metrics.observeRepo("set_latest_transaction", start, err) }(time.Now())
	return r.next.SetLatestTransaction(ctx, accountID, txID)
}

func (r *InstrumentedRepository) AddTransaction(ctx context.Context, accountID models.AccountID, transaction *models.Transaction) (err error) {
	defer func(start time.Time) { r.metrics.observeRepo("add_transaction", start, err) }(time.Now())
	return r.next.AddTransaction(ctx, accountID, transaction)
}

func (r *InstrumentedRepository) GetTransaction(ctx context.Context, accountID models.AccountID, txID models.TransactionID) (tx *models.Transaction, err error) {
	defer func(start time.Time) { r.metrics.observeRepo("get_transaction", start, err) }(time.Now())
	return r.next.GetTransaction(ctx, accountID, txID)
}

// Close closes the wrapped repository.
func (r *InstrumentedRepository) Close() error {
	return r.next.Close()
}
