package service

import (
	"errors"

	"connectrpc.com/connect"
	"github.com/mmynk/flouze/internal/ledger"
	"github.com/mmynk/flouze/internal/storage"
)

// toConnectError maps ledger and storage failures onto Connect codes.
func toConnectError(err error) *connect.Error {
	switch {
	case errors.Is(err, storage.ErrNoSuchAccount), errors.Is(err, storage.ErrNoSuchTransaction):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ledger.ErrCorruptChain):
		return connect.NewError(connect.CodeDataLoss, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
