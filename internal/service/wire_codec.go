package service

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/mmynk/flouze/internal/codec"
	"github.com/mmynk/flouze/internal/models"
)

// WireCodec serves the list procedures in the binary ledger encoding, so a
// ListAccounts reply is an AccountList message and a ListTransactions reply
// is a TransactionList message. It is registered as "proto" and selected
// with Content-Type application/proto.
//
// Requests: ListAccountsRequest is empty. ListTransactionsRequest carries
// the account id as bytes in field 1.
type WireCodec struct{}

// Name implements connect.Codec.
func (WireCodec) Name() string { return "proto" }

// Marshal implements connect.Codec.
func (WireCodec) Marshal(msg any) ([]byte, error) {
	switch m := msg.(type) {
	case *ListAccountsRequest:
		return []byte{}, nil
	case *ListAccountsResponse:
		return codec.MarshalAccountList(m.Accounts), nil
	case *ListTransactionsRequest:
		var b []byte
		if id := m.AccountID.Bytes(); len(id) > 0 {
			b = protowire.AppendTag(b, 1, protowire.BytesType)
			b = protowire.AppendBytes(b, id)
		}
		return b, nil
	case *ListTransactionsResponse:
		return codec.MarshalTransactionList(m.Transactions), nil
	default:
		return nil, fmt.Errorf("wire codec: unsupported message %T", msg)
	}
}

// Unmarshal implements connect.Codec.
func (WireCodec) Unmarshal(data []byte, msg any) error {
	switch m := msg.(type) {
	case *ListAccountsRequest:
		return nil
	case *ListAccountsResponse:
		accounts, err := codec.UnmarshalAccountList(data)
		if err != nil {
			return err
		}
		m.Accounts = accounts
		return nil
	case *ListTransactionsRequest:
		return unmarshalAccountRef(data, &m.AccountID)
	case *ListTransactionsResponse:
		txs, err := codec.UnmarshalTransactionList(data)
		if err != nil {
			return err
		}
		m.Transactions = txs
		return nil
	default:
		return fmt.Errorf("wire codec: unsupported message %T", msg)
	}
}

// unmarshalAccountRef reads an account id from field 1, skipping other fields.
func unmarshalAccountRef(b []byte, id *models.AccountID) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", codec.ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		if num == 1 && typ == protowire.BytesType {
			raw, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return fmt.Errorf("%w: %v", codec.ErrMalformed, protowire.ParseError(n))
			}
			parsed, err := models.AccountIDFromBytes(raw)
			if err != nil {
				return fmt.Errorf("%w: %v", codec.ErrMalformed, err)
			}
			*id = parsed
			b = b[n:]
			continue
		}

		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return fmt.Errorf("%w: %v", codec.ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return nil
}
