// Package codec encodes the ledger models to bytes and back.
//
// The encoding is the protobuf wire format, written and read field by field
// with protowire. Field numbers are part of the persisted format and must
// never be reused:
//
//	Person          1 uuid, 2 name
//	Account         1 uuid, 2 label, 3 latest_transaction, 4 members
//	PayedBy/For     1 person, 2 amount
//	Transaction     1 uuid, 2 parent, 3 amount, 4 payed_by, 5 payed_for,
//	                6 label, 7 timestamp, 8 deleted, 9 replaces
//	AccountList     1 accounts
//	TransactionList 1 transactions
//
// Default values are omitted on encode and unknown fields are skipped on
// decode, so newer writers stay readable by older readers.
package codec

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/mmynk/flouze/internal/models"
)

// SchemaVersion identifies the current field layout.
const SchemaVersion = 1

// ErrMalformed is returned when bytes cannot be decoded.
var ErrMalformed = errors.New("malformed encoding")

// MarshalAccount encodes an account.
func MarshalAccount(a *models.Account) []byte {
	return appendAccount(nil, a)
}

// UnmarshalAccount decodes an account produced by MarshalAccount.
func UnmarshalAccount(b []byte) (*models.Account, error) {
	a := &models.Account{}
	err := walk(b, func(f field) error {
		var err error
		switch f.num {
		case 1:
			err = f.accountID(&a.UUID)
		case 2:
			err = f.str(&a.Label)
		case 3:
			err = f.transactionID(&a.LatestTransaction)
		case 4:
			var raw []byte
			if raw, err = f.bytes(); err == nil {
				var p models.Person
				if p, err = unmarshalPerson(raw); err == nil {
					a.Members = append(a.Members, p)
				}
			}
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("account: %w", err)
	}
	return a, nil
}

// MarshalTransaction encodes a transaction.
func MarshalTransaction(t *models.Transaction) []byte {
	return appendTransaction(nil, t)
}

// UnmarshalTransaction decodes a transaction produced by MarshalTransaction.
func UnmarshalTransaction(b []byte) (*models.Transaction, error) {
	t := &models.Transaction{}
	err := walk(b, func(f field) error {
		var err error
		switch f.num {
		case 1:
			err = f.transactionID(&t.UUID)
		case 2:
			err = f.transactionID(&t.Parent)
		case 3:
			err = f.int64(&t.Amount)
		case 4:
			var share models.PayedBy
			if share.Person, share.Amount, err = f.share(); err == nil {
				t.PayedBy = append(t.PayedBy, share)
			}
		case 5:
			var share models.PayedFor
			if share.Person, share.Amount, err = f.share(); err == nil {
				t.PayedFor = append(t.PayedFor, share)
			}
		case 6:
			err = f.str(&t.Label)
		case 7:
			err = f.int64(&t.Timestamp)
		case 8:
			var v uint64
			if v, err = f.varint(); err == nil {
				t.Deleted = protowire.DecodeBool(v)
			}
		case 9:
			err = f.transactionID(&t.Replaces)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("transaction: %w", err)
	}
	return t, nil
}

// MarshalAccountList encodes a list of accounts as one message.
func MarshalAccountList(accounts []*models.Account) []byte {
	var b []byte
	for _, a := range accounts {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, MarshalAccount(a))
	}
	return b
}

// UnmarshalAccountList decodes the output of MarshalAccountList.
func UnmarshalAccountList(b []byte) ([]*models.Account, error) {
	var accounts []*models.Account
	err := walk(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		raw, err := f.bytes()
		if err != nil {
			return err
		}
		a, err := UnmarshalAccount(raw)
		if err != nil {
			return err
		}
		accounts = append(accounts, a)
		return nil
	})
	return accounts, err
}

// MarshalTransactionList encodes a list of transactions as one message.
func MarshalTransactionList(txs []*models.Transaction) []byte {
	var b []byte
	for _, t := range txs {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, MarshalTransaction(t))
	}
	return b
}

// UnmarshalTransactionList decodes the output of MarshalTransactionList.
func UnmarshalTransactionList(b []byte) ([]*models.Transaction, error) {
	var txs []*models.Transaction
	err := walk(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		raw, err := f.bytes()
		if err != nil {
			return err
		}
		t, err := UnmarshalTransaction(raw)
		if err != nil {
			return err
		}
		txs = append(txs, t)
		return nil
	})
	return txs, err
}

func appendAccount(b []byte, a *models.Account) []byte {
	b = appendID(b, 1, a.UUID.Bytes())
	b = appendString(b, 2, a.Label)
	b = appendID(b, 3, a.LatestTransaction.Bytes())
	for _, m := range a.Members {
		var p []byte
		p = appendID(p, 1, m.UUID.Bytes())
		p = appendString(p, 2, m.Name)
		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendBytes(b, p)
	}
	return b
}

func appendTransaction(b []byte, t *models.Transaction) []byte {
	b = appendID(b, 1, t.UUID.Bytes())
	b = appendID(b, 2, t.Parent.Bytes())
	b = appendInt64(b, 3, t.Amount)
	for _, s := range t.PayedBy {
		b = appendShare(b, 4, s.Person, s.Amount)
	}
	for _, s := range t.PayedFor {
		b = appendShare(b, 5, s.Person, s.Amount)
	}
	b = appendString(b, 6, t.Label)
	b = appendInt64(b, 7, t.Timestamp)
	if t.Deleted {
		b = protowire.AppendTag(b, 8, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	}
	b = appendID(b, 9, t.Replaces.Bytes())
	return b
}

func appendShare(b []byte, num protowire.Number, person models.PersonID, amount int64) []byte {
	var s []byte
	s = appendID(s, 1, person.Bytes())
	s = appendInt64(s, 2, amount)
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, s)
}

func appendID(b []byte, num protowire.Number, id []byte) []byte {
	if len(id) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, id)
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendInt64(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func unmarshalPerson(b []byte) (models.Person, error) {
	var p models.Person
	err := walk(b, func(f field) error {
		switch f.num {
		case 1:
			return f.personID(&p.UUID)
		case 2:
			return f.str(&p.Name)
		}
		return nil
	})
	if err != nil {
		return models.Person{}, fmt.Errorf("person: %w", err)
	}
	return p, nil
}
