package codec

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/mmynk/flouze/internal/models"
)

// field is one decoded (tag, value) pair. raw aliases the input buffer.
type field struct {
	num protowire.Number
	typ protowire.Type
	val uint64
	raw []byte
}

// walk calls visit for every varint and length-delimited field in b.
// Fields of other wire types are skipped.
func walk(b []byte, visit func(f field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		f := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			f.val, n = protowire.ConsumeVarint(b)
		case protowire.BytesType:
			f.raw, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
		}
		b = b[n:]

		if typ != protowire.VarintType && typ != protowire.BytesType {
			continue
		}
		if err := visit(f); err != nil {
			return err
		}
	}
	return nil
}

func (f field) varint() (uint64, error) {
	if f.typ != protowire.VarintType {
		return 0, f.wrongType()
	}
	return f.val, nil
}

func (f field) bytes() ([]byte, error) {
	if f.typ != protowire.BytesType {
		return nil, f.wrongType()
	}
	return f.raw, nil
}

func (f field) wrongType() error {
	return fmt.Errorf("%w: field %d has wire type %d", ErrMalformed, f.num, f.typ)
}

func (f field) str(dst *string) error {
	b, err := f.bytes()
	if err != nil {
		return err
	}
	*dst = string(b)
	return nil
}

func (f field) int64(dst *int64) error {
	v, err := f.varint()
	if err != nil {
		return err
	}
	*dst = int64(v)
	return nil
}

func (f field) personID(dst *models.PersonID) error {
	b, err := f.bytes()
	if err != nil {
		return err
	}
	id, err := models.PersonIDFromBytes(b)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	*dst = id
	return nil
}

func (f field) accountID(dst *models.AccountID) error {
	b, err := f.bytes()
	if err != nil {
		return err
	}
	id, err := models.AccountIDFromBytes(b)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	*dst = id
	return nil
}

func (f field) transactionID(dst *models.TransactionID) error {
	b, err := f.bytes()
	if err != nil {
		return err
	}
	id, err := models.TransactionIDFromBytes(b)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	*dst = id
	return nil
}

// share decodes an embedded PayedBy or PayedFor message.
func (f field) share() (models.PersonID, int64, error) {
	b, err := f.bytes()
	if err != nil {
		return models.PersonID{}, 0, err
	}
	var (
		person models.PersonID
		amount int64
	)
	err = walk(b, func(sf field) error {
		switch sf.num {
		case 1:
			return sf.personID(&person)
		case 2:
			return sf.int64(&amount)
		}
		return nil
	})
	return person, amount, err
}
