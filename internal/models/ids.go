package models

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// ErrInvalidID is returned when bytes or text cannot be decoded into an identifier.
var ErrInvalidID = errors.New("invalid identifier")

// IDSize is the length in bytes of every non-empty identifier.
const IDSize = 16

// PersonID identifies a member of an account. The zero value is the empty id.
type PersonID uuid.UUID

// AccountID identifies an account. The zero value is the empty id.
type AccountID uuid.UUID

// TransactionID identifies a transaction within an account.
// The zero value is the empty id and marks the root of a chain.
type TransactionID uuid.UUID

func (id PersonID) IsZero() bool      { return uuid.UUID(id) == uuid.Nil }
func (id AccountID) IsZero() bool     { return uuid.UUID(id) == uuid.Nil }
func (id TransactionID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

func (id PersonID) String() string      { return idString(uuid.UUID(id)) }
func (id AccountID) String() string     { return idString(uuid.UUID(id)) }
func (id TransactionID) String() string { return idString(uuid.UUID(id)) }

// Bytes returns the wire form of the id: 16 bytes, or nil for the empty id.
func (id PersonID) Bytes() []byte      { return idBytes(uuid.UUID(id)) }
func (id AccountID) Bytes() []byte     { return idBytes(uuid.UUID(id)) }
func (id TransactionID) Bytes() []byte { return idBytes(uuid.UUID(id)) }

func (id PersonID) MarshalText() ([]byte, error)      { return []byte(id.String()), nil }
func (id AccountID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }
func (id TransactionID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *PersonID) UnmarshalText(b []byte) error {
	u, err := parseID(string(b))
	*id = PersonID(u)
	return err
}

func (id *AccountID) UnmarshalText(b []byte) error {
	u, err := parseID(string(b))
	*id = AccountID(u)
	return err
}

func (id *TransactionID) UnmarshalText(b []byte) error {
	u, err := parseID(string(b))
	*id = TransactionID(u)
	return err
}

// ParsePersonID parses the canonical text form. The empty string yields the empty id.
func ParsePersonID(s string) (PersonID, error) {
	u, err := parseID(s)
	return PersonID(u), err
}

// ParseAccountID parses the canonical text form. The empty string yields the empty id.
func ParseAccountID(s string) (AccountID, error) {
	u, err := parseID(s)
	return AccountID(u), err
}

// ParseTransactionID parses the canonical text form. The empty string yields the empty id.
func ParseTransactionID(s string) (TransactionID, error) {
	u, err := parseID(s)
	return TransactionID(u), err
}

// PersonIDFromBytes decodes the wire form produced by Bytes.
func PersonIDFromBytes(b []byte) (PersonID, error) {
	u, err := idFromBytes(b)
	return PersonID(u), err
}

// AccountIDFromBytes decodes the wire form produced by Bytes.
func AccountIDFromBytes(b []byte) (AccountID, error) {
	u, err := idFromBytes(b)
	return AccountID(u), err
}

// TransactionIDFromBytes decodes the wire form produced by Bytes.
func TransactionIDFromBytes(b []byte) (TransactionID, error) {
	u, err := idFromBytes(b)
	return TransactionID(u), err
}

// Generator produces random identifiers from an explicit entropy source.
// Callers pass crypto/rand.Reader in production and a fixed reader in tests.
type Generator struct {
	rand io.Reader
}

// NewGenerator returns a Generator reading entropy from r.
func NewGenerator(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// PersonID returns a new random PersonID.
func (g *Generator) PersonID() (PersonID, error) {
	u, err := g.next()
	return PersonID(u), err
}

// AccountID returns a new random AccountID.
func (g *Generator) AccountID() (AccountID, error) {
	u, err := g.next()
	return AccountID(u), err
}

// TransactionID returns a new random TransactionID.
func (g *Generator) TransactionID() (TransactionID, error) {
	u, err := g.next()
	return TransactionID(u), err
}

func (g *Generator) next() (uuid.UUID, error) {
	u, err := uuid.NewRandomFromReader(g.rand)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to generate identifier: %w", err)
	}
	return u, nil
}

func idString(u uuid.UUID) string {
	if u == uuid.Nil {
		return ""
	}
	return u.String()
}

func idBytes(u uuid.UUID) []byte {
	if u == uuid.Nil {
		return nil
	}
	b := make([]byte, IDSize)
	copy(b, u[:])
	return b
}

func idFromBytes(b []byte) (uuid.UUID, error) {
	switch len(b) {
	case 0:
		return uuid.Nil, nil
	case IDSize:
		return uuid.FromBytes(b)
	default:
		return uuid.Nil, fmt.Errorf("%w: %d bytes", ErrInvalidID, len(b))
	}
}

func parseID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return u, nil
}
