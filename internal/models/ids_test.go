package models

import (
	"bytes"
	"errors"
	"testing"
)

func TestGenerator(t *testing.T) {
	entropy := bytes.Repeat([]byte{0xab}, 16)
	entropy = append(entropy, bytes.Repeat([]byte{0x11}, 16)...)
	gen := NewGenerator(bytes.NewReader(entropy))

	first, err := gen.AccountID()
	if err != nil {
		t.Fatalf("AccountID failed: %v", err)
	}
	second, err := gen.PersonID()
	if err != nil {
		t.Fatalf("PersonID failed: %v", err)
	}

	if first.IsZero() || second.IsZero() {
		t.Fatal("expected non-empty ids")
	}
	if bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("expected distinct ids from distinct entropy")
	}

	// Entropy exhausted
	if _, err := gen.TransactionID(); err == nil {
		t.Error("expected error once the entropy source is exhausted")
	}
}

func TestIDBytes(t *testing.T) {
	t.Run("empty id has no bytes", func(t *testing.T) {
		var id TransactionID
		if id.Bytes() != nil {
			t.Errorf("Bytes() = %v, want nil", id.Bytes())
		}
		back, err := TransactionIDFromBytes(nil)
		if err != nil {
			t.Fatalf("TransactionIDFromBytes(nil) failed: %v", err)
		}
		if !back.IsZero() {
			t.Error("expected empty id from empty bytes")
		}
	})

	t.Run("round trip", func(t *testing.T) {
		gen := NewGenerator(bytes.NewReader(bytes.Repeat([]byte{0x42}, 16)))
		id, err := gen.TransactionID()
		if err != nil {
			t.Fatalf("TransactionID failed: %v", err)
		}
		b := id.Bytes()
		if len(b) != IDSize {
			t.Fatalf("len(Bytes()) = %d, want %d", len(b), IDSize)
		}
		back, err := TransactionIDFromBytes(b)
		if err != nil {
			t.Fatalf("TransactionIDFromBytes failed: %v", err)
		}
		if back != id {
			t.Errorf("got %s, want %s", back, id)
		}
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := AccountIDFromBytes([]byte{1, 2, 3})
		if !errors.Is(err, ErrInvalidID) {
			t.Errorf("expected ErrInvalidID, got %v", err)
		}
	})
}

func TestIDText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		zero    bool
	}{
		{name: "empty", input: "", zero: true},
		{name: "canonical", input: "6ba7b810-9dad-41d1-80b4-00c04fd430c8"},
		{name: "garbage", input: "not-a-uuid", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParsePersonID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePersonID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if id.IsZero() != tt.zero {
				t.Errorf("IsZero() = %v, want %v", id.IsZero(), tt.zero)
			}
			text, _ := id.MarshalText()
			if string(text) != tt.input {
				t.Errorf("MarshalText() = %q, want %q", text, tt.input)
			}
		})
	}
}

func TestClone(t *testing.T) {
	account := &Account{
		Label:   "Flat",
		Members: []Person{{Name: "Alice"}, {Name: "Bob"}},
	}
	c := account.Clone()
	c.Members[0].Name = "Mallory"
	if account.Members[0].Name != "Alice" {
		t.Error("mutating a cloned account changed the original")
	}

	tx := &Transaction{
		PayedBy:  []PayedBy{{Amount: 10}},
		PayedFor: []PayedFor{{Amount: 10}},
	}
	tc := tx.Clone()
	tc.PayedBy[0].Amount = 99
	tc.PayedFor[0].Amount = 99
	if tx.PayedBy[0].Amount != 10 || tx.PayedFor[0].Amount != 10 {
		t.Error("mutating a cloned transaction changed the original")
	}
}

func TestCloneNormalizesEmptyLists(t *testing.T) {
	account := (&Account{Label: "Flat", Members: []Person{}}).Clone()
	if account.Members != nil {
		t.Errorf("Members = %#v, want nil", account.Members)
	}

	tx := (&Transaction{PayedBy: []PayedBy{}, PayedFor: []PayedFor{}}).Clone()
	if tx.PayedBy != nil || tx.PayedFor != nil {
		t.Errorf("shares = %#v / %#v, want nil", tx.PayedBy, tx.PayedFor)
	}
}
