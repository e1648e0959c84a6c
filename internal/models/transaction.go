package models

// PayedBy records how much one person paid towards a transaction.
type PayedBy struct {
	Person PersonID `json:"person"`
	Amount int64    `json:"amount"`
}

// PayedFor records how much of a transaction is attributed to one person.
type PayedFor struct {
	Person PersonID `json:"person"`
	Amount int64    `json:"amount"`
}

// Transaction is one expense in an account's chain.
// A transaction belongs to exactly one account and is keyed by
// (account id, UUID). Edits store a full replacement under the same UUID.
type Transaction struct {
	// UUID identifies this transaction and never changes.
	UUID TransactionID `json:"uuid"`

	// Parent is the previous transaction in the chain.
	// Empty marks the root.
	Parent TransactionID `json:"parent"`

	// Amount is the total of the expense in minor currency units.
	Amount int64 `json:"amount"`

	// PayedBy lists who paid, in order.
	PayedBy []PayedBy `json:"payed_by"`

	// PayedFor lists who the expense was for, in order.
	PayedFor []PayedFor `json:"payed_for"`

	// Label describes the expense (e.g., "Fish & Chips").
	Label string `json:"label"`

	// Timestamp is the Unix time of the expense, in seconds.
	Timestamp int64 `json:"timestamp"`

	// Deleted marks the transaction as logically removed.
	// It stays in the chain; filtering is up to the caller.
	Deleted bool `json:"deleted"`

	// Replaces is the transaction this one supersedes, or empty.
	Replaces TransactionID `json:"replaces"`
}

// Clone returns a deep copy of the transaction. Empty share lists come back nil.
func (t *Transaction) Clone() *Transaction {
	if t == nil {
		return nil
	}
	c := *t
	c.PayedBy, c.PayedFor = nil, nil
	if len(t.PayedBy) > 0 {
		c.PayedBy = make([]PayedBy, len(t.PayedBy))
		copy(c.PayedBy, t.PayedBy)
	}
	if len(t.PayedFor) > 0 {
		c.PayedFor = make([]PayedFor, len(t.PayedFor))
		copy(c.PayedFor, t.PayedFor)
	}
	return &c
}
