package models

// Person is a member of an account.
type Person struct {
	// UUID is immutable once the person is created.
	UUID PersonID `json:"uuid"`

	// Name is the display name of the member.
	Name string `json:"name"`
}

// Account is a shared expense account.
// Updating an account means storing a full replacement under the same UUID.
type Account struct {
	// UUID never changes across updates.
	UUID AccountID `json:"uuid"`

	// Label is the human-readable name (e.g., "Flatmates", "Ski trip").
	Label string `json:"label"`

	// LatestTransaction is the head of the transaction chain.
	// Empty means the account has no transactions yet.
	LatestTransaction TransactionID `json:"latest_transaction"`

	// Members is the ordered list of people sharing the account.
	Members []Person `json:"members"`
}

// Clone returns a deep copy of the account. An empty member list comes back
// nil, the same as a decoded account with no members.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	c.Members = nil
	if len(a.Members) > 0 {
		c.Members = make([]Person, len(a.Members))
		copy(c.Members, a.Members)
	}
	return &c
}

// Member returns the member with the given id, if any.
func (a *Account) Member(id PersonID) (Person, bool) {
	for _, m := range a.Members {
		if m.UUID == id {
			return m, true
		}
	}
	return Person{}, false
}
