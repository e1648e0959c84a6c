package calculator

import (
	"iter"

	"github.com/mmynk/flouze/internal/models"
)

// MemberBalance represents the balance information for one account member.
type MemberBalance struct {
	Person     models.Person
	NetBalance int64 // Positive = owed money, Negative = owes money
	TotalPaid  int64 // Sum of payed_by amounts across the chain
	TotalOwed  int64 // Sum of payed_for amounts across the chain
}

// CalculateBalances replays transactions and returns one balance per member,
// in the order of members.
//
// Algorithm:
// - Every member starts at zero
// - For each payed_by entry: that person's TotalPaid += amount
// - For each payed_for entry: that person's TotalOwed += amount
// - NetBalance = TotalPaid - TotalOwed
//
// A person listed twice in members gets one row, at the first position.
// Entries naming someone outside members are ignored. Addition commutes, so
// the order of txs does not matter. The first error from txs aborts the
// calculation and no partial result is returned.
func CalculateBalances(members []models.Person, txs iter.Seq2[*models.Transaction, error]) ([]MemberBalance, error) {
	balances := make(map[models.PersonID]*MemberBalance, len(members))
	for _, m := range members {
		if _, exists := balances[m.UUID]; !exists {
			balances[m.UUID] = &MemberBalance{Person: m}
		}
	}

	for tx, err := range txs {
		if err != nil {
			return nil, err
		}

		for _, p := range tx.PayedBy {
			if bal, ok := balances[p.Person]; ok {
				bal.TotalPaid += p.Amount
			}
		}
		for _, p := range tx.PayedFor {
			if bal, ok := balances[p.Person]; ok {
				bal.TotalOwed += p.Amount
			}
		}
	}

	result := make([]MemberBalance, 0, len(balances))
	for _, m := range members {
		bal, ok := balances[m.UUID]
		if !ok {
			continue
		}
		delete(balances, m.UUID)
		bal.NetBalance = bal.TotalPaid - bal.TotalOwed
		result = append(result, *bal)
	}
	return result, nil
}

// NetBalances is CalculateBalances reduced to a PersonID -> net balance mapping.
func NetBalances(members []models.Person, txs iter.Seq2[*models.Transaction, error]) (map[models.PersonID]int64, error) {
	balances, err := CalculateBalances(members, txs)
	if err != nil {
		return nil, err
	}

	net := make(map[models.PersonID]int64, len(balances))
	for _, bal := range balances {
		net[bal.Person.UUID] = bal.NetBalance
	}
	return net, nil
}
