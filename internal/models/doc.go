// Package models defines the core domain models for the flouze ledger.
//
// # Models
//
//   - Account: a shared expense account with its members and chain head
//   - Person: a member of an account (no lifecycle outside its account)
//   - Transaction: one expense in an account's chain, linked to its parent
//
// # Identifiers
//
// PersonID, AccountID and TransactionID are fixed-size opaque identifiers
// backed by UUIDs. The zero value of each is the "empty" id: an account with
// an empty LatestTransaction has no transactions yet, and a transaction with
// an empty Parent is the root of its chain. New ids come from a Generator
// built around an explicit entropy source.
//
// # Design Principles
//
//  1. Models carry shape only; integrity rules live in storage and ledger.
//  2. Edits are full replacements under the same id (upsert).
//  3. Values handed out by a repository are deep copies (see Clone).
package models
