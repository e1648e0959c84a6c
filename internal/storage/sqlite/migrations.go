package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
//
// Ids are stored as BLOBs: key columns always hold the raw 16 bytes, while
// reference columns (latest_transaction, parent, replaces, person_id) are
// NULL for the empty id.
//
// transactions has no foreign key to accounts: deleting an account leaves
// its transactions in place.
const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id BLOB NOT NULL UNIQUE,
    label TEXT NOT NULL,
    latest_transaction BLOB
);

CREATE TABLE IF NOT EXISTS account_members (
    account_id BLOB NOT NULL,
    position INTEGER NOT NULL,
    person_id BLOB,
    name TEXT NOT NULL,
    PRIMARY KEY (account_id, position),
    FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS transactions (
    account_id BLOB NOT NULL,
    id BLOB NOT NULL,
    parent BLOB,
    amount INTEGER NOT NULL,
    label TEXT NOT NULL,
    timestamp INTEGER NOT NULL,
    deleted INTEGER NOT NULL DEFAULT 0,
    replaces BLOB,
    PRIMARY KEY (account_id, id)
);

CREATE TABLE IF NOT EXISTS transaction_shares (
    account_id BLOB NOT NULL,
    transaction_id BLOB NOT NULL,
    kind TEXT NOT NULL CHECK (kind IN ('by', 'for')),
    position INTEGER NOT NULL,
    person_id BLOB,
    amount INTEGER NOT NULL,
    PRIMARY KEY (account_id, transaction_id, kind, position),
    FOREIGN KEY (account_id, transaction_id) REFERENCES transactions(account_id, id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_account_members_account_id ON account_members(account_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
