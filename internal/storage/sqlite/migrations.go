package sqlite

import "database/sql"

// schema sets up the database. It runs on startup to ensure tables exist.
// Foreign keys have no ON DELETE action: owned rows are deleted explicitly,
// children first, so a forgotten child fails the constraint instead of
// disappearing silently.
const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS bills (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    account_id INTEGER NOT NULL,
    issue_date INTEGER NOT NULL,
    due_date INTEGER NOT NULL,
    FOREIGN KEY (account_id) REFERENCES accounts(id)
);

CREATE TABLE IF NOT EXISTS bill_charges (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    bill_id INTEGER NOT NULL,
    charge_type TEXT NOT NULL,
    amount TEXT NOT NULL,
    tax TEXT,
    FOREIGN KEY (bill_id) REFERENCES bills(id)
);

CREATE INDEX IF NOT EXISTS idx_bills_account_id ON bills(account_id);
CREATE INDEX IF NOT EXISTS idx_bills_due_date ON bills(due_date);
CREATE INDEX IF NOT EXISTS idx_bill_charges_bill_id ON bill_charges(bill_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
