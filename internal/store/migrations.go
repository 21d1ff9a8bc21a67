package store

import "database/sql"

// Migration is one numbered, idempotent schema-change unit. Applied
// state is probed from the live schema, not from a ledger table, so
// every unit must tolerate being re-run. Units with a nil Down are
// irreversible data migrations.
type Migration struct {
	Seq     int
	Name    string
	Up      []string
	Down    []string
	Applied func(db *sql.DB) (bool, error)
}

// Migrations is the ordered history of the Agora schema, including the
// partner value renames layered on top of the structural changes.
var Migrations = []Migration{
	{
		Seq:  1,
		Name: "create_clients",
		Up: []string{`CREATE TABLE clients (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL,
			contact    TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`},
		Down:    []string{`DROP TABLE clients`},
		Applied: tableProbe("clients"),
	},
	{
		Seq:  2,
		Name: "create_suppliers",
		Up: []string{`CREATE TABLE suppliers (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL,
			contact    TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`},
		Down:    []string{`DROP TABLE suppliers`},
		Applied: tableProbe("suppliers"),
	},
	{
		Seq:  3,
		Name: "create_projects",
		Up: []string{`CREATE TABLE projects (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			client_id  INTEGER REFERENCES clients(id),
			name       TEXT NOT NULL,
			started_on TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`},
		Down:    []string{`DROP TABLE projects`},
		Applied: tableProbe("projects"),
	},
	{
		Seq:  4,
		Name: "create_expenses",
		Up: []string{`CREATE TABLE expenses (
			number      TEXT PRIMARY KEY,
			description TEXT NOT NULL DEFAULT '',
			type_label  TEXT NOT NULL DEFAULT '',
			category    TEXT NOT NULL DEFAULT 'other',
			source_row  INTEGER,
			amount      TEXT NOT NULL DEFAULT '0',
			due_date    TEXT,
			project_id  INTEGER REFERENCES projects(id),
			synced_at   TEXT
		)`},
		Down:    []string{`DROP TABLE expenses`},
		Applied: tableProbe("expenses"),
	},
	{
		Seq:     5,
		Name:    "add_expense_periodicity",
		Up:      []string{`ALTER TABLE expenses ADD COLUMN periodicity TEXT NOT NULL DEFAULT ''`},
		Down:    []string{`ALTER TABLE expenses DROP COLUMN periodicity`},
		Applied: columnProbe("expenses", "periodicity"),
	},
	{
		Seq:     6,
		Name:    "add_expense_payment_date",
		Up:      []string{`ALTER TABLE expenses ADD COLUMN payment_date TEXT`},
		Down:    []string{`ALTER TABLE expenses DROP COLUMN payment_date`},
		Applied: columnProbe("expenses", "payment_date"),
	},
	{
		Seq:     7,
		Name:    "add_expense_status",
		Up:      []string{`ALTER TABLE expenses ADD COLUMN status TEXT NOT NULL DEFAULT 'active'`},
		Down:    []string{`ALTER TABLE expenses DROP COLUMN status`},
		Applied: columnProbe("expenses", "status"),
	},
	{
		Seq:     8,
		Name:    "add_expense_partner",
		Up:      []string{`ALTER TABLE expenses ADD COLUMN partner TEXT NOT NULL DEFAULT ''`},
		Down:    []string{`ALTER TABLE expenses DROP COLUMN partner`},
		Applied: columnProbe("expenses", "partner"),
	},
	{
		Seq:  9,
		Name: "create_settlements",
		Up: []string{`CREATE TABLE settlements (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			reference_date    TEXT NOT NULL,
			paid_total        TEXT NOT NULL DEFAULT '0',
			pending_total     TEXT NOT NULL DEFAULT '0',
			per_partner_share TEXT NOT NULL DEFAULT '0',
			paid_count        INTEGER NOT NULL DEFAULT 0,
			pending_count     INTEGER NOT NULL DEFAULT 0,
			created_at        TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`},
		Down:    []string{`DROP TABLE settlements`},
		Applied: tableProbe("settlements"),
	},
	{
		// Early rows used bare letters for the partner column; reports
		// and queries expect the lowercase names.
		Seq:  10,
		Name: "rename_partner_values",
		Up: []string{
			`UPDATE expenses SET partner = 'bruno' WHERE partner IN ('A', 'a', 'socio_a', 'sócio_a')`,
			`UPDATE expenses SET partner = 'maral' WHERE partner IN ('B', 'b', 'socio_b', 'sócio_b')`,
		},
		Down: []string{
			`UPDATE expenses SET partner = 'A' WHERE partner = 'bruno'`,
			`UPDATE expenses SET partner = 'B' WHERE partner = 'maral'`,
		},
		Applied: noRowsProbe("partner", `SELECT COUNT(*) FROM expenses
			WHERE partner IN ('A', 'a', 'socio_a', 'sócio_a', 'B', 'b', 'socio_b', 'sócio_b')`),
	},
	{
		Seq:  11,
		Name: "mark_matured_fixed_paid",
		Up: []string{`UPDATE expenses SET status = 'paid'
			WHERE status = 'active'
			  AND category = 'fixed_monthly'
			  AND due_date IS NOT NULL AND due_date <> ''
			  AND due_date <= date('now')`},
		Down: nil, // the pre-update statuses are gone
		Applied: noRowsProbe("status", `SELECT COUNT(*) FROM expenses
			WHERE status = 'active'
			  AND category = 'fixed_monthly'
			  AND due_date IS NOT NULL AND due_date <> ''
			  AND due_date <= date('now')`),
	},
	{
		Seq:  12,
		Name: "create_expense_indexes",
		Up: []string{
			`CREATE INDEX idx_expenses_category ON expenses(category)`,
			`CREATE INDEX idx_expenses_due ON expenses(due_date)`,
		},
		Down: []string{
			`DROP INDEX idx_expenses_category`,
			`DROP INDEX idx_expenses_due`,
		},
		Applied: indexProbe("idx_expenses_category"),
	},
}

// tableProbe reports whether a table exists in the live schema.
func tableProbe(name string) func(*sql.DB) (bool, error) {
	return func(db *sql.DB) (bool, error) {
		return tableExists(db, name)
	}
}

func tableExists(db *sql.DB, name string) (bool, error) {
	var n int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name,
	).Scan(&n)
	return n > 0, err
}

// columnProbe reports whether a column exists on a table.
func columnProbe(table, column string) func(*sql.DB) (bool, error) {
	return func(db *sql.DB) (bool, error) {
		rows, err := db.Query(`SELECT name FROM pragma_table_info(?)`, table)
		if err != nil {
			return false, err
		}
		defer func() { _ = rows.Close() }()
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				return false, err
			}
			if name == column {
				return true, nil
			}
		}
		return false, rows.Err()
	}
}

// indexProbe reports whether an index exists.
func indexProbe(name string) func(*sql.DB) (bool, error) {
	return func(db *sql.DB) (bool, error) {
		var n int
		err := db.QueryRow(
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = ?`, name,
		).Scan(&n)
		return n > 0, err
	}
}

// noRowsProbe treats a data migration as applied when no rows match its
// predicate. Vacuously applied on a fresh database, which is correct:
// there is nothing to migrate. column is the expenses column the
// predicate reads; while it is missing the unit counts as pending.
func noRowsProbe(column, countQuery string) func(*sql.DB) (bool, error) {
	return func(db *sql.DB) (bool, error) {
		exists, err := tableExists(db, "expenses")
		if err != nil || !exists {
			return false, err
		}
		has, err := columnProbe("expenses", column)(db)
		if err != nil || !has {
			return false, err
		}
		var n int
		if err := db.QueryRow(countQuery).Scan(&n); err != nil {
			return false, err
		}
		return n == 0, nil
	}
}
