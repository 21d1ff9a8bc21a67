// Package store provides the SQLite-backed relational side of the Agora
// bookkeeping data: the expense/client/supplier/project schema, its
// numbered idempotent migrations, and the queries the reconcile report
// reads as the independent source of totals.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/brun04maral/agora-ledger/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store wraps the sqlite database.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens or creates the database at the given path.
func Open(dbPath string, log zerolog.Logger) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	return &Store{db: db, log: log}, nil
}

// OpenExisting opens the database only if the file already exists, for
// read-only reports that must not silently create an empty store.
func OpenExisting(dbPath string, log zerolog.Logger) (*Store, error) {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("database not found: %s", dbPath)
	}
	return Open(dbPath, log)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertExpenses writes classified ledger records into the expenses
// table in a single transaction. partnerFor maps a record's category to
// the partner value column (empty for shared categories). Returns the
// number of rows written.
func (s *Store) UpsertExpenses(records []model.ExpenseRecord, partnerFor func(model.Category) string) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`INSERT INTO expenses
		(number, description, type_label, category, source_row, periodicity,
		 amount, due_date, payment_date, status, partner, synced_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(number) DO UPDATE SET
		 description = excluded.description,
		 type_label  = excluded.type_label,
		 category    = excluded.category,
		 source_row  = excluded.source_row,
		 periodicity = excluded.periodicity,
		 amount      = excluded.amount,
		 due_date    = excluded.due_date,
		 payment_date = excluded.payment_date,
		 status      = excluded.status,
		 partner     = excluded.partner,
		 synced_at   = excluded.synced_at`)
	if err != nil {
		return 0, err
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC().Format(time.RFC3339)
	written := 0
	for _, rec := range records {
		due := ""
		if rec.Due.Known() {
			due = rec.Due.String()
		}
		pay := ""
		status := "active"
		if rec.PaymentDate != nil {
			pay = rec.PaymentDate.Format("2006-01-02")
			status = "paid"
		}
		partner := ""
		if partnerFor != nil {
			partner = partnerFor(rec.Category)
		}

		if _, err := stmt.Exec(
			rec.Number, rec.Description, rec.TypeLabel, rec.Category.String(),
			rec.Row, rec.Periodicity, rec.Amount.String(), due, pay, status,
			partner, now,
		); err != nil {
			return 0, fmt.Errorf("upserting expense %s: %w", rec.Number, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return written, nil
}

// CategoryTotals returns the stored per-category count and amount sum.
// Amounts are stored as decimal strings, so the summation happens here
// rather than in SQL.
func (s *Store) CategoryTotals() ([]model.CategoryTotal, error) {
	rows, err := s.db.Query("SELECT category, amount FROM expenses")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	byCat := make(map[model.Category]*model.CategoryTotal)
	for _, c := range model.Categories {
		byCat[c] = &model.CategoryTotal{Category: c, Total: decimal.Zero}
	}

	for rows.Next() {
		var cat, amount string
		if err := rows.Scan(&cat, &amount); err != nil {
			return nil, err
		}
		ct := byCat[model.CategoryFromString(cat)]
		ct.Count++
		if d, err := decimal.NewFromString(amount); err == nil {
			ct.Total = ct.Total.Add(d)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]model.CategoryTotal, 0, len(model.Categories))
	for _, c := range model.Categories {
		out = append(out, *byCat[c])
	}
	return out, nil
}

// SaveSettlement records a computed settlement snapshot.
func (s *Store) SaveSettlement(set model.Settlement) error {
	_, err := s.db.Exec(`INSERT INTO settlements
		(reference_date, paid_total, pending_total, per_partner_share,
		 paid_count, pending_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		set.Reference.Format("2006-01-02"),
		set.PaidTotal.String(), set.PendingTotal.String(), set.PerPartnerShare.String(),
		set.PaidCount, set.PendingCount,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// TableCounts returns row counts for the schema's tables that exist.
func (s *Store) TableCounts() (map[string]int, error) {
	tables := []string{"clients", "suppliers", "projects", "expenses", "settlements"}
	counts := make(map[string]int)
	for _, t := range tables {
		exists, err := tableExists(s.db, t)
		if err != nil {
			return nil, err
		}
		if !exists {
			continue
		}
		var n int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + t).Scan(&n); err != nil {
			return nil, err
		}
		counts[t] = n
	}
	return counts, nil
}
