package store

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/brun04maral/agora-ledger/internal/logger"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "agora.db"), logger.NewWithWriter(io.Discard, false))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestMigrateUp_FreshDatabase(t *testing.T) {
	s := openTestStore(t)

	results, err := s.MigrateUp()
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(Migrations) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(Migrations))
	}

	for _, r := range results {
		switch r.Migration.Name {
		case "rename_partner_values", "mark_matured_fixed_paid":
			// Data migrations have nothing to rewrite on a fresh schema.
			if r.State != StateAlreadyApplied {
				t.Errorf("%s state = %v, want already applied", r.Migration.Name, r.State)
			}
		default:
			if r.State != StateApplied {
				t.Errorf("%s state = %v, want applied", r.Migration.Name, r.State)
			}
		}
	}
}

func TestMigrateUp_Idempotent(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.MigrateUp(); err != nil {
		t.Fatal(err)
	}
	results, err := s.MigrateUp()
	if err != nil {
		t.Fatal(err)
	}

	for _, r := range results {
		if r.State != StateAlreadyApplied {
			t.Errorf("second run: %s state = %v, want already applied", r.Migration.Name, r.State)
		}
	}
}

func TestMigrateUp_ConflictTreatedAsNoOp(t *testing.T) {
	s := openTestStore(t)

	// Create a conflicting table behind the runner's back and execute the
	// unit directly, bypassing the probe, so the CREATE hits an
	// already-exists error.
	if _, err := s.db.Exec(`CREATE TABLE clients (id INTEGER PRIMARY KEY)`); err != nil {
		t.Fatal(err)
	}

	res := s.runUnit(Migrations[0], Migrations[0].Up)
	if res.State != StateAlreadyApplied {
		t.Errorf("state = %v, want already applied on schema conflict", res.State)
	}
}

func TestMigrateUp_FailureAborts(t *testing.T) {
	s := openTestStore(t)

	res := s.runUnit(Migration{Seq: 99, Name: "broken"}, []string{`CREATE TABLE`})
	if res.State != StateFailed {
		t.Errorf("state = %v, want failed", res.State)
	}
	if res.Err == nil {
		t.Error("failed unit must carry its error")
	}
}

func TestMigrateDown(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.MigrateUp(); err != nil {
		t.Fatal(err)
	}

	t.Run("reversible unit", func(t *testing.T) {
		res, err := s.MigrateDown(12)
		if err != nil {
			t.Fatal(err)
		}
		if res.State != StateApplied {
			t.Errorf("state = %v, want applied", res.State)
		}
		exists, err := indexProbe("idx_expenses_category")(s.db)
		if err != nil {
			t.Fatal(err)
		}
		if exists {
			t.Error("index still present after rollback")
		}
	})

	t.Run("irreversible unit refused", func(t *testing.T) {
		if _, err := s.MigrateDown(11); err == nil {
			t.Fatal("want error rolling back an irreversible data migration")
		}
	})

	t.Run("unknown sequence", func(t *testing.T) {
		if _, err := s.MigrateDown(404); err == nil {
			t.Fatal("want error for unknown sequence")
		}
	})
}

func TestMigrationStates(t *testing.T) {
	s := openTestStore(t)

	states, err := s.MigrationStates()
	if err != nil {
		t.Fatal(err)
	}
	pending := 0
	for _, r := range states {
		if r.State == StatePending {
			pending++
		}
	}
	// Structural units are pending on a fresh database; the data units
	// probe as pending too while their column is missing.
	if pending != len(Migrations) {
		t.Errorf("pending = %d, want %d before any migration", pending, len(Migrations))
	}

	if _, err := s.MigrateUp(); err != nil {
		t.Fatal(err)
	}
	states, err = s.MigrationStates()
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range states {
		if r.State != StateAlreadyApplied {
			t.Errorf("%s state = %v, want already applied after MigrateUp", r.Migration.Name, r.State)
		}
	}
}

func TestIsSchemaConflict(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"SQL logic error: table clients already exists (1)", true},
		{"SQL logic error: duplicate column name: status (1)", true},
		{"no such table: widgets", false},
	}
	for _, tt := range tests {
		if got := isSchemaConflict(errString(tt.msg)); got != tt.want {
			t.Errorf("isSchemaConflict(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}

type errString string

func (e errString) Error() string { return string(e) }
