package store

import (
	"fmt"
	"strings"
)

// UnitState is the outcome of one migration unit.
type UnitState int

const (
	StatePending UnitState = iota
	StateAlreadyApplied
	StateApplied
	StateFailed
)

func (s UnitState) String() string {
	switch s {
	case StateAlreadyApplied:
		return "already applied"
	case StateApplied:
		return "applied"
	case StateFailed:
		return "failed"
	default:
		return "pending"
	}
}

// UnitResult pairs a migration with its outcome.
type UnitResult struct {
	Migration Migration
	State     UnitState
	Err       error
}

// MigrateUp runs all pending units in ascending order. Each unit gets
// its own transaction. Applied state is probed from the live schema
// first; a unit whose statements still hit an already-exists error is
// reported as a no-op rather than a failure. Any other error rolls the
// unit back and aborts the run, leaving later units untouched.
func (s *Store) MigrateUp() ([]UnitResult, error) {
	results := make([]UnitResult, 0, len(Migrations))

	for _, m := range Migrations {
		applied, err := m.Applied(s.db)
		if err != nil {
			return results, fmt.Errorf("probing migration %03d_%s: %w", m.Seq, m.Name, err)
		}
		if applied {
			s.log.Info().Int("seq", m.Seq).Str("name", m.Name).Msg("skip: already applied")
			results = append(results, UnitResult{Migration: m, State: StateAlreadyApplied})
			continue
		}

		res := s.runUnit(m, m.Up)
		results = append(results, res)
		if res.State == StateFailed {
			return results, fmt.Errorf("migration %03d_%s: %w", m.Seq, m.Name, res.Err)
		}
	}

	return results, nil
}

// MigrateDown rolls back the single unit with the given sequence number.
func (s *Store) MigrateDown(seq int) (UnitResult, error) {
	for _, m := range Migrations {
		if m.Seq != seq {
			continue
		}
		if m.Down == nil {
			return UnitResult{Migration: m, State: StateFailed},
				fmt.Errorf("migration %03d_%s is irreversible", m.Seq, m.Name)
		}
		applied, err := m.Applied(s.db)
		if err != nil {
			return UnitResult{Migration: m}, err
		}
		if !applied {
			s.log.Info().Int("seq", m.Seq).Str("name", m.Name).Msg("skip: not applied")
			return UnitResult{Migration: m, State: StateAlreadyApplied}, nil
		}
		res := s.runUnit(m, m.Down)
		if res.State == StateFailed {
			return res, fmt.Errorf("rolling back %03d_%s: %w", m.Seq, m.Name, res.Err)
		}
		return res, nil
	}
	return UnitResult{}, fmt.Errorf("no migration with sequence %d", seq)
}

// runUnit executes one unit's statements inside a transaction.
func (s *Store) runUnit(m Migration, stmts []string) UnitResult {
	tx, err := s.db.Begin()
	if err != nil {
		return UnitResult{Migration: m, State: StateFailed, Err: err}
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			_ = tx.Rollback()
			if isSchemaConflict(err) {
				// The probe missed it but the schema object is there.
				s.log.Warn().Int("seq", m.Seq).Str("name", m.Name).
					Err(err).Msg("schema conflict treated as no-op")
				return UnitResult{Migration: m, State: StateAlreadyApplied}
			}
			s.log.Error().Int("seq", m.Seq).Str("name", m.Name).Err(err).Msg("migration failed")
			return UnitResult{Migration: m, State: StateFailed, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return UnitResult{Migration: m, State: StateFailed, Err: err}
	}

	s.log.Info().Int("seq", m.Seq).Str("name", m.Name).Msg("applied")
	return UnitResult{Migration: m, State: StateApplied}
}

// MigrationStates probes every unit against the live schema without
// mutating anything, for the status report.
func (s *Store) MigrationStates() ([]UnitResult, error) {
	results := make([]UnitResult, 0, len(Migrations))
	for _, m := range Migrations {
		applied, err := m.Applied(s.db)
		if err != nil {
			return nil, fmt.Errorf("probing migration %03d_%s: %w", m.Seq, m.Name, err)
		}
		state := StatePending
		if applied {
			state = StateAlreadyApplied
		}
		results = append(results, UnitResult{Migration: m, State: state})
	}
	return results, nil
}

// isSchemaConflict matches the sqlite errors raised when the target
// object of a CREATE or ADD COLUMN is already present.
func isSchemaConflict(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") ||
		strings.Contains(msg, "duplicate column")
}
