// Package pipeline orchestrates the one-way data flow: workbook rows are
// read, mapped to records, classified, and handed to the aggregators.
// Each invocation reads the source fully into memory, computes, and
// returns; nothing persists between runs.
package pipeline

import (
	"github.com/brun04maral/agora-ledger/internal/classify"
	"github.com/brun04maral/agora-ledger/internal/config"
	"github.com/brun04maral/agora-ledger/internal/ledger"
	"github.com/brun04maral/agora-ledger/internal/model"
	"github.com/brun04maral/agora-ledger/internal/settle"
)

// LoadResult holds the classified ledger contents and the data-quality
// counters accumulated while reading.
type LoadResult struct {
	Records  []model.ExpenseRecord // every parsed row, classified, source order
	Eligible []model.ExpenseRecord // fixed-monthly settlement set, source order

	Sheet     string
	HeaderRow int
	RowErrors int
	Skipped   int
	Excluded  int // monthly records kept out by a payroll-exclusion keyword
}

// Load reads the workbook named by cfg (path and sheet overridable by the
// caller), classifies every record, and extracts the eligible set.
func Load(cfg config.Config, path, sheet string) (*LoadResult, error) {
	lc := cfg.Ledger
	if path != "" {
		lc.Path = path
	}
	if sheet != "" {
		lc.Sheet = sheet
	}

	read, err := ledger.Load(lc.Path, lc)
	if err != nil {
		return nil, err
	}

	cls := classify.New(cfg.Classify, cfg.Partners)

	result := &LoadResult{
		Records:   read.Records,
		Sheet:     read.Sheet,
		HeaderRow: read.HeaderRow,
		RowErrors: read.RowErrors,
		Skipped:   read.Skipped,
	}

	for i := range result.Records {
		rec := &result.Records[i]
		rec.Category = cls.Category(rec.TypeLabel, rec.Periodicity)
		if cls.IsMonthly(rec.Periodicity) && cls.Excluded(rec.TypeLabel) {
			result.Excluded++
		}
	}

	result.Eligible = settle.FilterEligible(result.Records, cls.Eligible)

	return result, nil
}
