// Package classify decides which accounting bucket an expense belongs to
// and whether it is eligible for the fixed-monthly settlement. All
// decisions are keyword-driven from configuration because type and
// periodicity labels drift between ledger versions.
package classify

import (
	"github.com/brun04maral/agora-ledger/internal/config"
	"github.com/brun04maral/agora-ledger/internal/model"
)

// Classifier partitions expenses using the configured keyword lists.
type Classifier struct {
	monthly    []string
	exclusions []string
	equipment  []string
	project    []string
	partnerA   string
	partnerB   string
}

// New builds a Classifier from configuration.
func New(cc config.ClassifyConfig, partners config.PartnersConfig) *Classifier {
	return &Classifier{
		monthly:    cc.MonthlyMarkers,
		exclusions: cc.ExclusionKeywords,
		equipment:  cc.EquipmentKeywords,
		project:    cc.ProjectKeywords,
		partnerA:   partners.A,
		partnerB:   partners.B,
	}
}

// Category maps a raw type label and periodicity to a bucket. Personal
// buckets are matched first: a payroll-like label naming a partner must
// never fall through to fixed-monthly, whatever its periodicity says.
func (c *Classifier) Category(typeLabel, periodicity string) model.Category {
	switch {
	case c.partnerA != "" && containsFolded(typeLabel, c.partnerA):
		return model.CategoryPersonalA
	case c.partnerB != "" && containsFolded(typeLabel, c.partnerB):
		return model.CategoryPersonalB
	case matchesAny(typeLabel, c.equipment):
		return model.CategoryEquipment
	case matchesAny(typeLabel, c.project):
		return model.CategoryProjectLinked
	case c.IsMonthly(periodicity) && !c.Excluded(typeLabel):
		return model.CategoryFixedMonthly
	default:
		return model.CategoryOther
	}
}

// IsMonthly reports whether the periodicity cell marks a recurring
// monthly expense. An absent cell is not eligible.
func (c *Classifier) IsMonthly(periodicity string) bool {
	if periodicity == "" {
		return false
	}
	return matchesAny(periodicity, c.monthly)
}

// Excluded reports whether the type label matches a payroll-exclusion
// keyword. Excluded records stay out of the settlement even when their
// periodicity says monthly.
func (c *Classifier) Excluded(typeLabel string) bool {
	return matchesAny(typeLabel, c.exclusions)
}

// Eligible reports whether a record enters the fixed-monthly settlement
// set: monthly periodicity, no payroll exclusion, and not one of the
// personal buckets (those are settled per partner, never split).
func (c *Classifier) Eligible(rec model.ExpenseRecord) bool {
	if !c.IsMonthly(rec.Periodicity) || c.Excluded(rec.TypeLabel) {
		return false
	}
	switch c.Category(rec.TypeLabel, rec.Periodicity) {
	case model.CategoryPersonalA, model.CategoryPersonalB:
		return false
	}
	return true
}
