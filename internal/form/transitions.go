// Package form owns the intake form state: the working Selection, the
// per-field validation errors and the batch of completed records.
package form

import "github.com/alexanderramin/rpdform/internal/domain"

// Dependents maps a field to every field that must be cleared when it
// changes. The table is closed under transitivity.
var Dependents = map[domain.Field][]domain.Field{
	domain.FieldClassSection: {domain.FieldStudent},
	domain.FieldService:      {domain.FieldStage1, domain.FieldStage2, domain.FieldStage3},
	domain.FieldStage1:       {domain.FieldStage2, domain.FieldStage3},
	domain.FieldStage2:       {domain.FieldStage3},
}

// Apply sets f to v on sel and clears its dependents.
func Apply(sel domain.Selection, f domain.Field, v string) domain.Selection {
	sel.Set(f, v)
	for _, d := range Dependents[f] {
		sel.Set(d, "")
	}
	return sel
}
