package cascade

import (
	"fmt"

	"github.com/alexanderramin/rpdform/internal/dataset"
	"github.com/alexanderramin/rpdform/internal/domain"
	"github.com/alexanderramin/rpdform/internal/stages"
)

// AdvisoryLevel grades an inline message shown under a field.
type AdvisoryLevel int

const (
	AdvisoryNone AdvisoryLevel = iota
	AdvisoryInfo
	AdvisoryWarning
)

// Advisory is an inline, non-blocking message about a field.
type Advisory struct {
	Level   AdvisoryLevel
	Message string
	// Details lists supporting items, e.g. the available sheet names.
	Details []string
	Hint    string
}

// IsZero reports whether there is nothing to show.
func (a Advisory) IsZero() bool {
	return a.Level == AdvisoryNone
}

const (
	msgRosterMissing  = "Bu şube için öğrenci listesi bulunamadı."
	msgRosterHint     = `Öğrenci sayfaları "ogrenci", "öğrenci" veya "student" kelimesini içermelidir.`
	msgStagesMissing  = "Aşama verileri yüklenemedi."
	msgStage1Missing  = "1. Aşama verileri bulunamadı. Seçilen hizmet türü için veri kontrolü yapınız."
	msgStage2Missing  = "2. Aşama verileri bulunamadı. Seçilen 1. aşama için veri kontrolü yapınız."
	msgStage3Missing  = "3. Aşama verileri bulunamadı. Seçilen 2. aşama için veri kontrolü yapınız."
	msgStage3Optional = "İB (Bireysel Psikolojik Danışma) ve İS (Sevk) hizmetleri için 3. Aşama seçimi opsiyoneldir."
)

// Resolver answers per-field questions about a Selection against one
// dataset snapshot and one stage graph. A nil graph means the stage
// document could not be loaded; stage fields then stay disabled.
type Resolver struct {
	table  *dataset.Table
	graph  *stages.Graph
	roster RosterOptions
}

// NewResolver binds a resolver to a snapshot.
func NewResolver(table *dataset.Table, graph *stages.Graph, roster RosterOptions) *Resolver {
	return &Resolver{table: table, graph: graph, roster: roster}
}

// Table returns the dataset snapshot.
func (r *Resolver) Table() *dataset.Table { return r.table }

// Graph returns the stage graph, nil if none is loaded.
func (r *Resolver) Graph() *stages.Graph { return r.graph }

// Roster resolves the roster for the selection's class/section.
func (r *Resolver) Roster(sel domain.Selection) RosterMatch {
	return ResolveRoster(r.table, sel.ClassSection, r.roster)
}

// Options returns the choices for f given the rest of sel. Typed fields
// have none.
func (r *Resolver) Options(sel domain.Selection, f domain.Field) []domain.Option {
	switch f {
	case domain.FieldClassSection:
		return r.table.Options(domain.CategoryClassSection)
	case domain.FieldStudent:
		return r.Roster(sel).Students
	case domain.FieldService:
		return r.table.Options(domain.CategoryService)
	case domain.FieldStage1:
		return Stage1Options(r.graph, sel.Service)
	case domain.FieldStage2:
		return Stage2Options(r.graph, sel.Service, sel.Stage1)
	case domain.FieldStage3:
		return Stage3Options(r.graph, sel.Service, sel.Stage1, sel.Stage2)
	case domain.FieldLocation:
		return r.table.Options(domain.CategoryLocation)
	default:
		return nil
	}
}

// Enabled reports whether f can be edited, i.e. its upstream is filled.
func (r *Resolver) Enabled(sel domain.Selection, f domain.Field) bool {
	switch f {
	case domain.FieldStudent:
		return sel.ClassSection != ""
	case domain.FieldStage1:
		return sel.Service != "" && r.graph != nil
	case domain.FieldStage2:
		return sel.Stage1 != "" && r.graph != nil
	case domain.FieldStage3:
		return sel.Stage2 != "" && r.graph != nil
	default:
		return true
	}
}

// Required reports whether f must be filled before submit.
func (r *Resolver) Required(sel domain.Selection, f domain.Field) bool {
	if f == domain.FieldStage3 {
		return IsStage3Required(sel.Stage1)
	}
	return true
}

// Placeholder returns the empty-choice text for f.
func (r *Resolver) Placeholder(sel domain.Selection, f domain.Field) string {
	switch f {
	case domain.FieldStudent:
		if sel.ClassSection == "" {
			return "Önce şube seçiniz..."
		}
	case domain.FieldStage1:
		if sel.Service == "" {
			return "Önce RPD Hizmet Türü seçiniz..."
		}
	case domain.FieldStage2:
		if sel.Stage1 == "" {
			return "Önce 1. Aşama seçiniz..."
		}
	case domain.FieldStage3:
		if sel.Stage2 == "" {
			return "Önce 2. Aşama seçiniz..."
		}
	}
	switch f {
	case domain.FieldStage1, domain.FieldStage2, domain.FieldStage3:
		if r.graph == nil {
			return msgStagesMissing
		}
	}
	if !r.Required(sel, f) {
		return "Seçiniz... (opsiyonel)"
	}
	return "Seçiniz..."
}

// Badge returns the mandatory/optional marker shown next to the stage-3
// title, or "".
func (r *Resolver) Badge(sel domain.Selection, f domain.Field) string {
	if f != domain.FieldStage3 {
		return ""
	}
	switch {
	case IsStage3Required(sel.Stage1):
		return "(Zorunlu)"
	case sel.Stage2 != "":
		return "(Opsiyonel)"
	default:
		return ""
	}
}

// Advisory returns the inline message for f, if any.
func (r *Resolver) Advisory(sel domain.Selection, f domain.Field) Advisory {
	switch f {
	case domain.FieldStudent:
		return r.rosterAdvisory(sel)
	case domain.FieldStage1:
		return r.stageAdvisory(sel.Service, Stage1Options(r.graph, sel.Service), msgStage1Missing)
	case domain.FieldStage2:
		return r.stageAdvisory(sel.Stage1, Stage2Options(r.graph, sel.Service, sel.Stage1), msgStage2Missing)
	case domain.FieldStage3:
		if sel.Stage2 != "" && r.graph != nil && SuppressesStage3Warning(sel.Stage1) {
			return Advisory{Level: AdvisoryInfo, Message: msgStage3Optional}
		}
		return r.stageAdvisory(sel.Stage2, Stage3Options(r.graph, sel.Service, sel.Stage1, sel.Stage2), msgStage3Missing)
	default:
		return Advisory{}
	}
}

func (r *Resolver) stageAdvisory(upstream string, opts []domain.Option, missing string) Advisory {
	if upstream == "" {
		return Advisory{}
	}
	if r.graph == nil {
		return Advisory{Level: AdvisoryWarning, Message: msgStagesMissing}
	}
	if len(opts) == 0 {
		return Advisory{Level: AdvisoryWarning, Message: missing}
	}
	return Advisory{}
}

func (r *Resolver) rosterAdvisory(sel domain.Selection) Advisory {
	if sel.ClassSection == "" {
		return Advisory{}
	}
	m := r.Roster(sel)
	switch {
	case !m.Found() || len(m.Students) == 0:
		return Advisory{
			Level:   AdvisoryWarning,
			Message: msgRosterMissing,
			Details: r.table.Names(),
			Hint:    msgRosterHint,
		}
	case m.Ambiguous():
		return Advisory{
			Level:   AdvisoryWarning,
			Message: fmt.Sprintf("Birden fazla öğrenci sayfası eşleşti, %q kullanılıyor.", m.Sheet),
			Details: m.Candidates,
		}
	default:
		return Advisory{}
	}
}

// Prune clears every choice whose code is no longer offered for its
// upstream context, walking fields in display order so a cleared parent
// also clears its children.
func (r *Resolver) Prune(sel domain.Selection) domain.Selection {
	for _, f := range domain.Fields {
		if !f.IsChoice() {
			continue
		}
		v := sel.Get(f)
		if v == "" {
			continue
		}
		if !domain.ContainsCode(r.Options(sel, f), v) {
			sel.Set(f, "")
		}
	}
	return sel
}

// Label returns the display text of the code held in f, or "" when the
// code is not among the field's options.
func (r *Resolver) Label(sel domain.Selection, f domain.Field) string {
	v := sel.Get(f)
	if v == "" {
		return ""
	}
	o, ok := domain.FindOption(r.Options(sel, f), v)
	if !ok {
		return ""
	}
	return o.Label
}

// Describe renders "label (code)" for f, falling back to the bare code.
func (r *Resolver) Describe(sel domain.Selection, f domain.Field) string {
	v := sel.Get(f)
	if v == "" || !f.IsChoice() {
		return v
	}
	if l := r.Label(sel, f); l != "" {
		return l + " (" + v + ")"
	}
	return v
}
