package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/rpdform/internal/cascade"
	"github.com/alexanderramin/rpdform/internal/dataset"
	"github.com/alexanderramin/rpdform/internal/domain"
	"github.com/alexanderramin/rpdform/internal/form"
)

// FormatCategories lists every category with its option count and role.
func FormatCategories(t *dataset.Table, source string) string {
	rows := make([][]string, 0, t.Len())
	for i, name := range t.Names() {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			name,
			strconv.Itoa(len(t.Options(name))),
			categoryRole(name),
		})
	}

	var b strings.Builder
	b.WriteString(Header("Kategoriler"))
	b.WriteString("\n")
	b.WriteString(Dim("Kaynak: " + source))
	b.WriteString("\n\n")
	b.WriteString(RenderTable([]string{"#", "SAYFA", "SEÇENEK", "ROL"}, rows))
	return b.String()
}

func categoryRole(name string) string {
	switch name {
	case domain.CategoryClassSection:
		return "sınıf/şube"
	case domain.CategoryService:
		return "hizmet türü"
	case domain.CategoryLocation:
		return "çalışma yeri"
	}
	if cascade.IsRosterSheet(name) {
		return "öğrenci listesi"
	}
	return Dim("-")
}

// FormatOptions renders the option list of one field with its requirement
// marker and advisory.
func FormatOptions(f domain.Field, opts []domain.Option, required bool, advisory cascade.Advisory) string {
	title := f.Title()
	if required {
		title += " " + StyleRed.Render("*")
	} else {
		title += " " + StyleGreen.Render("(Opsiyonel)")
	}

	rows := make([][]string, 0, len(opts))
	for _, o := range opts {
		rows = append(rows, []string{o.Code, o.Label})
	}

	var b strings.Builder
	b.WriteString(Header(f.Title()))
	b.WriteString("\n")
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(RenderTable([]string{"DEĞER", "METİN"}, rows))
	if adv := RenderAdvisory(advisory); adv != "" {
		b.WriteString("\n")
		b.WriteString(adv)
		b.WriteString("\n")
	}
	return b.String()
}

// FormatRoster renders a roster lookup result.
func FormatRoster(classSection domain.Option, m cascade.RosterMatch, advisory cascade.Advisory) string {
	var b strings.Builder
	b.WriteString(Header("Öğrenci Listesi"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Şube:    %s\n", OptionLabel(classSection))
	if m.Found() {
		fmt.Fprintf(&b, "Sayfa:   %s\n", Bold(m.Sheet))
	}
	fmt.Fprintf(&b, "Eşleşme: %s\n", MatchLevelIndicator(m.Level))
	if m.Ambiguous() {
		fmt.Fprintf(&b, "Aday:    %s\n", StyleYellow.Render(strconv.Itoa(len(m.Candidates))+" sayfa"))
	}
	b.WriteString("\n")

	if m.Found() {
		rows := make([][]string, 0, len(m.Students))
		for _, s := range m.Students {
			rows = append(rows, []string{s.Code, s.Label})
		}
		b.WriteString(RenderTable([]string{"DEĞER", "ÖĞRENCİ"}, rows))
	}
	if adv := RenderAdvisory(advisory); adv != "" {
		b.WriteString(adv)
		b.WriteString("\n")
	}
	return b.String()
}

// FormatFindings renders stage document findings, or a success line.
func FormatFindings(source string, services int, findings []error) string {
	var b strings.Builder
	b.WriteString(Header("Aşama Verileri"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Kaynak:  %s\n", source)
	fmt.Fprintf(&b, "Hizmet:  %d\n\n", services)
	if len(findings) == 0 {
		b.WriteString(StyleGreen.Render("✔ Sorun bulunamadı."))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(StyleYellow.Render(fmt.Sprintf("%d sorun bulundu:", len(findings))))
	b.WriteString("\n")
	for _, f := range findings {
		b.WriteString("  • ")
		b.WriteString(f.Error())
		b.WriteString("\n")
	}
	return b.String()
}

// FormatBatch renders the accumulated batch, marking the row at cursor.
// A negative cursor marks nothing.
func FormatBatch(r *cascade.Resolver, recs []form.Record, cursor int) string {
	rows := make([][]string, 0, len(recs))
	for i, rec := range recs {
		sel := rec.Selection
		marker := " "
		if i == cursor {
			marker = StyleHeader.Render("›")
		}
		student := domain.CoalesceStr(r.Label(sel, domain.FieldStudent), sel.Student)
		rows = append(rows, []string{
			marker + " " + strconv.Itoa(i+1),
			Truncate(student, 28),
			Truncate(r.Describe(sel, domain.FieldStage1), 36),
			sel.Date,
			sel.StartTime + "-" + sel.EndTime,
		})
	}
	return RenderTable([]string{"  #", "ÖĞRENCİ", "1. AŞAMA", "TARİH", "SAAT"}, rows)
}

// FormatValidation renders validation errors in display order.
func FormatValidation(errs form.ValidationErrors) string {
	if len(errs) == 0 {
		return ""
	}
	lines := make([]string, 0, len(errs))
	for _, f := range errs.Fields() {
		lines = append(lines, StyleRed.Render("✖ "+f.Title()+": "+errs[f]))
	}
	return strings.Join(lines, "\n")
}

// FormatSummary renders a completed selection as "title: label (code)".
func FormatSummary(r *cascade.Resolver, sel domain.Selection) string {
	rows := make([][]string, 0, len(domain.Fields))
	for _, f := range domain.Fields {
		v := r.Describe(sel, f)
		if v == "" {
			v = Dim("-")
		}
		rows = append(rows, []string{f.Title(), v})
	}
	return RenderTable([]string{"ALAN", "DEĞER"}, rows)
}
