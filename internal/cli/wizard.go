package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/rpdform/internal/cascade"
	"github.com/alexanderramin/rpdform/internal/cli/formatter"
	"github.com/alexanderramin/rpdform/internal/domain"
	"github.com/alexanderramin/rpdform/internal/form"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// rpdHuhTheme returns a custom huh theme using the formatter palette.
func rpdHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Group.Title = lipgloss.NewStyle().Foreground(formatter.ColorBlue).Bold(true)

	return t
}

// fieldAccessor exposes one field of a Selection to a huh field. A changed
// value clears the field's dependents, so a reloaded downstream select lands
// on its empty placeholder instead of keeping its old cursor position.
type fieldAccessor struct {
	sel   *domain.Selection
	field domain.Field
}

func (a fieldAccessor) Get() string { return a.sel.Get(a.field) }

func (a fieldAccessor) Set(v string) {
	if a.sel.Get(a.field) == v {
		return
	}
	*a.sel = form.Apply(*a.sel, a.field, v)
}

// newIntakeForm builds the intake form over values. Choice fields recompute
// their title, description and options from r whenever any value changes,
// so the whole Selection is the binding.
func newIntakeForm(r *cascade.Resolver, values *domain.Selection, errs form.ValidationErrors) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			choiceField(r, values, errs, domain.FieldClassSection),
			choiceField(r, values, errs, domain.FieldStudent),
		).Title("Öğrenci"),
		huh.NewGroup(
			choiceField(r, values, errs, domain.FieldService),
			choiceField(r, values, errs, domain.FieldStage1),
			choiceField(r, values, errs, domain.FieldStage2),
			choiceField(r, values, errs, domain.FieldStage3),
		).Title("Hizmet"),
		huh.NewGroup(
			textField(values, errs, domain.FieldDate, "2006-01-02", validateDate),
			textField(values, errs, domain.FieldStartTime, "09:00", validateClock),
			textField(values, errs, domain.FieldEndTime, "09:40", validateClock),
			choiceField(r, values, errs, domain.FieldLocation),
		).Title("Görüşme"),
	).WithTheme(rpdHuhTheme()).WithShowHelp(false)
}

func choiceField(r *cascade.Resolver, values *domain.Selection, errs form.ValidationErrors, f domain.Field) *huh.Select[string] {
	return huh.NewSelect[string]().
		Key(string(f)).
		TitleFunc(func() string { return fieldTitle(r, *values, f) }, values).
		DescriptionFunc(func() string { return fieldDescription(r, *values, errs, f) }, values).
		OptionsFunc(func() []huh.Option[string] { return huhOptions(r, *values, f) }, values).
		Accessor(fieldAccessor{sel: values, field: f})
}

func textField(values *domain.Selection, errs form.ValidationErrors, f domain.Field, placeholder string, validate func(string) error) *huh.Input {
	in := huh.NewInput().
		Key(string(f)).
		Title(f.Title()).
		Placeholder(placeholder).
		Validate(validate).
		Accessor(fieldAccessor{sel: values, field: f})
	if msg, ok := errs[f]; ok {
		in = in.Description(formatter.StyleRed.Render(msg))
	}
	return in
}

// fieldTitle renders the field title with the stage-3 badge when one applies.
func fieldTitle(r *cascade.Resolver, sel domain.Selection, f domain.Field) string {
	title := f.Title()
	if badge := r.Badge(sel, f); badge != "" {
		title += " " + formatter.BadgeStyle(badge).Render(badge)
	}
	return title
}

// fieldDescription stacks the pending validation error, the advisory and the
// system value of the current choice.
func fieldDescription(r *cascade.Resolver, sel domain.Selection, errs form.ValidationErrors, f domain.Field) string {
	var lines []string
	if msg, ok := errs[f]; ok && sel.Get(f) == "" {
		lines = append(lines, formatter.StyleRed.Render(msg))
	}
	if adv := formatter.RenderAdvisory(r.Advisory(sel, f)); adv != "" {
		lines = append(lines, adv)
	}
	if v := sel.Get(f); v != "" && r.Label(sel, f) != "" {
		lines = append(lines, formatter.SystemValue(v))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// huhOptions turns the resolver's options into huh options, led by an
// empty placeholder choice. A disabled field offers only the placeholder.
func huhOptions(r *cascade.Resolver, sel domain.Selection, f domain.Field) []huh.Option[string] {
	out := []huh.Option[string]{huh.NewOption(r.Placeholder(sel, f), "")}
	if !r.Enabled(sel, f) {
		return out
	}
	for _, o := range r.Options(sel, f) {
		out = append(out, huh.NewOption(o.Label, o.Code))
	}
	return out
}

func validateDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("YYYY-AA-GG biçiminde giriniz")
	}
	return nil
}

func validateClock(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(form.TimeLayout, s); err != nil {
		return fmt.Errorf("SS:DD biçiminde giriniz")
	}
	return nil
}

// applySelection copies sel into the machine field by field in display
// order, after dropping codes the resolver no longer offers. It returns the
// fields whose value was dropped.
func applySelection(m *form.Machine, r *cascade.Resolver, sel domain.Selection) ([]domain.Field, error) {
	pruned := r.Prune(sel)
	var dropped []domain.Field
	for _, f := range domain.Fields {
		v := pruned.Get(f)
		if v != sel.Get(f) {
			dropped = append(dropped, f)
		}
		if err := m.Set(f, v); err != nil {
			return dropped, err
		}
	}
	return dropped, nil
}
