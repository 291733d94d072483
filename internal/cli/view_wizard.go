package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/rpdform/internal/cli/formatter"
	"github.com/alexanderramin/rpdform/internal/domain"
	"github.com/alexanderramin/rpdform/internal/form"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

type wizardPhase int

const (
	phaseForm wizardPhase = iota
	phaseMenu
	phaseDone
)

// formDoneMsg is sent once the huh form completes.
type formDoneMsg struct{}

type menuKeyMap struct {
	Add    key.Binding
	Remove key.Binding
	Clear  key.Binding
	Finish key.Binding
	Mode   key.Binding
	Reset  key.Binding
	Up     key.Binding
	Down   key.Binding
	Quit   key.Binding
}

func defaultMenuKeys() menuKeyMap {
	return menuKeyMap{
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "kayıt ekle")),
		Remove: key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "sil")),
		Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "temizle")),
		Finish: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "bitir")),
		Mode:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "tekli moda geç")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "varsayılan veri")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "yukarı")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "aşağı")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "çık")),
	}
}

func (k menuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Remove, k.Clear, k.Finish, k.Mode, k.Quit}
}

func (k menuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Up, k.Down, k.Reset}}
}

var (
	formKeyCancel = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "vazgeç"))
	formKeyMode   = key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "mod değiştir"))
	formKeyReset  = key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "varsayılan veri"))
)

// wizardModel hosts the intake form and, in batch mode, the batch menu.
// The huh form edits values; the machine only sees them on completion.
type wizardModel struct {
	app     *App
	machine *form.Machine
	values  *domain.Selection
	form    *huh.Form

	phase  wizardPhase
	cursor int
	status string
	keys   menuKeyMap
	help   help.Model
	width  int
	height int

	result    []form.Record
	cancelled bool
}

func newWizardModel(app *App, mode form.Mode) wizardModel {
	m := wizardModel{
		app:     app,
		machine: form.NewMachine(mode),
		values:  &domain.Selection{},
		keys:    defaultMenuKeys(),
		help:    help.New(),
	}
	m.form = newIntakeForm(app.Data.Resolver(), m.values, nil)
	return m
}

func (m wizardModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.help.Width = ws.Width
	}

	switch m.phase {
	case phaseForm:
		return m.updateForm(msg)
	case phaseMenu:
		return m.updateMenu(msg)
	default:
		return m, nil
	}
}

func (m wizardModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case formDoneMsg:
		return m.submit()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, formKeyCancel):
			if m.machine.Mode() == form.ModeBatch && len(m.machine.Batch()) > 0 {
				m.phase = phaseMenu
				m.status = formatter.Dim("Kayıt vazgeçildi.")
				return m, nil
			}
			return m.quit(true)
		case key.Matches(msg, formKeyMode):
			return m.toggleMode()
		case key.Matches(msg, formKeyReset):
			return m.resetData()
		}
	}

	if m.form.State != huh.StateNormal {
		return m, nil
	}
	f, cmd := m.form.Update(msg)
	if hf, ok := f.(*huh.Form); ok {
		m.form = hf
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m, tea.Batch(cmd, func() tea.Msg { return formDoneMsg{} })
	case huh.StateAborted:
		return m.quit(true)
	}
	return m, cmd
}

// submit hands the completed form to the machine. Validation errors
// reopen the form with the entered values and the messages inline.
func (m wizardModel) submit() (tea.Model, tea.Cmd) {
	r := m.app.Data.Resolver()
	dropped, err := applySelection(m.machine, r, *m.values)
	if err != nil {
		return m.fail(err)
	}
	for _, f := range dropped {
		m.app.logger().Debug("dropped stale choice", "field", string(f))
	}

	rec, err := m.machine.Submit()
	var verrs form.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		*m.values = m.machine.Selection()
		m.status = formatter.FormatValidation(verrs)
		return m.reopen(verrs)
	case err != nil:
		return m.fail(err)
	}

	if m.machine.Mode() == form.ModeSingle {
		m.result = m.machine.Output()
		return m.quit(false)
	}

	m.app.logger().Debug("record added to batch", "id", rec.ID.String(), "size", len(m.machine.Batch()))
	m.phase = phaseMenu
	m.cursor = len(m.machine.Batch()) - 1
	m.status = formatter.StyleGreen.Render(fmt.Sprintf("✔ Kayıt eklendi (%d).", len(m.machine.Batch())))
	return m, nil
}

func (m wizardModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	batch := m.machine.Batch()

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m.quit(true)
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(batch)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Add):
		m.status = ""
		return m.reopen(nil)
	case key.Matches(keyMsg, m.keys.Remove):
		if err := m.machine.Remove(m.cursor); err != nil {
			m.status = formatter.Error(err)
			return m, nil
		}
		m.cursor = min(m.cursor, len(m.machine.Batch())-1)
		m.cursor = max(m.cursor, 0)
		m.status = formatter.Dim("Kayıt silindi.")
	case key.Matches(keyMsg, m.keys.Clear):
		m.machine.Clear()
		m.cursor = 0
		m.status = formatter.Dim("Liste temizlendi.")
	case key.Matches(keyMsg, m.keys.Finish):
		recs, err := m.machine.FinishBatch()
		if errors.Is(err, form.ErrEmptyBatch) {
			m.status = formatter.StyleYellow.Render("Liste boş, önce kayıt ekleyiniz.")
			return m, nil
		}
		if err != nil {
			return m.fail(err)
		}
		m.result = recs
		return m.quit(false)
	case key.Matches(keyMsg, m.keys.Mode):
		return m.toggleMode()
	case key.Matches(keyMsg, m.keys.Reset):
		return m.resetData()
	}
	return m, nil
}

// toggleMode flips single/batch entry and starts a fresh form.
func (m wizardModel) toggleMode() (tea.Model, tea.Cmd) {
	next := form.ModeBatch
	if m.machine.Mode() == form.ModeBatch {
		next = form.ModeSingle
	}
	m.machine.SetMode(next)
	m.cursor = 0
	m.status = formatter.Dim("Mod: " + modeLabel(next))
	*m.values = domain.Selection{}
	return m.reopen(nil)
}

// resetData swaps back to the embedded dataset. Records and values entered
// against the previous dataset are dropped.
func (m wizardModel) resetData() (tea.Model, tea.Cmd) {
	if err := m.app.Data.ResetToDefault(context.Background()); err != nil {
		m.status = formatter.Error(err)
		return m, nil
	}
	m.app.logger().Info("dataset reset", "batch_dropped", len(m.machine.Batch()))
	m.machine.Clear()
	m.cursor = 0
	m.status = formatter.Dim("Varsayılan veri yüklendi.")
	return m.reopen(nil)
}

// reopen rebuilds the form over the current values and shows it.
func (m wizardModel) reopen(errs form.ValidationErrors) (tea.Model, tea.Cmd) {
	if errs == nil {
		*m.values = domain.Selection{}
		m.machine.Reset()
	}
	m.form = newIntakeForm(m.app.Data.Resolver(), m.values, errs)
	m.phase = phaseForm

	cmds := []tea.Cmd{m.form.Init()}
	if m.width > 0 {
		f, cmd := m.form.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		if hf, ok := f.(*huh.Form); ok {
			m.form = hf
		}
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m wizardModel) fail(err error) (tea.Model, tea.Cmd) {
	m.app.logger().Error("wizard failed", "error", err)
	m.status = formatter.Error(err)
	return m.quit(true)
}

func (m wizardModel) quit(cancelled bool) (tea.Model, tea.Cmd) {
	m.phase = phaseDone
	m.cancelled = cancelled
	return m, tea.Quit
}

func (m wizardModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("RPD Formu · " + modeLabel(m.machine.Mode())))
	b.WriteString("\n\n")

	switch m.phase {
	case phaseForm:
		if n := len(m.machine.Batch()); n > 0 {
			b.WriteString(formatter.Dim(fmt.Sprintf("Listede %d kayıt var.", n)))
			b.WriteString("\n\n")
		}
		b.WriteString(m.form.View())
		b.WriteString("\n")
		b.WriteString(formatter.Dim("enter ileri · shift+tab geri · esc vazgeç · ctrl+t mod değiştir · ctrl+r varsayılan veri"))
		b.WriteString("\n")
	case phaseMenu:
		b.WriteString(formatter.FormatBatch(m.app.Data.Resolver(), m.machine.Batch(), m.cursor))
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
		b.WriteString("\n")
	case phaseDone:
		if len(m.result) > 0 {
			b.WriteString(formatter.StyleGreen.Render(fmt.Sprintf("✔ %d kayıt hazır.", len(m.result))))
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	return b.String()
}

func modeLabel(mode form.Mode) string {
	if mode == form.ModeBatch {
		return "Toplu"
	}
	return "Tekli"
}
