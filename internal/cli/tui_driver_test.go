package cli

import (
	"testing"

	"github.com/alexanderramin/rpdform/internal/domain"
	"github.com/alexanderramin/rpdform/internal/form"
	"github.com/alexanderramin/rpdform/internal/teatest"
)

// TestDriver wraps teatest.Driver with wizard-specific inspection methods.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds a wizardModel over app, sizes it and drains Init(),
// which loads the first group's options synchronously.
func NewTestDriver(t *testing.T, app *App, mode form.Mode) *TestDriver {
	t.Helper()

	m := newWizardModel(app, mode)
	d := teatest.New(t, m, teatest.WithSize(120, 80))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// ── High-level helpers ───────────────────────────────────────────────────────

// Choose moves the focused select down n options and confirms it.
func (d *TestDriver) Choose(n int) {
	d.T.Helper()
	d.PressDown(n)
	d.PressEnter()
}

// Fill types into the focused input and confirms it.
func (d *TestDriver) Fill(s string) {
	d.T.Helper()
	d.Type(s)
	d.PressEnter()
}

// Complete seeds the form values and finishes the form, as if every field
// had been filled by hand.
func (d *TestDriver) Complete(sel domain.Selection) {
	d.T.Helper()
	*d.wizard().values = sel
	d.Send(formDoneMsg{})
}

// ── Wizard inspection ────────────────────────────────────────────────────────

func (d *TestDriver) wizard() wizardModel {
	return d.Model.(wizardModel)
}

// Phase returns the current wizard phase.
func (d *TestDriver) Phase() wizardPhase {
	return d.wizard().phase
}

// Values returns the live form values.
func (d *TestDriver) Values() domain.Selection {
	return *d.wizard().values
}

// Machine returns the selection state machine.
func (d *TestDriver) Machine() *form.Machine {
	return d.wizard().machine
}

// Result returns the records handed off when the wizard finished.
func (d *TestDriver) Result() []form.Record {
	return d.wizard().result
}

// Cancelled reports whether the wizard quit without output.
func (d *TestDriver) Cancelled() bool {
	return d.wizard().cancelled
}

// Cursor returns the batch menu cursor.
func (d *TestDriver) Cursor() int {
	return d.wizard().cursor
}
