package form

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/alexanderramin/rpdform/internal/domain"
)

var (
	// ErrEmptyBatch is returned by FinishBatch when nothing was appended.
	ErrEmptyBatch = errors.New("batch is empty")
	// ErrIndexOutOfRange is returned by Remove for a bad position.
	ErrIndexOutOfRange = errors.New("batch index out of range")
	// ErrNotEditing is returned for edits after the form was emitted.
	ErrNotEditing = errors.New("form is not being edited")
)

// Mode selects single-record or batch entry.
type Mode int

const (
	ModeSingle Mode = iota
	ModeBatch
)

func (m Mode) String() string {
	if m == ModeBatch {
		return "batch"
	}
	return "single"
}

// State is the lifecycle position of the machine.
type State int

const (
	StateEditing State = iota
	StateEmitted
)

// Record is one completed selection.
type Record struct {
	ID        uuid.UUID
	Selection domain.Selection
}

// Machine holds the form being edited. It is not safe for concurrent use.
type Machine struct {
	mode   Mode
	state  State
	sel    domain.Selection
	errs   ValidationErrors
	batch  []Record
	output []Record
}

// NewMachine returns an empty machine in the given mode.
func NewMachine(mode Mode) *Machine {
	return &Machine{mode: mode}
}

func (m *Machine) Mode() Mode   { return m.mode }
func (m *Machine) State() State { return m.state }

// Selection returns a copy of the working selection.
func (m *Machine) Selection() domain.Selection { return m.sel }

// Get returns the current value of f.
func (m *Machine) Get(f domain.Field) string { return m.sel.Get(f) }

// Errors returns a copy of the errors from the last submit attempt,
// minus fields edited since.
func (m *Machine) Errors() ValidationErrors {
	if len(m.errs) == 0 {
		return nil
	}
	out := make(ValidationErrors, len(m.errs))
	for k, v := range m.errs {
		out[k] = v
	}
	return out
}

// Set assigns f and clears its dependents and its pending error.
func (m *Machine) Set(f domain.Field, v string) error {
	if m.state != StateEditing {
		return ErrNotEditing
	}
	if m.sel.Get(f) == v {
		return nil
	}
	m.sel = Apply(m.sel, f, v)
	delete(m.errs, f)
	return nil
}

// SetMode switches between single and batch entry. The in-progress
// selection is discarded; leaving batch mode also discards the batch.
func (m *Machine) SetMode(mode Mode) {
	if mode == m.mode {
		return
	}
	if m.mode == ModeBatch {
		m.batch = nil
	}
	m.mode = mode
	m.state = StateEditing
	m.sel = domain.Selection{}
	m.errs = nil
	m.output = nil
}

// Submit validates the working selection. In single mode the record is
// emitted and the machine stops editing; in batch mode it is appended and
// the form starts over empty.
func (m *Machine) Submit() (Record, error) {
	if m.state != StateEditing {
		return Record{}, ErrNotEditing
	}
	if errs := Validate(m.sel); errs != nil {
		m.errs = errs
		return Record{}, errs
	}
	rec := Record{ID: uuid.New(), Selection: m.sel}
	m.errs = nil

	switch m.mode {
	case ModeBatch:
		m.batch = append(m.batch, rec)
		m.sel = domain.Selection{}
	default:
		m.output = []Record{rec}
		m.state = StateEmitted
	}
	return rec, nil
}

// Batch returns a copy of the accumulated records in append order.
func (m *Machine) Batch() []Record {
	out := make([]Record, len(m.batch))
	copy(out, m.batch)
	return out
}

// Remove drops the batch record at position i.
func (m *Machine) Remove(i int) error {
	if i < 0 || i >= len(m.batch) {
		return fmt.Errorf("remove %d of %d: %w", i, len(m.batch), ErrIndexOutOfRange)
	}
	m.batch = append(m.batch[:i:i], m.batch[i+1:]...)
	return nil
}

// Clear empties the batch.
func (m *Machine) Clear() {
	m.batch = nil
}

// FinishBatch hands off the whole batch and leaves batch entry.
func (m *Machine) FinishBatch() ([]Record, error) {
	if m.mode != ModeBatch || m.state != StateEditing {
		return nil, ErrNotEditing
	}
	if len(m.batch) == 0 {
		return nil, ErrEmptyBatch
	}
	out := m.batch
	m.batch = nil
	m.output = out
	m.sel = domain.Selection{}
	m.errs = nil
	m.state = StateEmitted
	return out, nil
}

// Output returns the records handed off by the last Submit (single mode)
// or FinishBatch.
func (m *Machine) Output() []Record {
	out := make([]Record, len(m.output))
	copy(out, m.output)
	return out
}

// Reset starts a new empty form in the current mode. A batch in progress
// is kept.
func (m *Machine) Reset() {
	m.state = StateEditing
	m.sel = domain.Selection{}
	m.errs = nil
	m.output = nil
}
