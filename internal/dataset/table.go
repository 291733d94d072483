// Package dataset holds the category table: every named option list the
// intake form draws from, in the order the source defined them.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexanderramin/rpdform/internal/domain"
)

// Table maps category names to ordered option lists. A Table is never
// mutated after construction; a reload builds a new one.
type Table struct {
	names []string
	cats  map[string][]domain.Option
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{cats: make(map[string][]domain.Option)}
}

// add appends a category. A repeated name replaces the options but keeps
// the original position.
func (t *Table) add(name string, opts []domain.Option) {
	if _, ok := t.cats[name]; !ok {
		t.names = append(t.names, name)
	}
	t.cats[name] = opts
}

// Names returns category names in source order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Len returns the number of categories.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}

// Has reports whether a category with exactly this name exists.
func (t *Table) Has(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.cats[name]
	return ok
}

// Options returns a copy of the named category, or nil if absent.
func (t *Table) Options(name string) []domain.Option {
	if t == nil {
		return nil
	}
	opts, ok := t.cats[name]
	if !ok {
		return nil
	}
	out := make([]domain.Option, len(opts))
	copy(out, opts)
	return out
}

// Lookup finds the option with the given code in the named category.
func (t *Table) Lookup(name, code string) (domain.Option, bool) {
	if t == nil {
		return domain.Option{}, false
	}
	return domain.FindOption(t.cats[name], code)
}

type wireOption struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

// UnmarshalJSON decodes {"<category>": [{"value": ..., "text": ...}]}
// keeping the key order of the document. Non-array members are skipped.
func (t *Table) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("reading dataset: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("dataset must be a JSON object")
	}

	fresh := NewTable()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("reading category name: %w", err)
		}
		name, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("reading category %q: %w", name, err)
		}
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 || trimmed[0] != '[' {
			continue
		}

		var items []wireOption
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("decoding category %q: %w", name, err)
		}
		opts := make([]domain.Option, 0, len(items))
		for _, it := range items {
			code := strings.TrimSpace(it.Value)
			label := strings.TrimSpace(it.Text)
			if code == "" || label == "" {
				continue
			}
			opts = append(opts, domain.Option{Code: code, Label: label})
		}
		fresh.add(name, opts)
	}

	*t = *fresh
	return nil
}

// MarshalJSON writes the table in the same shape UnmarshalJSON reads,
// preserving category order.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range t.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		items := make([]wireOption, 0, len(t.cats[name]))
		for _, o := range t.cats[name] {
			items = append(items, wireOption{Value: o.Code, Text: o.Label})
		}
		val, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
