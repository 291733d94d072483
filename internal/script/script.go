// Package script turns validated selections into a Selenium automation
// script that replays them against the RPD web form.
package script

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/alexanderramin/rpdform/internal/cascade"
	"github.com/alexanderramin/rpdform/internal/domain"
)

// DefaultTargetURL is used when no target is configured.
const DefaultTargetURL = "https://mebbis.meb.gov.tr/"

// Options controls rendering.
type Options struct {
	TargetURL string
	Batch     bool
	Now       func() time.Time
}

// Entry is one form control assignment.
type Entry struct {
	Name   string
	Code   string
	Label  string
	Choice bool
}

// Record is one form fill.
type Record struct {
	Index   int
	Entries []Entry
}

type scriptData struct {
	Mode        string
	Batch       bool
	TargetURL   string
	GeneratedAt string
	Records     []Record
}

var tmpl = template.Must(template.New("script").Funcs(template.FuncMap{
	"py":      pyString,
	"comment": comment,
}).Parse(scriptTemplate))

// Entries lists the non-empty fields of sel in form order. Choice fields
// carry their label from r; a nil resolver leaves labels empty.
func Entries(r *cascade.Resolver, sel domain.Selection) []Entry {
	var out []Entry
	for _, f := range domain.Fields {
		v := sel.Get(f)
		if v == "" {
			continue
		}
		e := Entry{Name: string(f), Code: v, Choice: f.IsChoice()}
		if e.Choice && r != nil {
			e.Label = r.Label(sel, f)
		}
		out = append(out, e)
	}
	return out
}

// Render writes the script for sels to w.
func Render(w io.Writer, r *cascade.Resolver, sels []domain.Selection, opts Options) error {
	if len(sels) == 0 {
		return fmt.Errorf("rendering script: no records")
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	data := scriptData{
		Mode:        "tekli",
		Batch:       opts.Batch,
		TargetURL:   domain.CoalesceStr(opts.TargetURL, DefaultTargetURL),
		GeneratedAt: now().Format("2006-01-02 15:04"),
	}
	if opts.Batch {
		data.Mode = "toplu"
	}
	for i, sel := range sels {
		data.Records = append(data.Records, Record{Index: i + 1, Entries: Entries(r, sel)})
	}

	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("rendering script: %w", err)
	}
	return nil
}

// pyString quotes s as a Python 3 string literal.
func pyString(s string) string {
	return strconv.Quote(s)
}

func comment(s string) string {
	if s == "" {
		return "?"
	}
	return strings.Join(strings.Fields(s), " ")
}
