package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/rpdform/internal/cascade"
	"github.com/alexanderramin/rpdform/internal/dataset"
	"github.com/alexanderramin/rpdform/internal/domain"
	"github.com/alexanderramin/rpdform/internal/stages"
)

// Load kinds reported in LoadEvent.Kind.
const (
	KindDataset = "dataset"
	KindStages  = "stages"
)

// Embedded names the bundled copy of a data source.
const Embedded = "embedded"

// Source names where the current snapshots came from.
type Source struct {
	Dataset string
	Stages  string
}

// WorkspaceOptions configures a Workspace.
type WorkspaceOptions struct {
	Roster        cascade.RosterOptions
	StagesTimeout time.Duration
	Logger        *slog.Logger
}

// Workspace holds the current dataset and stage graph. Every load either
// replaces a snapshot wholesale or leaves the previous one in place.
type Workspace struct {
	table    *dataset.Table
	graph    *stages.Graph
	findings []error
	source   Source

	roster   cascade.RosterOptions
	timeout  time.Duration
	logger   *slog.Logger
	observer LoadObserver
}

var _ DataService = (*Workspace)(nil)

// NewWorkspace starts from the embedded dataset and no stage graph.
func NewWorkspace(opts WorkspaceOptions, observers ...LoadObserver) (*Workspace, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	w := &Workspace{
		roster:   opts.Roster,
		timeout:  opts.StagesTimeout,
		logger:   logger,
		observer: observerOrNoop(observers),
	}
	if err := w.ResetToDefault(context.Background()); err != nil {
		return nil, err
	}
	return w, nil
}

// LoadDataset replaces the dataset with the file at path.
func (w *Workspace) LoadDataset(ctx context.Context, path string) error {
	start := time.Now()
	table, err := dataset.Load(path)
	w.observer.ObserveLoad(ctx, LoadEvent{
		Kind:       KindDataset,
		Source:     path,
		Duration:   time.Since(start),
		Categories: table.Len(),
		Err:        err,
	})
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}
	w.table = table
	w.source.Dataset = path
	return nil
}

// ResetToDefault replaces the dataset with the embedded one.
func (w *Workspace) ResetToDefault(ctx context.Context) error {
	start := time.Now()
	table, err := dataset.Default()
	w.observer.ObserveLoad(ctx, LoadEvent{
		Kind:       KindDataset,
		Source:     Embedded,
		Duration:   time.Since(start),
		Categories: table.Len(),
		Err:        err,
	})
	if err != nil {
		return fmt.Errorf("loading embedded dataset: %w", err)
	}
	w.table = table
	w.source.Dataset = Embedded
	return nil
}

// LoadStages replaces the stage graph from a path, an http(s) URL or,
// when source is empty, the embedded document. On failure the previous
// graph stays.
func (w *Workspace) LoadStages(ctx context.Context, source string) error {
	name := source
	if name == "" {
		name = Embedded
	}

	start := time.Now()
	doc, err := stages.Open(ctx, source, w.timeout)
	event := LoadEvent{Kind: KindStages, Source: name, Err: err}
	var findings []error
	if err == nil {
		findings = stages.Validate(doc)
		event.Services = len(doc.Services)
		event.Findings = len(findings)
	}
	event.Duration = time.Since(start)
	w.observer.ObserveLoad(ctx, event)
	if err != nil {
		return fmt.Errorf("loading stage document: %w", err)
	}

	for _, f := range findings {
		w.logger.DebugContext(ctx, "stage_document_finding", "source", name, "finding", f.Error())
	}
	w.graph = stages.Build(doc)
	w.findings = findings
	w.source.Stages = name
	return nil
}

// Resolver returns a resolver over the current snapshots.
func (w *Workspace) Resolver() *cascade.Resolver {
	return cascade.NewResolver(w.table, w.graph, w.roster)
}

// Roster resolves the student roster for sel and warns when several
// sheets tie.
func (w *Workspace) Roster(ctx context.Context, sel domain.Selection) cascade.RosterMatch {
	m := w.Resolver().Roster(sel)
	if m.Ambiguous() {
		w.logger.WarnContext(ctx, "roster_ambiguous",
			"class_section", sel.ClassSection,
			"level", m.Level.String(),
			"chosen", m.Sheet,
			"candidates", m.Candidates,
		)
	}
	return m
}

// Source reports where the current snapshots came from. Stages is empty
// until a stage document loads.
func (w *Workspace) Source() Source { return w.source }

// StageFindings returns the structural findings of the loaded stage
// document.
func (w *Workspace) StageFindings() []error {
	out := make([]error, len(w.findings))
	copy(out, w.findings)
	return out
}
