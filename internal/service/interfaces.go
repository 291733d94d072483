package service

import (
	"context"

	"github.com/alexanderramin/rpdform/internal/cascade"
	"github.com/alexanderramin/rpdform/internal/domain"
)

// DataService owns the loaded data snapshots the wizard resolves against.
type DataService interface {
	LoadDataset(ctx context.Context, path string) error
	ResetToDefault(ctx context.Context) error
	LoadStages(ctx context.Context, source string) error
	Resolver() *cascade.Resolver
	Roster(ctx context.Context, sel domain.Selection) cascade.RosterMatch
	Source() Source
	StageFindings() []error
}
