// Package cascade computes which options each dependent field of the
// intake form may show, given the upstream selections. Every function is
// pure: a missing link anywhere in the chain yields an empty list, never
// an error.
package cascade

import (
	"github.com/alexanderramin/rpdform/internal/domain"
	"github.com/alexanderramin/rpdform/internal/stages"
)

// Stage1Options returns the stage-1 options of a service.
func Stage1Options(g *stages.Graph, serviceCode string) []domain.Option {
	svc, ok := g.Service(serviceCode)
	if !ok {
		return []domain.Option{}
	}
	return svc.Options()
}

// Stage2Options returns the stage-2 options reachable from a stage-1 code.
func Stage2Options(g *stages.Graph, serviceCode, stage1Code string) []domain.Option {
	s1, ok := findStage1(g, serviceCode, stage1Code)
	if !ok {
		return []domain.Option{}
	}
	return s1.Options()
}

// Stage3Options returns the stage-3 options reachable from a stage-1 and
// stage-2 code pair.
func Stage3Options(g *stages.Graph, serviceCode, stage1Code, stage2Code string) []domain.Option {
	s1, ok := findStage1(g, serviceCode, stage1Code)
	if !ok {
		return []domain.Option{}
	}
	s2, ok := s1.Find(stage2Code)
	if !ok {
		return []domain.Option{}
	}
	return s2.Options()
}

// IsStage3Required reports whether stage 3 must be filled for a stage-1 code.
func IsStage3Required(stage1Code string) bool {
	return stage1Code == domain.Stage1PsychosocialIntervention
}

// SuppressesStage3Warning reports whether an empty stage-3 list is expected
// for a stage-1 code.
func SuppressesStage3Warning(stage1Code string) bool {
	return stage1Code == domain.Stage1IndividualCounseling || stage1Code == domain.Stage1Referral
}

func findStage1(g *stages.Graph, serviceCode, stage1Code string) (*stages.Stage1Node, bool) {
	if serviceCode == "" || stage1Code == "" {
		return nil, false
	}
	svc, ok := g.Service(serviceCode)
	if !ok {
		return nil, false
	}
	return svc.Find(stage1Code)
}
