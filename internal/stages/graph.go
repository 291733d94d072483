package stages

import (
	"sort"

	"github.com/alexanderramin/rpdform/internal/domain"
)

// Graph is the stage document rebuilt as a tree addressed by codes.
// Label keys of the document are resolved once in Build; lookups never
// touch labels afterwards. A nil *Graph is valid and empty.
type Graph struct {
	Metadata Metadata
	services map[string]*ServiceNode
}

// ServiceNode is one service type and its stage-1 branches.
type ServiceNode struct {
	Code   string
	Label  string
	Stage1 []*Stage1Node
	byCode map[string]*Stage1Node
}

// Stage1Node is a stage-1 option and its stage-2 branches.
type Stage1Node struct {
	Option domain.Option
	Stage2 []*Stage2Node
	byCode map[string]*Stage2Node
}

// Stage2Node is a stage-2 option and its stage-3 leaves.
type Stage2Node struct {
	Option domain.Option
	Stage3 []domain.Option
}

// Build converts a decoded document into a Graph. Dependency entries whose
// label key matches no option are unreachable and dropped; see Validate.
// When codes repeat within a list, the first occurrence is addressable.
func Build(doc *Document) *Graph {
	g := &Graph{services: make(map[string]*ServiceNode)}
	if doc == nil {
		return g
	}
	g.Metadata = doc.Metadata

	for code, svc := range doc.Services {
		node := &ServiceNode{
			Code:   code,
			Label:  svc.Name,
			byCode: make(map[string]*Stage1Node),
		}
		for _, o1 := range toOptions(svc.Stage1.Options) {
			s1 := &Stage1Node{Option: o1, byCode: make(map[string]*Stage2Node)}
			if dep, ok := svc.Stage2[o1.Label]; ok {
				for _, o2 := range toOptions(dep.Options) {
					s2 := &Stage2Node{Option: o2}
					if dep3, ok := svc.Stage3[CombinedKey(o1.Label, o2.Label)]; ok {
						s2.Stage3 = toOptions(dep3.Options)
					}
					s1.Stage2 = append(s1.Stage2, s2)
					if _, dup := s1.byCode[o2.Code]; !dup {
						s1.byCode[o2.Code] = s2
					}
				}
			}
			node.Stage1 = append(node.Stage1, s1)
			if _, dup := node.byCode[o1.Code]; !dup {
				node.byCode[o1.Code] = s1
			}
		}
		g.services[code] = node
	}
	return g
}

// Service returns the node for a service code.
func (g *Graph) Service(code string) (*ServiceNode, bool) {
	if g == nil || code == "" {
		return nil, false
	}
	n, ok := g.services[code]
	return n, ok
}

// ServiceCodes returns all service codes, sorted.
func (g *Graph) ServiceCodes() []string {
	if g == nil {
		return nil
	}
	codes := make([]string, 0, len(g.services))
	for c := range g.services {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// Len returns the number of services.
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.services)
}

// Find returns the stage-1 branch with the given code.
func (n *ServiceNode) Find(code string) (*Stage1Node, bool) {
	if n == nil || code == "" {
		return nil, false
	}
	s, ok := n.byCode[code]
	return s, ok
}

// Options returns the stage-1 options in document order.
func (n *ServiceNode) Options() []domain.Option {
	out := make([]domain.Option, 0, len(n.Stage1))
	for _, s := range n.Stage1 {
		out = append(out, s.Option)
	}
	return out
}

// Find returns the stage-2 branch with the given code.
func (n *Stage1Node) Find(code string) (*Stage2Node, bool) {
	if n == nil || code == "" {
		return nil, false
	}
	s, ok := n.byCode[code]
	return s, ok
}

// Options returns the stage-2 options in document order.
func (n *Stage1Node) Options() []domain.Option {
	out := make([]domain.Option, 0, len(n.Stage2))
	for _, s := range n.Stage2 {
		out = append(out, s.Option)
	}
	return out
}

// Options returns a copy of the stage-3 options.
func (n *Stage2Node) Options() []domain.Option {
	out := make([]domain.Option, len(n.Stage3))
	copy(out, n.Stage3)
	return out
}

func toOptions(wire []WireOption) []domain.Option {
	out := make([]domain.Option, 0, len(wire))
	for _, w := range wire {
		out = append(out, domain.Option{Code: string(w.Code), Label: w.Label})
	}
	return out
}
