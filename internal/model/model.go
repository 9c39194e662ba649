// Package model builds the constraint model for a normalized catalog:
// one decision variable per instance, the pairwise ordering and apart
// constraints, the existential before/after and apart-from
// disjunctions (encoded as groups of alternative edges, a selector
// choice made concrete as enumerable edge sets), and the window
// soft-preference terms that feed the objective.
package model

import (
	"sort"

	"github.com/example/daytimetable/internal/catalog"
	"github.com/example/daytimetable/internal/dsl"
)

// Instance is one decision variable: a single occurrence of an event.
type Instance struct {
	GlobalID int
	Event    string
	Index    int // 1-based occurrence number within its event
	Windows  []dsl.Window
}

// Edge is a difference constraint: the instance at To must be
// scheduled at least Gap minutes after the instance at From.
type Edge struct {
	From, To int
	Gap      int
}

// Group is a disjunction: at least one of its Edges must hold. A
// Group with a single Edge is a hard (non-disjunctive) constraint —
// every ordering and apart constraint, which needs no alternatives, is
// represented this way. A Group with more than one Edge realizes an
// existential before/after/apart-from constraint; which Edge is
// "active" is a search decision resolved by the solver.
type Group struct {
	Edges []Edge
}

// Model is the compiled constraint model for one catalog, oriented so
// that solving it always means minimizing the sum of its variables
// (plus penalty-weighted window slack) — see Mirror for how the
// "latest" strategy reuses this same minimization.
type Model struct {
	DayStart, DayEnd int
	PenaltyWeight    float64
	Mirrored         bool
	Instances        []Instance
	Groups           []Group
}

// ActualTime maps a solved variable value back to a real clock minute,
// undoing the reflection Mirror introduced for the "latest" strategy.
func (m *Model) ActualTime(v int) int {
	if !m.Mirrored {
		return v
	}
	return m.DayStart + m.DayEnd - v
}

// Build compiles a normalized catalog into a Model. Instances are
// emitted in a fixed canonical order so solving is deterministic:
// events in catalog order, then instance index ascending.
func Build(cat *catalog.Catalog, dayStart, dayEnd int, penaltyWeight float64) *Model {
	m := &Model{DayStart: dayStart, DayEnd: dayEnd, PenaltyWeight: penaltyWeight}

	id := make(map[string][]int) // event name -> global ids of its instances, index 0-based
	for _, e := range cat.Events {
		ids := make([]int, 0, e.Count)
		for i := 1; i <= e.Count; i++ {
			gid := len(m.Instances)
			m.Instances = append(m.Instances, Instance{
				GlobalID: gid,
				Event:    e.Name,
				Index:    i,
				Windows:  e.Windows,
			})
			ids = append(ids, gid)
		}
		id[e.Name] = ids
	}

	for _, e := range cat.Events {
		ids := id[e.Name]
		// Structural ordering invariant: instance k strictly precedes k+1.
		for i := 0; i+1 < len(ids); i++ {
			m.Groups = append(m.Groups, Group{Edges: []Edge{{From: ids[i], To: ids[i+1], Gap: 1}}})
		}

		for _, c := range e.Constraints {
			switch c.Kind {
			case dsl.Apart:
				for i := 0; i < len(ids); i++ {
					for j := i + 1; j < len(ids); j++ {
						m.Groups = append(m.Groups, Group{Edges: []Edge{{From: ids[i], To: ids[j], Gap: c.GapMinutes}}})
					}
				}
			case dsl.Before:
				targetIDs := flattenTargets(id, c.Targets)
				for _, owner := range ids {
					edges := make([]Edge, 0, len(targetIDs))
					for _, t := range targetIDs {
						edges = append(edges, Edge{From: owner, To: t, Gap: c.GapMinutes})
					}
					m.Groups = append(m.Groups, Group{Edges: edges})
				}
			case dsl.After:
				targetIDs := flattenTargets(id, c.Targets)
				for _, owner := range ids {
					edges := make([]Edge, 0, len(targetIDs))
					for _, t := range targetIDs {
						edges = append(edges, Edge{From: t, To: owner, Gap: c.GapMinutes})
					}
					m.Groups = append(m.Groups, Group{Edges: edges})
				}
			case dsl.ApartFrom:
				targetIDs := flattenTargets(id, c.Targets)
				for _, owner := range ids {
					for _, t := range targetIDs {
						m.Groups = append(m.Groups, Group{Edges: []Edge{
							{From: owner, To: t, Gap: c.GapMinutes},
							{From: t, To: owner, Gap: c.GapMinutes},
						}})
					}
				}
			}
		}
	}

	return m
}

func flattenTargets(id map[string][]int, names []string) []int {
	out := make([]int, 0)
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	for _, n := range sorted {
		out = append(out, id[n]...)
	}
	return out
}

// Mirror returns a model for the "latest" strategy: minimizing its
// objective is equivalent to maximizing the original model's. Every
// edge is reversed (From/To swapped, Gap unchanged) and every window
// is reflected about the day's midpoint; ActualTime undoes the
// reflection once the mirrored model has been solved. Mirroring twice
// is the identity transform.
func (m *Model) Mirror() *Model {
	mid := m.DayStart + m.DayEnd

	out := &Model{
		DayStart:      m.DayStart,
		DayEnd:        m.DayEnd,
		PenaltyWeight: m.PenaltyWeight,
		Mirrored:      !m.Mirrored,
		Instances:     make([]Instance, len(m.Instances)),
		Groups:        make([]Group, len(m.Groups)),
	}

	for i, inst := range m.Instances {
		windows := make([]dsl.Window, len(inst.Windows))
		for j, w := range inst.Windows {
			windows[j] = dsl.Window{Lo: mid - w.Hi, Hi: mid - w.Lo}
		}
		out.Instances[i] = Instance{GlobalID: inst.GlobalID, Event: inst.Event, Index: inst.Index, Windows: windows}
	}

	for i, g := range m.Groups {
		edges := make([]Edge, len(g.Edges))
		for j, e := range g.Edges {
			edges[j] = Edge{From: e.To, To: e.From, Gap: e.Gap}
		}
		out.Groups[i] = Group{Edges: edges}
	}

	return out
}
