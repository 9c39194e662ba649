// Package solver searches a compiled model for the schedule that
// satisfies every hard constraint and minimizes the weighted objective
// (sum of instance times plus penalty-weighted window slack). It is a
// small branch-and-bound search: the only real combinatorial choice is
// which edge of each disjunctive group is active (the selector-boolean
// decision of an existential before/after or an apart_from pair); once
// a selection is fixed, the remaining difference-constraint system is
// solved exactly by bound propagation, and window trade-offs are
// settled by coordinate-descent relaxation over the resulting
// intervals. Given the single-day, modest-catalog scale this domain
// operates at, exhaustive search over selector choices is cheap.
package solver

import (
	"fmt"

	"github.com/example/daytimetable/internal/dsl"
	"github.com/example/daytimetable/internal/model"
)

// Assignment maps an instance's GlobalID to its solved time, in
// whatever orientation the Model that produced it used (callers use
// Model.ActualTime to map back to real clock minutes).
type Assignment map[int]int

// Infeasible is returned when no selector assignment yields a
// satisfiable schedule.
type Infeasible struct{}

func (Infeasible) Error() string { return "no schedule satisfies every constraint" }

// Error wraps an unexpected internal solver failure — the search
// exhausted its bound without completing, which should not happen
// below the search's built-in branch cap.
type Error struct{ Message string }

func (e *Error) Error() string { return fmt.Sprintf("solver error: %s", e.Message) }

const maxBranches = 200000

// Solve searches m for an optimal assignment. It returns Infeasible if
// every selector combination violates the hard constraints, or *Error
// if the search exceeds its branch budget before completing.
func Solve(m *model.Model) (Assignment, error) {
	s := &search{model: m, best: nil, bestObjective: 0, branches: 0}
	s.recurse(0, map[int][]model.Edge{})
	if s.branches > maxBranches {
		return nil, &Error{Message: "exceeded branch budget"}
	}
	if s.best == nil {
		return nil, Infeasible{}
	}
	return s.best, nil
}

type search struct {
	model         *model.Model
	best          Assignment
	bestObjective float64
	branches      int
}

// recurse assigns the disjunctive group at index idx one active edge
// at a time (for Groups with a single Edge there is only one choice),
// and once every group has a choice, evaluates the resulting fixed
// edge set.
func (s *search) recurse(idx int, chosen map[int][]model.Edge) {
	if s.branches > maxBranches {
		return
	}
	if idx >= len(s.model.Groups) {
		s.branches++
		s.evaluate(chosen)
		return
	}

	group := s.model.Groups[idx]
	for _, e := range group.Edges {
		chosen[idx] = []model.Edge{e}
		s.recurse(idx+1, chosen)
	}
	delete(chosen, idx)
}

func (s *search) evaluate(chosen map[int][]model.Edge) {
	edges := make([]model.Edge, 0, len(chosen))
	for _, es := range chosen {
		edges = append(edges, es...)
	}

	n := len(s.model.Instances)
	lower, ok := longestPath(n, edges, s.model.DayStart, s.model.DayEnd)
	if !ok {
		return
	}
	upper, ok := tightenUpperBounds(n, edges, s.model.DayEnd, lower)
	if !ok {
		return
	}

	t := relax(s.model, edges, lower, upper)
	total := 0.0
	for _, inst := range s.model.Instances {
		v := t[inst.GlobalID]
		total += float64(v) + s.model.PenaltyWeight*slack(v, inst.Windows)
	}

	if s.best == nil || total < s.bestObjective {
		s.best = t
		s.bestObjective = total
	}
}

// longestPath computes, for every node, the smallest value consistent
// with DayStart and every edge's "To >= From + Gap" requirement. A
// positive cycle (an edge set that cannot be simultaneously satisfied)
// or a value exceeding DayEnd makes the branch infeasible.
func longestPath(n int, edges []model.Edge, dayStart, dayEnd int) ([]int, bool) {
	t := make([]int, n)
	for i := range t {
		t[i] = dayStart
	}
	for i := 0; i < n+1; i++ {
		changed := false
		for _, e := range edges {
			if want := t[e.From] + e.Gap; t[e.To] < want {
				t[e.To] = want
				changed = true
			}
		}
		if !changed {
			break
		}
		if i == n && changed {
			return nil, false
		}
	}
	for _, v := range t {
		if v > dayEnd {
			return nil, false
		}
	}
	return t, true
}

// tightenUpperBounds computes, for every node, the largest value
// consistent with DayEnd and every edge's "From <= To - Gap"
// requirement, given lower as each node's already-established minimum.
func tightenUpperBounds(n int, edges []model.Edge, dayEnd int, lower []int) ([]int, bool) {
	u := make([]int, n)
	for i := range u {
		u[i] = dayEnd
	}
	for i := 0; i < n+1; i++ {
		changed := false
		for _, e := range edges {
			if want := u[e.To] - e.Gap; u[e.From] > want {
				u[e.From] = want
				changed = true
			}
		}
		if !changed {
			break
		}
		if i == n && changed {
			return nil, false
		}
	}
	for idx, v := range u {
		if v < lower[idx] {
			return nil, false
		}
	}
	return u, true
}

// relax runs coordinate-descent sweeps, in each pass re-tightening
// every instance's feasible interval from its neighbors' current
// values and then moving it to whichever point in that interval best
// trades off being early against minimizing window slack. The
// objective is separable and convex over a lattice-shaped feasible
// region, so this converges to the global optimum within a handful of
// sweeps for the small graphs this domain produces.
func relax(m *model.Model, edges []model.Edge, lower, upper []int) Assignment {
	n := len(m.Instances)
	t := make([]int, n)
	copy(t, lower)

	incoming := make(map[int][]model.Edge)
	outgoing := make(map[int][]model.Edge)
	for _, e := range edges {
		incoming[e.To] = append(incoming[e.To], e)
		outgoing[e.From] = append(outgoing[e.From], e)
	}

	windows := make([][]dsl.Window, n)
	for _, inst := range m.Instances {
		windows[inst.GlobalID] = inst.Windows
	}

	sweeps := 2*n + 5
	for s := 0; s < sweeps; s++ {
		changed := false
		for i := 0; i < n; i++ {
			lo := lower[i]
			for _, e := range incoming[i] {
				if want := t[e.From] + e.Gap; want > lo {
					lo = want
				}
			}
			hi := upper[i]
			for _, e := range outgoing[i] {
				if want := t[e.To] - e.Gap; want < hi {
					hi = want
				}
			}
			if lo > hi {
				lo, hi = lower[i], upper[i]
			}
			best := bestPointIn(lo, hi, windows[i], m.PenaltyWeight)
			if best != t[i] {
				t[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	out := make(Assignment, n)
	for i, v := range t {
		out[i] = v
	}
	return out
}

// bestPointIn finds the point in [lo, hi] minimizing v + weight*slack.
// Since slack is piecewise linear, its only downward-bending kinks sit
// at window boundaries (the kinks between neighboring windows are
// peaks), and v is linear, the minimum occurs at lo, hi, or a window
// boundary within the interval.
func bestPointIn(lo, hi int, windows []dsl.Window, weight float64) int {
	candidates := []int{lo, hi}
	for _, w := range windows {
		if w.Lo >= lo && w.Lo <= hi {
			candidates = append(candidates, w.Lo)
		}
		if w.Hi >= lo && w.Hi <= hi {
			candidates = append(candidates, w.Hi)
		}
	}

	best := lo
	bestCost := cost(lo, windows, weight)
	for _, c := range candidates {
		if c < lo || c > hi {
			continue
		}
		if v := cost(c, windows, weight); v < bestCost {
			bestCost = v
			best = c
		}
	}
	return best
}

func cost(t int, windows []dsl.Window, weight float64) float64 {
	return float64(t) + weight*slack(t, windows)
}

// slack is the minimum distance from t to any of windows: zero when
// windows is empty (no preference) or t falls inside a range window.
func slack(t int, windows []dsl.Window) float64 {
	if len(windows) == 0 {
		return 0
	}
	best := -1.0
	for _, w := range windows {
		var d float64
		if w.IsAnchor() {
			d = absInt(t - w.Lo)
		} else if t < w.Lo {
			d = float64(w.Lo - t)
		} else if t > w.Hi {
			d = float64(t - w.Hi)
		} else {
			d = 0
		}
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

func absInt(v int) float64 {
	if v < 0 {
		return float64(-v)
	}
	return float64(v)
}
