package catalog

import (
	"sort"

	"github.com/sahilm/fuzzy"
	"go.uber.org/multierr"

	"github.com/example/daytimetable/internal/dsl"
)

// ResolvedConstraint is a Constraint whose reference has been resolved
// to the concrete set of target event names it binds against. For an
// event-name reference the set has exactly one member; for a category
// reference it holds every event sharing that category (including,
// potentially, the owning event itself if it shares its own category
// with the target — callers decide whether self-reference is
// meaningful for their constraint kind).
type ResolvedConstraint struct {
	Kind       dsl.ConstraintKind
	GapMinutes int
	Targets    []string
}

// NormalizedEvent is a validated catalog row, its frequency resolved
// to an instance count, its windows parsed, and its constraints
// resolved.
type NormalizedEvent struct {
	Name        string
	Category    string
	Unit        string
	Amount      *float64
	Divisor     *int
	Note        *string
	Count       int
	Windows     []dsl.Window
	Constraints []ResolvedConstraint
}

// Catalog is a validated, fully resolved set of events ready for model
// building.
type Catalog struct {
	Events []NormalizedEvent
	byName map[string]int
}

// ByName looks up a normalized event by name.
func (c *Catalog) ByName(name string) (NormalizedEvent, bool) {
	idx, ok := c.byName[name]
	if !ok {
		return NormalizedEvent{}, false
	}
	return c.Events[idx], true
}

// TotalInstances sums the instance counts of every event in the
// catalog.
func (c *Catalog) TotalInstances() int {
	total := 0
	for _, e := range c.Events {
		total += e.Count
	}
	return total
}

// Normalize validates raw events, expands each into its instance
// count, and resolves every relational constraint's reference. When
// an event carries no windows of its own, globalWindows (raw window
// strings, parsed here) is applied in its place. All validation errors found across
// the whole catalog are combined and returned together rather than
// failing on the first offending row.
func Normalize(events []Event, globalWindows []string) (*Catalog, error) {
	var errs error

	names := make(map[string]struct{}, len(events))
	duplicates := make(map[string]struct{})
	categories := make(map[string][]string, len(events))
	for _, e := range events {
		if _, dup := names[e.Name]; dup {
			if _, reported := duplicates[e.Name]; !reported {
				errs = multierr.Append(errs, &DuplicateEvent{Name: e.Name})
				duplicates[e.Name] = struct{}{}
			}
			continue
		}
		names[e.Name] = struct{}{}
		categories[e.Category] = append(categories[e.Category], e.Name)
	}

	parsedGlobalWindows, werr := parseWindows(globalWindows)
	errs = multierr.Append(errs, werr)

	known := knownIdentifiers(events)

	normalized := make([]NormalizedEvent, 0, len(events))
	byName := make(map[string]int, len(events))

	for _, e := range events {
		if _, ok := duplicates[e.Name]; ok {
			// Duplicate row already recorded above; skip rebuilding it.
			continue
		}

		freq, err := dsl.ParseFrequency(e.Frequency)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		windows := parsedGlobalWindows
		if len(e.Windows) > 0 {
			ws, werr := parseWindows(e.Windows)
			if werr != nil {
				errs = multierr.Append(errs, werr)
				continue
			}
			windows = ws
		}

		constraints := make([]ResolvedConstraint, 0, len(e.Constraints))
		rowFailed := false
		for _, raw := range e.Constraints {
			c, err := dsl.ParseConstraint(raw)
			if err != nil {
				errs = multierr.Append(errs, err)
				rowFailed = true
				continue
			}
			if c.Kind == dsl.Apart {
				constraints = append(constraints, ResolvedConstraint{Kind: c.Kind, GapMinutes: c.GapMinutes})
				continue
			}
			targets, err := resolveRef(e.Name, c.Ref, names, categories, known)
			if err != nil {
				errs = multierr.Append(errs, err)
				rowFailed = true
				continue
			}
			constraints = append(constraints, ResolvedConstraint{Kind: c.Kind, GapMinutes: c.GapMinutes, Targets: targets})
		}
		if rowFailed {
			continue
		}

		byName[e.Name] = len(normalized)
		normalized = append(normalized, NormalizedEvent{
			Name:        e.Name,
			Category:    e.Category,
			Unit:        e.Unit,
			Amount:      e.Amount,
			Divisor:     e.Divisor,
			Note:        e.Note,
			Count:       freq.Count,
			Windows:     windows,
			Constraints: constraints,
		})
	}

	if errs != nil {
		return nil, errs
	}
	return &Catalog{Events: normalized, byName: byName}, nil
}

func parseWindows(raw []string) ([]dsl.Window, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	windows := make([]dsl.Window, 0, len(raw))
	var errs error
	for _, w := range raw {
		parsed, err := dsl.ParseWindow(w)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		windows = append(windows, parsed)
	}
	if errs != nil {
		return nil, errs
	}
	return windows, nil
}

// resolveRef applies the tie-break rule for an ambiguous reference: an
// exact event-name match wins over a category match when both are
// possible.
func resolveRef(owner, ref string, names map[string]struct{}, categories map[string][]string, known []string) ([]string, error) {
	if _, ok := names[ref]; ok {
		return []string{ref}, nil
	}
	if targets, ok := categories[ref]; ok && len(targets) > 0 {
		out := make([]string, len(targets))
		copy(out, targets)
		sort.Strings(out)
		return out, nil
	}
	return nil, &UnknownReference{Event: owner, Ref: ref, Suggestion: suggest(ref, known)}
}

func knownIdentifiers(events []Event) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range events {
		if _, ok := seen[e.Name]; !ok {
			seen[e.Name] = struct{}{}
			out = append(out, e.Name)
		}
		if _, ok := seen[e.Category]; !ok {
			seen[e.Category] = struct{}{}
			out = append(out, e.Category)
		}
	}
	sort.Strings(out)
	return out
}

func suggest(ref string, known []string) string {
	if len(known) == 0 {
		return ""
	}
	matches := fuzzy.Find(ref, known)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
