package catalog

import "fmt"

// DuplicateEvent is reported when two catalog rows share a name.
type DuplicateEvent struct {
	Name string
}

func (e *DuplicateEvent) Error() string {
	return fmt.Sprintf("duplicate event %q", e.Name)
}

// UnknownReference is reported when a relational constraint's ref
// resolves to neither an event name nor a category. Suggestion is a
// fuzzy-matched near-miss from the catalog's known names/categories,
// and is empty when nothing is close enough to be useful.
type UnknownReference struct {
	Event      string
	Ref        string
	Suggestion string
}

func (e *UnknownReference) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("event %q references unknown event or category %q (did you mean %q?)", e.Event, e.Ref, e.Suggestion)
	}
	return fmt.Sprintf("event %q references unknown event or category %q", e.Event, e.Ref)
}
