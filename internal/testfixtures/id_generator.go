package testfixtures

import (
	"fmt"
	"sync"
)

// EventNamer hands out event names of the form "<prefix>-<n>", so a
// test that needs many catalog rows with no relation to each other
// (e.g. a stress test with dozens of unrelated medications) can build
// them without risking a name collision that would trip
// catalog.Normalize's duplicate-event check.
type EventNamer struct {
	mu      sync.Mutex
	prefix  string
	counter uint64
}

// NewEventNamer constructs a namer that yields names under the given
// prefix. An empty prefix defaults to "event".
func NewEventNamer(prefix string) *EventNamer {
	if prefix == "" {
		prefix = "event"
	}
	return &EventNamer{prefix: prefix}
}

// Next returns the next name in the sequence.
func (n *EventNamer) Next() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.counter++
	return fmt.Sprintf("%s-%d", n.prefix, n.counter)
}
