package solver

import (
	"testing"

	"github.com/example/daytimetable/internal/catalog"
	"github.com/example/daytimetable/internal/model"
	"github.com/example/daytimetable/internal/testfixtures"
)

// TestManyIndependentApartEventsStayWithinBounds builds a catalog of
// several independently-named medication events (no relational
// constraints between them) and checks the same invariants the
// hand-written scenarios check, at a larger scale: strictly increasing
// instance times, the apart gap honored, and every time within the day
// bounds.
func TestManyIndependentApartEventsStayWithinBounds(t *testing.T) {
	ids := testfixtures.NewEventNamer("medication")

	var events []catalog.Event
	for i := 0; i < 8; i++ {
		events = append(events, testfixtures.Event(ids.Next(), "medication", "pill", "2x daily", []string{"≥4h apart"}, nil))
	}

	cat, err := catalog.Normalize(events, nil)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	m := model.Build(cat, 420, 1320, 1000)
	a, err := Solve(m)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}

	seen := map[string]bool{}
	for _, e := range events {
		if seen[e.Name] {
			t.Fatalf("generated event names collided: %q", e.Name)
		}
		seen[e.Name] = true
	}

	byEvent := map[string][]int{}
	for _, inst := range m.Instances {
		byEvent[inst.Event] = append(byEvent[inst.Event], m.ActualTime(a[inst.GlobalID]))
	}
	for name, times := range byEvent {
		if times[1] <= times[0] {
			t.Fatalf("event %s: instance 2 did not strictly follow instance 1: %v", name, times)
		}
		if times[1]-times[0] < 240 {
			t.Fatalf("event %s: apart gap violated: %v", name, times)
		}
		for _, v := range times {
			if v < 420 || v > 1320 {
				t.Fatalf("event %s: time %d out of day bounds", name, v)
			}
		}
	}
}
