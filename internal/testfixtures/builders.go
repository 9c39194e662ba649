package testfixtures

import "github.com/example/daytimetable/internal/catalog"

// Float returns a pointer to v, for populating catalog.Event's
// nullable Amount field in tests.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for populating catalog.Event's nullable
// Divisor field in tests.
func Int(v int) *int { return &v }

// Event builds a minimal catalog.Event, letting tests override only
// the fields a given scenario cares about.
func Event(name, category, unit, frequency string, constraints, windows []string) catalog.Event {
	return catalog.Event{
		Name:        name,
		Category:    category,
		Unit:        unit,
		Frequency:   frequency,
		Constraints: constraints,
		Windows:     windows,
	}
}

// DemoCatalog is a worked example catalog — meals, a vitamin, an
// antibiotic, a probiotic, a protein shake, and ginger — exercising
// apart, before, after, a multi-instance category reference, and
// anchor + range windows in one coherent catalog.
func DemoCatalog() []catalog.Event {
	return []catalog.Event{
		Event("chicken", "food", "meal", "3x daily", nil, []string{"08:00", "12:00-14:00", "19:00"}),
		Event("vitamin", "supplement", "pill", "1x daily", []string{"≥1h after food"}, nil),
		Event("antibiotic", "medication", "pill", "2x daily", []string{"≥6h apart", "≥1h before food"}, nil),
		Event("probiotic", "supplement", "capsule", "1x daily", []string{"≥2h after antibiotic"}, nil),
		{
			Name: "protein shake", Category: "supplement", Unit: "gram",
			Amount: Float(30), Frequency: "1x daily", Windows: []string{"11:00"},
			Note: strPtr("mix with 300ml water"),
		},
		Event("ginger", "supplement", "shot", "1x daily", []string{"≥1h before food"}, nil),
	}
}

func strPtr(s string) *string { return &s }
