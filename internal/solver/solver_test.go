package solver

import (
	"testing"

	"github.com/example/daytimetable/internal/catalog"
	"github.com/example/daytimetable/internal/model"
)

func solve(t *testing.T, events []catalog.Event, globalWindows []string, dayStart, dayEnd int, penalty float64, latest bool) (*model.Model, Assignment) {
	t.Helper()
	cat, err := catalog.Normalize(events, globalWindows)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	m := model.Build(cat, dayStart, dayEnd, penalty)
	if latest {
		m = m.Mirror()
	}
	a, err := Solve(m)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	return m, a
}

func TestApartAlonePacksEarliest(t *testing.T) {
	events := []catalog.Event{
		{Name: "paracetamol", Category: "medication", Unit: "pill", Frequency: "2x daily", Constraints: []string{"≥6h apart"}},
	}
	m, a := solve(t, events, nil, 420, 1320, 1000, false)

	got := []int{m.ActualTime(a[0]), m.ActualTime(a[1])}
	want := []int{420, 780}
	if got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestApartWithWindowsPrefersWindows(t *testing.T) {
	events := []catalog.Event{
		{
			Name: "medicine", Category: "medication", Unit: "pill", Frequency: "2x daily",
			Constraints: []string{"≥8h apart"},
			Windows:     []string{"08:00", "20:00"},
		},
	}
	m, a := solve(t, events, nil, 360, 1320, 1000, false)

	got := []int{m.ActualTime(a[0]), m.ActualTime(a[1])}
	want := []int{480, 1200}
	if got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBeforeSpecificEventIsSatisfied(t *testing.T) {
	events := []catalog.Event{
		{Name: "chicken", Category: "food", Unit: "meal", Frequency: "1x daily"},
		{Name: "probiotic", Category: "supplement", Unit: "pill", Frequency: "1x daily", Constraints: []string{"≥1h before chicken"}},
	}
	m, a := solve(t, events, nil, 360, 1320, 1000, false)

	cat, _ := catalog.Normalize(events, nil)
	mb := model.Build(cat, 360, 1320, 1000)
	var chickenID, probioticID int
	for _, inst := range mb.Instances {
		if inst.Event == "chicken" {
			chickenID = inst.GlobalID
		}
		if inst.Event == "probiotic" {
			probioticID = inst.GlobalID
		}
	}
	chickenT := m.ActualTime(a[chickenID])
	probioticT := m.ActualTime(a[probioticID])
	if chickenT-probioticT < 60 {
		t.Fatalf("expected probiotic at least 60 minutes before chicken, got chicken=%d probiotic=%d", chickenT, probioticT)
	}
}

func TestAfterCategoryResolvesToAnyMatchingInstance(t *testing.T) {
	events := []catalog.Event{
		{Name: "chicken", Category: "food", Unit: "meal", Frequency: "2x daily"},
		{Name: "vitamin", Category: "supplement", Unit: "pill", Frequency: "1x daily", Constraints: []string{"≥1h after food"}},
	}
	_, a := solve(t, events, nil, 360, 1320, 1000, false)

	cat, _ := catalog.Normalize(events, nil)
	mb := model.Build(cat, 360, 1320, 1000)
	var vitaminT int
	var chickenTimes []int
	for _, inst := range mb.Instances {
		if inst.Event == "vitamin" {
			vitaminT = a[inst.GlobalID]
		}
		if inst.Event == "chicken" {
			chickenTimes = append(chickenTimes, a[inst.GlobalID])
		}
	}
	satisfied := false
	for _, ct := range chickenTimes {
		if vitaminT-ct >= 60 {
			satisfied = true
		}
	}
	if !satisfied {
		t.Fatalf("expected vitamin to follow at least one chicken instance by 60 minutes")
	}
}

func TestLatestStrategyOnBareEvent(t *testing.T) {
	events := []catalog.Event{
		{Name: "pill", Category: "medication", Unit: "pill", Frequency: "1x daily"},
	}
	m, a := solve(t, events, nil, 540, 1260, 1000, true)
	got := m.ActualTime(a[0])
	if got != 1260 {
		t.Fatalf("expected latest bare event to land on day end 1260, got %d", got)
	}
}

func TestEarliestStrategyOnBareEvent(t *testing.T) {
	events := []catalog.Event{
		{Name: "pill", Category: "medication", Unit: "pill", Frequency: "1x daily"},
	}
	m, a := solve(t, events, nil, 540, 1260, 1000, false)
	got := m.ActualTime(a[0])
	if got != 540 {
		t.Fatalf("expected earliest bare event to land on day start 540, got %d", got)
	}
}

func TestDeterministicAcrossRepeatedSolves(t *testing.T) {
	events := []catalog.Event{
		{Name: "chicken", Category: "food", Unit: "meal", Frequency: "3x daily", Windows: []string{"08:00", "12:00-14:00", "19:00"}},
		{Name: "vitamin", Category: "supplement", Unit: "pill", Frequency: "1x daily", Constraints: []string{"≥1h after food"}},
	}
	cat, err := catalog.Normalize(events, nil)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	m1 := model.Build(cat, 360, 1320, 1000)
	a1, err := Solve(m1)
	if err != nil {
		t.Fatalf("solve 1: %v", err)
	}
	m2 := model.Build(cat, 360, 1320, 1000)
	a2, err := Solve(m2)
	if err != nil {
		t.Fatalf("solve 2: %v", err)
	}
	for id, v := range a1 {
		if a2[id] != v {
			t.Fatalf("solve not deterministic: instance %d got %d then %d", id, v, a2[id])
		}
	}
}

func TestInfeasibleWhenGapExceedsDay(t *testing.T) {
	events := []catalog.Event{
		{Name: "paracetamol", Category: "medication", Unit: "pill", Frequency: "2x daily", Constraints: []string{"≥20h apart"}},
	}
	cat, err := catalog.Normalize(events, nil)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	m := model.Build(cat, 0, 480, 1000)
	_, err = Solve(m)
	if err == nil {
		t.Fatal("expected infeasible error")
	}
	if _, ok := err.(Infeasible); !ok {
		t.Fatalf("expected Infeasible, got %T: %v", err, err)
	}
}
