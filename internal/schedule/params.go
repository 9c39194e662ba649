package schedule

// Params are the global parameters controlling one solve.
type Params struct {
	Strategy      string   // "earliest" or "latest"
	DayStart      int      // minutes of day
	DayEnd        int      // minutes of day
	GlobalWindows []string // applied to events that carry no windows of their own
	PenaltyWeight float64
	Debug         bool // observability hatch only; never changes the solved table
}

// DefaultParams returns the stated defaults: earliest strategy, day
// 08:00–22:00, no global windows, penalty weight 1.
func DefaultParams() Params {
	return Params{
		Strategy:      "earliest",
		DayStart:      8 * 60,
		DayEnd:        22 * 60,
		PenaltyWeight: 1,
	}
}
