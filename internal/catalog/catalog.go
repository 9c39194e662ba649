// Package catalog validates a raw event catalog, resolves the
// relational constraint references it contains, and expands each
// event into its ordered instance slots.
package catalog

// Event is one raw input row, matching the input table schema: one
// row per recurring event, carrying its frequency, constraint
// strings, and window strings exactly as authored.
type Event struct {
	Name        string
	Category    string
	Unit        string
	Amount      *float64
	Divisor     *int
	Frequency   string
	Constraints []string
	Windows     []string
	Note        *string
}
