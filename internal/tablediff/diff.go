// Package tablediff renders decoded schedule tables and diffs them,
// giving tests a readable failure message instead of a raw slice
// comparison when asserting two solves produced the same table.
package tablediff

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/example/daytimetable/internal/decode"
)

// Render formats decoded rows as one line per row, the format Diff
// compares against.
func Render(rows []decode.Row) []string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("%s\t%d\t%d\t%s", r.EntityName, r.Instance, r.TimeMinutes, r.TimeHHMM)
	}
	return lines
}

// Diff renders two decoded tables and returns a unified diff between
// them, empty when they are identical. Used to assert that solving
// the same catalog twice yields identical tables.
func Diff(want, got []decode.Row) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        Render(want),
		B:        Render(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}
