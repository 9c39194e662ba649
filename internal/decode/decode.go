// Package decode formats a solved model's variable assignment into
// the flat output table: one row per instance, time in both minutes
// and "HH:MM" form, sorted by time with ties broken by
// (entity_name, instance).
package decode

import (
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/example/daytimetable/internal/model"
	"github.com/example/daytimetable/internal/solver"
)

// Row is one output table row.
type Row struct {
	EntityName  string
	Instance    int
	TimeMinutes int
	TimeHHMM    string
}

// Decode reads m's variable assignment and produces the sorted output
// table.
func Decode(m *model.Model, assignment solver.Assignment) []Row {
	rows := make([]Row, 0, len(m.Instances))
	for _, inst := range m.Instances {
		minutes := m.ActualTime(assignment[inst.GlobalID])
		rows = append(rows, Row{
			EntityName:  inst.Event,
			Instance:    inst.Index,
			TimeMinutes: minutes,
			TimeHHMM:    formatHHMM(minutes),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TimeMinutes != rows[j].TimeMinutes {
			return rows[i].TimeMinutes < rows[j].TimeMinutes
		}
		if rows[i].EntityName != rows[j].EntityName {
			return rows[i].EntityName < rows[j].EntityName
		}
		return rows[i].Instance < rows[j].Instance
	})
	return rows
}

func formatHHMM(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	return fmt.Sprintf("%02d:%02d", h, m)
}

// CatalogColumn is one extra column to widen the output table with,
// supplementing the four-column contract additively: it never changes
// what a caller relying only on the base columns sees.
type CatalogColumn struct {
	Name  string
	Value func(entityName string) string
}

// WithCatalogColumns joins extra per-event columns (category, unit, or
// any other catalog field a caller wants alongside the schedule) onto
// an already-decoded table, keyed by entity name.
func WithCatalogColumns(rows []Row, columns ...CatalogColumn) []map[string]string {
	out := make([]map[string]string, len(rows))
	for i, r := range rows {
		wide := map[string]string{
			"entity_name":  r.EntityName,
			"instance":     fmt.Sprintf("%d", r.Instance),
			"time_minutes": fmt.Sprintf("%d", r.TimeMinutes),
			"time_hhmm":    r.TimeHHMM,
		}
		for _, c := range columns {
			wide[c.Name] = c.Value(r.EntityName)
		}
		out[i] = wide
	}
	return out
}

// DebugDump renders rows as a human-readable, one-line-per-row summary
// for the debug logging sink, e.g. "chicken, 2nd occurrence, at 12:30
// (4h30m0s after day start)". It is purely diagnostic; nothing in the
// functional contract depends on its format.
func DebugDump(rows []Row, dayStart int) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		since := time.Duration(r.TimeMinutes-dayStart) * time.Minute
		out[i] = fmt.Sprintf("%s, %s occurrence, at %s (%s after day start)",
			r.EntityName, humanize.Ordinal(r.Instance), r.TimeHHMM, since)
	}
	return out
}
