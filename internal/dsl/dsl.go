// Package dsl parses the compact constraint, frequency, and window
// mini-languages used to describe a catalog row.
package dsl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ConstraintKind tags the variant carried by a Constraint.
type ConstraintKind int

const (
	// Apart requires every pair of instances of the owning event to be
	// separated by at least the given gap.
	Apart ConstraintKind = iota
	// Before requires at least one instance of the reference to occur
	// at least the given gap after the owning instance.
	Before
	// After requires at least one instance of the reference to occur
	// at least the given gap before the owning instance.
	After
	// ApartFrom requires every owning instance to be at least the
	// given gap away, on either side, from every reference instance.
	ApartFrom
)

func (k ConstraintKind) String() string {
	switch k {
	case Apart:
		return "apart"
	case Before:
		return "before"
	case After:
		return "after"
	case ApartFrom:
		return "apart_from"
	default:
		return "unknown"
	}
}

// Constraint is a typed, parsed constraint record. Ref is empty for
// Apart (it only ever relates instances of the owning event to each
// other); for Before/After/ApartFrom it carries the raw reference text
// (an event name or category), resolved later by the catalog
// normalizer.
type Constraint struct {
	Kind       ConstraintKind
	GapMinutes int
	Ref        string
	Text       string // original source text, kept for diagnostics
}

// BadConstraint is returned when a constraint string does not match
// any grammar production.
type BadConstraint struct {
	Text   string
	Reason string
}

func (e *BadConstraint) Error() string {
	return fmt.Sprintf("bad constraint %q: %s", e.Text, e.Reason)
}

// BadFrequency is returned when a frequency string does not match
// "<count>x <period>".
type BadFrequency struct {
	Text   string
	Reason string
}

func (e *BadFrequency) Error() string {
	return fmt.Sprintf("bad frequency %q: %s", e.Text, e.Reason)
}

// BadWindow is returned when a window string is malformed or its
// bounds are inverted.
type BadWindow struct {
	Text   string
	Reason string
}

func (e *BadWindow) Error() string {
	return fmt.Sprintf("bad window %q: %s", e.Text, e.Reason)
}

var (
	// Accepts both the Unicode "≥" and ASCII ">=" gap prefixes.
	reGapPrefix  = regexp.MustCompile(`^(?:>=|≥)\s*`)
	reDuration   = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(h|m)$`)
	reApartFrom  = regexp.MustCompile(`^apart\s+from\s+(\S+)$`)
	reApartAlone = regexp.MustCompile(`^apart$`)
	reRelation   = regexp.MustCompile(`^(before|after)\s+(\S+)$`)

	reFrequency = regexp.MustCompile(`^(\d+)\s*x\s*(daily|weekly|monthly|yearly)$`)

	reWindowRange  = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*-\s*(\d{1,2}):(\d{2})$`)
	reWindowAnchor = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// ParseConstraint parses one constraint string, e.g. "≥6h apart",
// "≥1h before food", ">=2h after antibiotic", "≥30m apart from meal".
func ParseConstraint(text string) (Constraint, error) {
	raw := strings.TrimSpace(text)
	body := reGapPrefix.ReplaceAllString(raw, "")
	body = strings.TrimSpace(body)

	fields := strings.Fields(body)
	if len(fields) < 2 {
		return Constraint{}, &BadConstraint{Text: text, Reason: "expected '<duration> <rest>'"}
	}
	gapText := fields[0]
	rest := strings.Join(fields[1:], " ")

	gap, err := ParseDuration(gapText)
	if err != nil {
		return Constraint{}, &BadConstraint{Text: text, Reason: err.Error()}
	}

	switch {
	case reApartAlone.MatchString(rest):
		return Constraint{Kind: Apart, GapMinutes: gap, Text: raw}, nil
	case reApartFrom.MatchString(rest):
		m := reApartFrom.FindStringSubmatch(rest)
		return Constraint{Kind: ApartFrom, GapMinutes: gap, Ref: m[1], Text: raw}, nil
	case reRelation.MatchString(rest):
		m := reRelation.FindStringSubmatch(rest)
		kind := Before
		if m[1] == "after" {
			kind = After
		}
		return Constraint{Kind: kind, GapMinutes: gap, Ref: m[2], Text: raw}, nil
	default:
		return Constraint{}, &BadConstraint{Text: text, Reason: "unknown form (expected 'apart', 'apart from <ref>', 'before <ref>', or 'after <ref>')"}
	}
}

// ParseDuration parses a gap of the form "<number>h" or "<number>m"
// into whole minutes. Fractional hours are accepted ("0.5h", "0.25h");
// the result is rounded to the nearest minute.
func ParseDuration(text string) (int, error) {
	m := reDuration.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, fmt.Errorf("invalid duration %q (expected <number>h or <number>m)", text)
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", text, err)
	}
	switch m[2] {
	case "h":
		return int(value*60 + 0.5), nil
	case "m":
		return int(value + 0.5), nil
	default:
		return 0, fmt.Errorf("invalid duration unit in %q", text)
	}
}

// Frequency is the parsed result of a frequency string.
type Frequency struct {
	Count  int
	Period string // "daily", "weekly", "monthly", "yearly"
}

// ParseFrequency parses "<count>x <period>", e.g. "3x daily". An empty
// string defaults to "1x daily", matching the reference
// implementation's `SchedulerPlugin.add` default.
func ParseFrequency(text string) (Frequency, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		trimmed = "1x daily"
	}
	normalized := strings.ToLower(strings.Join(strings.Fields(trimmed), " "))
	// Allow both "3x daily" and "3 x daily" / "3xdaily" spacing variants.
	normalized = strings.Replace(normalized, " x ", "x", 1)
	m := reFrequency.FindStringSubmatch(normalized)
	if m == nil {
		return Frequency{}, &BadFrequency{Text: text, Reason: "expected '<count>x <daily|weekly|monthly|yearly>'"}
	}
	count, err := strconv.Atoi(m[1])
	if err != nil || count < 1 {
		return Frequency{}, &BadFrequency{Text: text, Reason: "count must be a positive integer"}
	}
	return Frequency{Count: count, Period: m[2]}, nil
}

// Window is a single preferred time region: an anchor (Lo == Hi) or a
// range (Lo < Hi), both in minutes of day.
type Window struct {
	Lo int
	Hi int
}

// IsAnchor reports whether the window is a single instant rather than
// a range.
func (w Window) IsAnchor() bool {
	return w.Lo == w.Hi
}

// ParseWindow parses "HH:MM" (an anchor) or "HH:MM-HH:MM" (a range,
// requiring lo <= hi) into minutes of day.
func ParseWindow(text string) (Window, error) {
	raw := strings.TrimSpace(text)
	if m := reWindowRange.FindStringSubmatch(raw); m != nil {
		lo, err := hhmmToMinutes(m[1], m[2])
		if err != nil {
			return Window{}, &BadWindow{Text: text, Reason: err.Error()}
		}
		hi, err := hhmmToMinutes(m[3], m[4])
		if err != nil {
			return Window{}, &BadWindow{Text: text, Reason: err.Error()}
		}
		if lo > hi {
			return Window{}, &BadWindow{Text: text, Reason: "range lower bound must not exceed upper bound"}
		}
		return Window{Lo: lo, Hi: hi}, nil
	}
	if m := reWindowAnchor.FindStringSubmatch(raw); m != nil {
		t, err := hhmmToMinutes(m[1], m[2])
		if err != nil {
			return Window{}, &BadWindow{Text: text, Reason: err.Error()}
		}
		return Window{Lo: t, Hi: t}, nil
	}
	return Window{}, &BadWindow{Text: text, Reason: "expected 'HH:MM' or 'HH:MM-HH:MM'"}
}

func hhmmToMinutes(hh, mm string) (int, error) {
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("hour out of range in %q:%q", hh, mm)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("minute out of range in %q:%q", hh, mm)
	}
	return h*60 + m, nil
}
