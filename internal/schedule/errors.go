package schedule

import (
	"errors"
	"fmt"

	"github.com/example/daytimetable/internal/catalog"
	"github.com/example/daytimetable/internal/solver"
)

// ErrInfeasible is returned (via errors.Is) when no schedule satisfies
// every hard constraint.
var ErrInfeasible = errors.New("no schedule satisfies the given constraints")

// ErrSolver is returned (via errors.Is) when the solver backend fails
// for reasons other than infeasibility.
var ErrSolver = errors.New("solver backend failure")

// DayBoundsInverted is reported when day_end does not exceed
// day_start.
type DayBoundsInverted struct {
	DayStart, DayEnd int
}

func (e *DayBoundsInverted) Error() string {
	return fmt.Sprintf("day_start (%d) must be before day_end (%d)", e.DayStart, e.DayEnd)
}

// ValidationError wraps input-validation failures: either a lone
// DayBoundsInverted (checked before the catalog is looked at), or the
// BadConstraint, BadFrequency, BadWindow, DuplicateEvent and
// UnknownReference failures aggregated across the whole catalog, over
// go.uber.org/multierr's combined error instead of a hand-rolled slice.
type ValidationError struct {
	err error
}

func (v *ValidationError) Error() string { return v.err.Error() }

// Unwrap exposes the combined error so errors.Is/errors.As can reach
// any individual failure it aggregates.
func (v *ValidationError) Unwrap() error { return v.err }

// ErrorKind maps any error this package can return to a stable label
// suitable for a structured log field.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		return "validation"
	}
	if errors.Is(err, ErrInfeasible) {
		return "infeasible"
	}
	if errors.Is(err, ErrSolver) {
		return "solver"
	}
	var dup *catalog.DuplicateEvent
	if errors.As(err, &dup) {
		return "validation"
	}
	var unknown *catalog.UnknownReference
	if errors.As(err, &unknown) {
		return "validation"
	}
	var infeasible solver.Infeasible
	if errors.As(err, &infeasible) {
		return "infeasible"
	}
	return "unknown"
}
