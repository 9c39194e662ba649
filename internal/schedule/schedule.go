// Package schedule is the top-level, pure entry point: it wires the
// DSL parser (via catalog), the catalog normalizer, the model builder,
// the solver, and the decoder into a single synchronous Solve call. It
// carries no state across calls other than a memoization cache, which
// is sound only because Solve is a pure function of its inputs.
package schedule

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/daytimetable/internal/catalog"
	"github.com/example/daytimetable/internal/decode"
	"github.com/example/daytimetable/internal/logging"
	"github.com/example/daytimetable/internal/model"
	"github.com/example/daytimetable/internal/solver"
)

// Solve validates and normalizes events, builds and solves the
// constraint model, and decodes the result into the output table. A
// failed solve returns no partial table.
func Solve(ctx context.Context, events []catalog.Event, p Params) ([]decode.Row, error) {
	logger := logging.FromContext(ctx)
	solveID := uuid.New().String()

	if p.DayEnd <= p.DayStart {
		return nil, &ValidationError{err: &DayBoundsInverted{DayStart: p.DayStart, DayEnd: p.DayEnd}}
	}

	key := signature(events, p)
	if rows, ok := cache.Get(key); ok {
		if p.Debug {
			logger.Debug("schedule cache hit", zap.String("solve_id", solveID), zap.String("signature", key))
		}
		return rows, nil
	}

	cat, err := catalog.Normalize(events, p.GlobalWindows)
	if err != nil {
		return nil, &ValidationError{err: err}
	}

	m := model.Build(cat, p.DayStart, p.DayEnd, p.PenaltyWeight)
	if p.Strategy == "latest" {
		m = m.Mirror()
	}

	if p.Debug {
		logger.Debug("compiled model",
			zap.String("solve_id", solveID),
			zap.Int("instances", len(m.Instances)),
			zap.Int("groups", len(m.Groups)),
			zap.Bool("mirrored", m.Mirrored),
		)
	}

	assignment, err := solver.Solve(m)
	if err != nil {
		var infeasible solver.Infeasible
		if errors.As(err, &infeasible) {
			return nil, wrapError(ErrInfeasible, err)
		}
		return nil, wrapError(ErrSolver, err)
	}

	rows := decode.Decode(m, assignment)

	if p.Debug {
		for _, line := range decode.DebugDump(rows, p.DayStart) {
			logger.Debug(line, zap.String("solve_id", solveID))
		}
	}

	cache.Add(key, rows)
	return rows, nil
}

func wrapError(sentinel, cause error) error {
	return &sentinelError{sentinel: sentinel, cause: cause}
}

type sentinelError struct {
	sentinel error
	cause    error
}

func (e *sentinelError) Error() string { return e.cause.Error() }
func (e *sentinelError) Is(target error) bool {
	return target == e.sentinel
}
func (e *sentinelError) Unwrap() error { return e.cause }
