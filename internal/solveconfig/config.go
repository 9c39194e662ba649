// Package solveconfig loads default solve parameters for the demo
// command entrypoint. The pure schedule package never reads the
// environment itself; this is strictly a caller concern, resolved
// once before schedule.Solve is invoked.
package solveconfig

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/example/daytimetable/internal/dsl"
	"github.com/example/daytimetable/internal/schedule"
)

// Load resolves schedule.Params from environment variables prefixed
// DAYTIMETABLE_ (and an optional config file named by configPath,
// when non-empty), falling back to schedule.DefaultParams for
// anything unset.
func Load(configPath string) (schedule.Params, error) {
	v := viper.New()
	v.SetEnvPrefix("daytimetable")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	defaults := schedule.DefaultParams()
	v.SetDefault("strategy", defaults.Strategy)
	v.SetDefault("day_start", "08:00")
	v.SetDefault("day_end", "22:00")
	v.SetDefault("penalty_weight", defaults.PenaltyWeight)
	v.SetDefault("debug", defaults.Debug)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return schedule.Params{}, fmt.Errorf("solveconfig: reading %s: %w", configPath, err)
		}
	}

	strategy := v.GetString("strategy")
	if strategy != "earliest" && strategy != "latest" {
		return schedule.Params{}, fmt.Errorf("solveconfig: invalid strategy %q", strategy)
	}

	dayStart, err := minutesOf(v.GetString("day_start"))
	if err != nil {
		return schedule.Params{}, fmt.Errorf("solveconfig: day_start: %w", err)
	}
	dayEnd, err := minutesOf(v.GetString("day_end"))
	if err != nil {
		return schedule.Params{}, fmt.Errorf("solveconfig: day_end: %w", err)
	}

	return schedule.Params{
		Strategy:      strategy,
		DayStart:      dayStart,
		DayEnd:        dayEnd,
		PenaltyWeight: v.GetFloat64("penalty_weight"),
		Debug:         v.GetBool("debug"),
	}, nil
}

func minutesOf(hhmm string) (int, error) {
	w, err := dsl.ParseWindow(hhmm)
	if err != nil {
		return 0, err
	}
	return w.Lo, nil
}
