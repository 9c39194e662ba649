// Command daytimetable is a thin demo wrapping schedule.Solve. It is
// not a general-purpose CLI or interactive shell — it runs a single
// built-in catalog through the library packages that do the actual
// work and prints the resulting table.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/daytimetable/internal/logging"
	"github.com/example/daytimetable/internal/schedule"
	"github.com/example/daytimetable/internal/solveconfig"
	"github.com/example/daytimetable/internal/testfixtures"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var strategyOverride string

	cmd := &cobra.Command{
		Use:   "daytimetable",
		Short: "Solve the built-in demo catalog and print the resulting schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := solveconfig.Load(configPath)
			if err != nil {
				return err
			}
			if strategyOverride != "" {
				params.Strategy = strategyOverride
			}

			logger := zap.NewNop()
			if params.Debug {
				logger, err = zap.NewDevelopment()
				if err != nil {
					return err
				}
			}
			defer logger.Sync()

			ctx := logging.ContextWithLogger(context.Background(), logger)
			rows, err := schedule.Solve(ctx, testfixtures.DemoCatalog(), params)
			if err != nil {
				return fmt.Errorf("%s: %w", schedule.ErrorKind(err), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "entity_name\tinstance\ttime_minutes\ttime_hhmm\n")
			for _, r := range rows {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%d\t%s\n", r.EntityName, r.Instance, r.TimeMinutes, r.TimeHHMM)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "optional solveconfig file (viper-readable)")
	cmd.Flags().StringVar(&strategyOverride, "strategy", "", "override the configured strategy (earliest|latest)")
	return cmd
}
