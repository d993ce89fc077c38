package commands

import (
	"github.com/bi-tools/board-pulse/pkg/runtime/terminal/export"
	"github.com/bi-tools/board-pulse/pkg/services/pivot"
	"github.com/spf13/cobra"
)

func NewPivotCmd(reporter *export.Reporter) *cobra.Command {
	var dealsPath, wosPath string

	cmd := &cobra.Command{
		Use:   "pivot <dimension> <metric>",
		Short: "Run an ad-hoc pivot over board snapshots",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deals, err := loadDeals(dealsPath)
			if err != nil {
				return err
			}
			wos, err := loadWorkOrders(wosPath)
			if err != nil {
				return err
			}

			result, err := pivot.Analyze(deals, wos, args[0], args[1])
			if err != nil {
				return err
			}
			return reporter.Pivot(result)
		},
	}

	cmd.Flags().StringVar(&dealsPath, "deals", "", "Path to a deals snapshot (JSON)")
	cmd.Flags().StringVar(&wosPath, "wos", "", "Path to a work-orders snapshot (JSON)")

	return cmd
}
