package commands

import (
	"time"

	"github.com/bi-tools/board-pulse/pkg/runtime/terminal/export"
	"github.com/bi-tools/board-pulse/pkg/services/report"
	"github.com/spf13/cobra"
)

func NewBriefingCmd(reporter *export.Reporter) *cobra.Command {
	var dealsPath, wosPath string

	cmd := &cobra.Command{
		Use:   "briefing",
		Short: "Render a leadership briefing from board snapshots",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deals, err := loadDeals(dealsPath)
			if err != nil {
				return err
			}
			wos, err := loadWorkOrders(wosPath)
			if err != nil {
				return err
			}

			update := report.LeadershipUpdate(deals, wos, time.Now())
			return reporter.Briefing(update)
		},
	}

	cmd.Flags().StringVar(&dealsPath, "deals", "", "Path to a deals snapshot (JSON)")
	cmd.Flags().StringVar(&wosPath, "wos", "", "Path to a work-orders snapshot (JSON)")

	return cmd
}
