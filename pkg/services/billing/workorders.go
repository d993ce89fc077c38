package billing

import (
	"strings"

	"github.com/bi-tools/board-pulse/pkg/aggregate"
	"github.com/bi-tools/board-pulse/pkg/models/api"
	"github.com/bi-tools/board-pulse/pkg/models/domain"
)

// stuckStatuses are the execution statuses that mean a project has stalled,
// matched case-insensitively. The misspelling "struck" is how the board
// spells it.
var stuckStatuses = map[string]bool{
	"pause/struck": true,
	"paused":       true,
	"struck":       true,
	"on hold":      true,
}

// ActiveWorkOrders breaks work orders down by status and collects the stuck
// ones separately.
func ActiveWorkOrders(wos []domain.WorkOrderRecord) api.WorkOrderOps {
	statusCounts := make(map[string]int)
	var stuck []api.StuckProject

	for _, wo := range wos {
		status := wo.Status()
		statusCounts[status]++
		if stuckStatuses[strings.ToLower(status)] {
			stuck = append(stuck, api.StuckProject{
				Deal:     wo.DealName,
				Customer: wo.CustomerCode,
				Sector:   wo.Sector,
				Status:   status,
			})
		}
	}

	return api.WorkOrderOps{
		StatusBreakdown: statusCounts,
		TotalWorkOrders: len(wos),
		StuckProjects:   stuck,
		StuckCount:      len(stuck),
	}
}

// PlatformAdoption builds independent histograms of the deal product field
// and the work-order platform field.
func PlatformAdoption(deals []domain.DealRecord, wos []domain.WorkOrderRecord) api.PlatformAdoption {
	byProduct := aggregate.NewCounter()
	for _, d := range deals {
		byProduct.Add(d.Product, 1)
	}

	byPlatform := make(map[string]int)
	for _, wo := range wos {
		platform := strings.TrimSpace(wo.Platform)
		if platform == "" {
			platform = "None/Unknown"
		}
		byPlatform[platform]++
	}

	return api.PlatformAdoption{
		ByProductType:   byProduct.IntMap(),
		ByPlatformOnWOs: byPlatform,
	}
}
