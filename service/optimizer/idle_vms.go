package optimizer

import (
	"context"

	"github.com/elC0mpa/azure-optimizer/model"
	"github.com/elC0mpa/azure-optimizer/service"
	"github.com/elC0mpa/azure-optimizer/service/costmanagement"
)

// IdleVMRule flags virtual machines whose average CPU over the analysis
// window is strictly below the configured threshold. A VM sitting exactly
// at the threshold is not idle.
type IdleVMRule struct {
	Metrics service.MetricsService
	Cost    service.CostService
	Cfg     model.Config
}

func (r IdleVMRule) Name() string { return "idle-vms" }

func (r IdleVMRule) Evaluate(ctx context.Context) (Result, error) {
	usage, err := r.Metrics.AverageCPUByVM(ctx, r.Cfg.StartDate, r.Cfg.EndDate)
	if err != nil {
		return Result{}, err
	}

	// Savings come from the resource's cost over the same window. The cost
	// lookup is best effort: when it fails or has no row for a resource,
	// the estimate is omitted rather than the rule failing.
	costByResource := map[string]float64{}
	records, err := r.Cost.QueryCost(ctx, r.Cfg.StartDate, r.Cfg.EndDate,
		model.GranularityDaily, costmanagement.GroupByResource)
	if err == nil {
		for _, rec := range records {
			costByResource[rec.ResourceID] += rec.Amount
		}
	}

	var result Result
	for _, u := range usage {
		if u.ResourceID == "" {
			result.SkippedRecords++
			continue
		}
		if u.AverageCPU >= r.Cfg.CPUThreshold {
			continue
		}

		idle := model.IdleVM{
			ResourceID: u.ResourceID,
			AverageCPU: u.AverageCPU,
		}
		if cost, ok := costByResource[u.ResourceID]; ok {
			idle.EstimatedSavings = &cost
		}
		result.IdleVMs = append(result.IdleVMs, idle)
	}

	return result, nil
}
