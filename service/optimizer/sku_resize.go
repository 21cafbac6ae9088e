package optimizer

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/elC0mpa/azure-optimizer/model"
	"github.com/elC0mpa/azure-optimizer/service"
	"github.com/elC0mpa/azure-optimizer/service/pricing"
)

const (
	// resizeConsiderationPct is the average CPU below which a VM becomes a
	// candidate for downsizing.
	resizeConsiderationPct = 20.0

	// resizeSafetyMarginPct is added to the idle threshold to form the
	// ceiling the projected CPU on the smaller tier must stay under.
	resizeSafetyMarginPct = 15.0

	hoursPerDay = 24
)

// SKUResizeRule suggests a smaller SKU within the same family for
// underutilized virtual machines. CPU on the candidate tier is projected
// by scaling the observed average by the vCPU ratio.
type SKUResizeRule struct {
	Metrics   service.MetricsService
	Resources service.ResourceService
	Prices    pricing.PriceSource
	Cfg       model.Config
}

func (r SKUResizeRule) Name() string { return "sku-resize" }

func (r SKUResizeRule) Evaluate(ctx context.Context) (Result, error) {
	usage, err := r.Metrics.AverageCPUByVM(ctx, r.Cfg.StartDate, r.Cfg.EndDate)
	if err != nil {
		return Result{}, err
	}
	vms, err := r.Resources.ListVirtualMachines(ctx)
	if err != nil {
		return Result{}, err
	}

	cpuByResource := make(map[string]float64, len(usage))
	for _, u := range usage {
		cpuByResource[u.ResourceID] = u.AverageCPU
	}

	ceiling := r.Cfg.CPUThreshold + resizeSafetyMarginPct

	var result Result
	for _, vm := range vms {
		avgCPU, ok := cpuByResource[vm.ResourceID]
		if !ok || avgCPU >= resizeConsiderationPct {
			continue
		}

		tiers, idx, ok := pricing.FamilyTiers(vm.SKU)
		if !ok {
			result.SkippedRecords++
			continue
		}
		if idx == 0 {
			// Already on the smallest tier of its family.
			continue
		}

		current := tiers[idx]
		candidate, found := smallestQualifyingTier(tiers[:idx], current, avgCPU, ceiling)
		if !found {
			continue
		}

		resize := model.SKUResize{
			ResourceID:   vm.ResourceID,
			CurrentSKU:   current.Name,
			SuggestedSKU: candidate.Name,
		}
		if savings, ok := r.windowSavings(current.Name, candidate.Name); ok {
			resize.EstimatedSavings = &savings
		}
		result.SKUResizes = append(result.SKUResizes, resize)
	}

	return result, nil
}

// smallestQualifyingTier walks the smaller tiers of a family from the
// smallest up and returns the first one whose projected CPU stays under
// the ceiling.
func smallestQualifyingTier(smaller []pricing.SKUTier, current pricing.SKUTier, avgCPU, ceiling float64) (pricing.SKUTier, bool) {
	for _, tier := range smaller {
		projected := avgCPU * float64(current.VCPUs) / float64(tier.VCPUs)
		if projected < ceiling {
			return tier, true
		}
	}
	return pricing.SKUTier{}, false
}

// windowSavings estimates the saving over the analysis window from moving
// between hourly-priced SKUs. Unknown prices yield no estimate.
func (r SKUResizeRule) windowSavings(currentSKU, candidateSKU string) (float64, bool) {
	curPrice, ok := r.Prices.VMHourlyPrice(currentSKU)
	if !ok {
		return 0, false
	}
	candPrice, ok := r.Prices.VMHourlyPrice(candidateSKU)
	if !ok {
		return 0, false
	}

	hours := decimal.NewFromInt(int64(hoursPerDay * r.Cfg.WindowDays()))
	savings := curPrice.Sub(candPrice).Mul(hours)
	if savings.IsNegative() {
		return 0, false
	}
	f, _ := savings.Float64()
	return f, true
}
