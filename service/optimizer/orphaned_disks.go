package optimizer

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/elC0mpa/azure-optimizer/model"
	"github.com/elC0mpa/azure-optimizer/service"
	"github.com/elC0mpa/azure-optimizer/service/pricing"
)

// OrphanedDiskRule flags managed disks that are unattached and at least as
// old as the configured age threshold. A disk exactly at the threshold is
// included.
type OrphanedDiskRule struct {
	Resources service.ResourceService
	Prices    pricing.PriceSource
	Cfg       model.Config
}

func (r OrphanedDiskRule) Name() string { return "orphaned-disks" }

func (r OrphanedDiskRule) Evaluate(ctx context.Context) (Result, error) {
	disks, err := r.Resources.ListDisks(ctx)
	if err != nil {
		return Result{}, err
	}

	var result Result
	for _, disk := range disks {
		if disk.Name == "" {
			result.SkippedRecords++
			continue
		}
		if disk.Attached || disk.AgeDays < r.Cfg.DiskAgeThresholdDays {
			continue
		}

		orphaned := model.OrphanedDisk{
			DiskName:      disk.Name,
			ResourceGroup: disk.ResourceGroup,
			AgeDays:       disk.AgeDays,
			SizeGB:        disk.SizeGB,
			SKUName:       disk.SKUName,
		}
		if perGB, ok := r.Prices.DiskMonthlyPerGB(disk.SKUName); ok {
			monthly := perGB.Mul(decimal.NewFromInt32(disk.SizeGB))
			f, _ := monthly.Float64()
			orphaned.EstimatedSavings = &f
		}
		result.OrphanedDisks = append(result.OrphanedDisks, orphaned)
	}

	return result, nil
}
