package optimizer

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/elC0mpa/azure-optimizer/model"
)

type fakeCostService struct {
	records []model.CostRecord
	tags    []model.TagCost
	err     error
}

func (f fakeCostService) QueryCost(ctx context.Context, start, end time.Time, granularity model.Granularity, groupBy string) ([]model.CostRecord, error) {
	return f.records, f.err
}

func (f fakeCostService) QueryCostByTag(ctx context.Context, tagName string, start, end time.Time) ([]model.TagCost, error) {
	return f.tags, f.err
}

type fakeMetricsService struct {
	usage []model.UsageRecord
	err   error
}

func (f fakeMetricsService) QueryMetrics(ctx context.Context, query, workspaceID string) ([]model.UsageRecord, error) {
	return f.usage, f.err
}

func (f fakeMetricsService) AverageCPUByVM(ctx context.Context, start, end time.Time) ([]model.UsageRecord, error) {
	return f.usage, f.err
}

type fakeResourceService struct {
	disks []model.DiskRecord
	vms   []model.VMRecord
	err   error
}

func (f fakeResourceService) ListDisks(ctx context.Context) ([]model.DiskRecord, error) {
	return f.disks, f.err
}

func (f fakeResourceService) ListVirtualMachines(ctx context.Context) ([]model.VMRecord, error) {
	return f.vms, f.err
}

type fakePrices struct {
	vm   map[string]string
	disk map[string]string
}

func (f fakePrices) VMHourlyPrice(sku string) (decimal.Decimal, bool) {
	raw, ok := f.vm[sku]
	if !ok {
		return decimal.Decimal{}, false
	}
	return decimal.RequireFromString(raw), true
}

func (f fakePrices) DiskMonthlyPerGB(skuName string) (decimal.Decimal, bool) {
	raw, ok := f.disk[skuName]
	if !ok {
		return decimal.Decimal{}, false
	}
	return decimal.RequireFromString(raw), true
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func testConfig() model.Config {
	return model.Config{
		SubscriptionID:             "sub-1",
		CPUThreshold:               5,
		DiskAgeThresholdDays:       30,
		AnomalyPercentageThreshold: 50,
		AnomalyLookbackDays:        7,
		OutputPath:                 "artifacts/recommendations.json",
		StartDate:                  day("2026-08-01"),
		EndDate:                    day("2026-08-07"),
	}
}
