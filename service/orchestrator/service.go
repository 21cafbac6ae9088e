package orchestrator

import (
	"context"
	"time"

	"github.com/elC0mpa/azure-optimizer/model"
	svc "github.com/elC0mpa/azure-optimizer/service"
	"github.com/elC0mpa/azure-optimizer/service/optimizer"
	"github.com/elC0mpa/azure-optimizer/service/pricing"
	"github.com/elC0mpa/azure-optimizer/service/report"
)

type service struct {
	cost      svc.CostService
	resources svc.ResourceService
	metrics   svc.MetricsService
	prices    pricing.PriceSource
	reports   report.ReportService
	cfg       model.Config
	now       func() time.Time
}

func NewService(cost svc.CostService, resources svc.ResourceService, metrics svc.MetricsService, prices pricing.PriceSource, cfg model.Config) *service {
	return &service{
		cost:      cost,
		resources: resources,
		metrics:   metrics,
		prices:    prices,
		reports:   report.NewService(cfg),
		cfg:       cfg,
		now:       time.Now,
	}
}

// Run evaluates every optimization rule against the configured window,
// assembles the report and writes it to the configured output path. The
// returned annotations describe rules that were skipped for lack of
// permissions.
func (s *service) Run(ctx context.Context) (*model.Report, []string, error) {
	engine := optimizer.NewEngine(optimizer.DefaultWorkers)
	engine.Register(
		optimizer.IdleVMRule{Metrics: s.metrics, Cost: s.cost, Cfg: s.cfg},
		optimizer.SKUResizeRule{Metrics: s.metrics, Resources: s.resources, Prices: s.prices, Cfg: s.cfg},
		optimizer.OrphanedDiskRule{Resources: s.resources, Prices: s.prices, Cfg: s.cfg},
		optimizer.CostAnomalyRule{Cost: s.cost, Cfg: s.cfg},
	)

	result, err := engine.Run(ctx)
	if err != nil {
		return nil, nil, err
	}

	rep := s.reports.Assemble(result, s.now())
	if err := s.reports.Write(rep, s.cfg.OutputPath); err != nil {
		return nil, nil, err
	}
	return rep, result.Annotations, nil
}
