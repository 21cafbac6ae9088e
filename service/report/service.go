package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/elC0mpa/azure-optimizer/model"
	"github.com/elC0mpa/azure-optimizer/service/optimizer"
)

type service struct {
	cfg model.Config
}

func NewService(cfg model.Config) *service {
	return &service{cfg: cfg}
}

// Assemble builds the report document from a run's findings. Every
// collection is non-nil so the JSON output always carries the full shape,
// and the summary totals are derived from the findings themselves.
func (s *service) Assemble(result optimizer.Result, now time.Time) *model.Report {
	report := &model.Report{
		Timestamp: now.UTC().Format(time.RFC3339),
		Metadata: model.Metadata{
			SubscriptionID: s.cfg.SubscriptionID,
			TimePeriod: model.TimePeriod{
				StartDate: s.cfg.StartDate.UTC().Format("2006-01-02"),
				EndDate:   s.cfg.EndDate.UTC().Format("2006-01-02"),
			},
			Thresholds: model.Thresholds{
				CPUThreshold:               s.cfg.CPUThreshold,
				DiskAgeThresholdDays:       s.cfg.DiskAgeThresholdDays,
				AnomalyPercentageThreshold: s.cfg.AnomalyPercentageThreshold,
			},
		},
		IdleVMs:       result.IdleVMs,
		SKUResizes:    result.SKUResizes,
		OrphanedDisks: result.OrphanedDisks,
		CostAnomalies: result.CostAnomalies,
	}

	if report.IdleVMs == nil {
		report.IdleVMs = []model.IdleVM{}
	}
	if report.SKUResizes == nil {
		report.SKUResizes = []model.SKUResize{}
	}
	if report.OrphanedDisks == nil {
		report.OrphanedDisks = []model.OrphanedDisk{}
	}
	if report.CostAnomalies == nil {
		report.CostAnomalies = []model.CostAnomaly{}
	}

	report.Summary = summarize(report)
	return report
}

// Write persists the report as indented JSON, creating the parent
// directory when it does not exist yet.
func (s *service) Write(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return &model.WriteError{Path: path, Err: err}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &model.WriteError{Path: path, Err: err}
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &model.WriteError{Path: path, Err: err}
	}
	return nil
}

// summarize counts every recommendation and adds up the savings that have
// an estimate. Missing estimates contribute nothing to the total.
func summarize(report *model.Report) model.Summary {
	summary := model.Summary{
		TotalRecommendations: len(report.IdleVMs) + len(report.SKUResizes) +
			len(report.OrphanedDisks) + len(report.CostAnomalies),
	}

	for _, v := range report.IdleVMs {
		if v.EstimatedSavings != nil {
			summary.TotalEstimatedSavings += *v.EstimatedSavings
		}
	}
	for _, v := range report.SKUResizes {
		if v.EstimatedSavings != nil {
			summary.TotalEstimatedSavings += *v.EstimatedSavings
		}
	}
	for _, v := range report.OrphanedDisks {
		if v.EstimatedSavings != nil {
			summary.TotalEstimatedSavings += *v.EstimatedSavings
		}
	}

	return summary
}
