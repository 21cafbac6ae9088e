package optimizer

import (
	"context"
	"sort"

	"github.com/elC0mpa/azure-optimizer/model"
	"github.com/elC0mpa/azure-optimizer/service"
	"github.com/elC0mpa/azure-optimizer/service/costmanagement"
)

const (
	// anomalyAttributionShare is the fraction of the day's positive cost
	// delta the listed resource groups must cover.
	anomalyAttributionShare = 0.8

	// anomalyAttributionCap bounds how many resource groups a single
	// anomaly names.
	anomalyAttributionCap = 5

	dateLayout = "2006-01-02"
)

// CostAnomalyRule compares each day's total spend against the mean of the
// preceding days and flags spikes at or above the configured percentage.
// The first day of the window has no baseline and is never flagged.
type CostAnomalyRule struct {
	Cost service.CostService
	Cfg  model.Config
}

func (r CostAnomalyRule) Name() string { return "cost-anomalies" }

func (r CostAnomalyRule) Evaluate(ctx context.Context) (Result, error) {
	records, err := r.Cost.QueryCost(ctx, r.Cfg.StartDate, r.Cfg.EndDate,
		model.GranularityDaily, costmanagement.GroupByResourceGroup)
	if err != nil {
		return Result{}, err
	}
	return DetectAnomalies(records, r.Cfg), nil
}

// DetectAnomalies runs the spike heuristic over already-fetched daily cost
// records, for callers that fetched the records for another purpose.
func DetectAnomalies(records []model.CostRecord, cfg model.Config) Result {
	totals := map[string]float64{}
	byGroup := map[string]map[string]float64{}
	var result Result
	for _, rec := range records {
		if rec.Date.IsZero() {
			result.SkippedRecords++
			continue
		}
		day := rec.Date.UTC().Format(dateLayout)
		totals[day] += rec.Amount
		if byGroup[day] == nil {
			byGroup[day] = map[string]float64{}
		}
		byGroup[day][rec.ResourceGroup] += rec.Amount
	}

	days := make([]string, 0, len(totals))
	for day := range totals {
		days = append(days, day)
	}
	sort.Strings(days)

	lookback := cfg.AnomalyLookbackDays
	for i, day := range days {
		if i == 0 {
			continue
		}

		window := days[max(0, i-lookback):i]
		var baselineSum float64
		for _, prior := range window {
			baselineSum += totals[prior]
		}
		baseline := baselineSum / float64(len(window))

		cost := totals[day]
		var pct float64
		switch {
		case baseline > 0:
			pct = (cost - baseline) / baseline * 100
		case cost > 0:
			pct = model.UnboundedPercentage
		default:
			continue
		}
		if pct < cfg.AnomalyPercentageThreshold {
			continue
		}

		result.CostAnomalies = append(result.CostAnomalies, model.CostAnomaly{
			Date:               day,
			Cost:               cost,
			Baseline:           baseline,
			PercentageIncrease: pct,
			ResourceGroups:     attributeGroups(byGroup[day], byGroup, window),
		})
	}

	return result
}

// attributeGroups names the resource groups driving a spike: those whose
// cost rose the most over their own baseline, taken in descending order
// until they cover most of the day's positive delta.
func attributeGroups(dayCosts map[string]float64, byGroup map[string]map[string]float64, window []string) []string {
	type delta struct {
		group  string
		amount float64
	}

	var deltas []delta
	var totalDelta float64
	for group, cost := range dayCosts {
		var priorSum float64
		for _, prior := range window {
			priorSum += byGroup[prior][group]
		}
		d := cost - priorSum/float64(len(window))
		if d <= 0 {
			continue
		}
		deltas = append(deltas, delta{group: group, amount: d})
		totalDelta += d
	}
	if len(deltas) == 0 {
		return nil
	}

	sort.Slice(deltas, func(i, j int) bool {
		if deltas[i].amount != deltas[j].amount {
			return deltas[i].amount > deltas[j].amount
		}
		return deltas[i].group < deltas[j].group
	})

	var groups []string
	var covered float64
	for _, d := range deltas {
		if len(groups) == anomalyAttributionCap {
			break
		}
		groups = append(groups, d.group)
		covered += d.amount
		if covered >= anomalyAttributionShare*totalDelta {
			break
		}
	}
	return groups
}
