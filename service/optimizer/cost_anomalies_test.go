package optimizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/azure-optimizer/model"
)

func dailyCost(date, group string, amount float64) model.CostRecord {
	return model.CostRecord{Date: day(date), ResourceGroup: group, Amount: amount}
}

func evaluateAnomalies(t *testing.T, cfg model.Config, records ...model.CostRecord) Result {
	t.Helper()
	rule := CostAnomalyRule{Cost: fakeCostService{records: records}, Cfg: cfg}
	result, err := rule.Evaluate(context.Background())
	require.NoError(t, err)
	return result
}

func TestCostAnomalyRule(t *testing.T) {
	t.Run("spike at exactly the threshold is flagged", func(t *testing.T) {
		result := evaluateAnomalies(t, testConfig(),
			dailyCost("2026-08-01", "rg-app", 100),
			dailyCost("2026-08-02", "rg-app", 150),
		)

		require.Len(t, result.CostAnomalies, 1)
		anomaly := result.CostAnomalies[0]
		assert.Equal(t, "2026-08-02", anomaly.Date)
		assert.Equal(t, 150.0, anomaly.Cost)
		assert.Equal(t, 100.0, anomaly.Baseline)
		assert.InDelta(t, 50.0, anomaly.PercentageIncrease, 1e-9)
		assert.Equal(t, []string{"rg-app"}, anomaly.ResourceGroups)
	})

	t.Run("spike below the threshold is not flagged", func(t *testing.T) {
		cfg := testConfig()
		cfg.AnomalyPercentageThreshold = 51

		result := evaluateAnomalies(t, cfg,
			dailyCost("2026-08-01", "rg-app", 100),
			dailyCost("2026-08-02", "rg-app", 150),
		)
		assert.Empty(t, result.CostAnomalies)
	})

	t.Run("the first day is never flagged", func(t *testing.T) {
		result := evaluateAnomalies(t, testConfig(),
			dailyCost("2026-08-01", "rg-app", 10000),
		)
		assert.Empty(t, result.CostAnomalies)
	})

	t.Run("zero baseline with nonzero spend is an unbounded spike", func(t *testing.T) {
		result := evaluateAnomalies(t, testConfig(),
			dailyCost("2026-08-01", "rg-app", 0),
			dailyCost("2026-08-02", "rg-app", 42),
		)

		require.Len(t, result.CostAnomalies, 1)
		assert.Equal(t, model.UnboundedPercentage, result.CostAnomalies[0].PercentageIncrease)
	})

	t.Run("zero baseline with zero spend is quiet", func(t *testing.T) {
		result := evaluateAnomalies(t, testConfig(),
			dailyCost("2026-08-01", "rg-app", 0),
			dailyCost("2026-08-02", "rg-app", 0),
		)
		assert.Empty(t, result.CostAnomalies)
	})

	t.Run("baseline uses at most the configured lookback", func(t *testing.T) {
		cfg := testConfig()
		cfg.AnomalyLookbackDays = 2

		// With lookback 2 the baseline for Aug 4 is (100+100)/2, so 180
		// is an 80% spike; with the full history it would include the
		// quiet first day and flag differently.
		result := evaluateAnomalies(t, cfg,
			dailyCost("2026-08-01", "rg-app", 10),
			dailyCost("2026-08-02", "rg-app", 100),
			dailyCost("2026-08-03", "rg-app", 100),
			dailyCost("2026-08-04", "rg-app", 180),
		)

		require.NotEmpty(t, result.CostAnomalies)
		last := result.CostAnomalies[len(result.CostAnomalies)-1]
		assert.Equal(t, "2026-08-04", last.Date)
		assert.Equal(t, 100.0, last.Baseline)
		assert.InDelta(t, 80.0, last.PercentageIncrease, 1e-9)
	})

	t.Run("resource groups are attributed by positive delta", func(t *testing.T) {
		result := evaluateAnomalies(t, testConfig(),
			dailyCost("2026-08-01", "rg-app", 50),
			dailyCost("2026-08-01", "rg-data", 50),
			dailyCost("2026-08-02", "rg-app", 200),
			dailyCost("2026-08-02", "rg-data", 40),
		)

		require.Len(t, result.CostAnomalies, 1)
		// rg-app rose by 150 and covers the whole positive delta on its
		// own; rg-data fell and must not appear.
		assert.Equal(t, []string{"rg-app"}, result.CostAnomalies[0].ResourceGroups)
	})

	t.Run("attribution is capped at five groups", func(t *testing.T) {
		records := []model.CostRecord{}
		groups := []string{"rg-a", "rg-b", "rg-c", "rg-d", "rg-e", "rg-f", "rg-g"}
		for _, g := range groups {
			records = append(records, dailyCost("2026-08-01", g, 10))
			records = append(records, dailyCost("2026-08-02", g, 100))
		}

		result := evaluateAnomalies(t, testConfig(), records...)
		require.Len(t, result.CostAnomalies, 1)
		assert.LessOrEqual(t, len(result.CostAnomalies[0].ResourceGroups), 5)
	})

	t.Run("empty cost data yields empty result", func(t *testing.T) {
		result := evaluateAnomalies(t, testConfig())
		assert.Empty(t, result.CostAnomalies)
	})

	t.Run("detection over fetched records matches the rule", func(t *testing.T) {
		records := []model.CostRecord{
			dailyCost("2026-08-01", "rg-app", 100),
			dailyCost("2026-08-02", "rg-app", 150),
		}

		fromRule := evaluateAnomalies(t, testConfig(), records...)
		fromRecords := DetectAnomalies(records, testConfig())
		assert.Equal(t, fromRule.CostAnomalies, fromRecords.CostAnomalies)
		assert.Equal(t, fromRule.SkippedRecords, fromRecords.SkippedRecords)
	})

	t.Run("undated records are counted as skipped", func(t *testing.T) {
		result := evaluateAnomalies(t, testConfig(),
			model.CostRecord{ResourceGroup: "rg-app", Amount: 10},
		)
		assert.Equal(t, 1, result.SkippedRecords)
	})
}
