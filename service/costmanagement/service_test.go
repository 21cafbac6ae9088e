package costmanagement

import (
	"sync"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryResult(columns []string, rows [][]any) armcostmanagement.QueryResult {
	cols := make([]*armcostmanagement.QueryColumn, len(columns))
	for i, name := range columns {
		cols[i] = &armcostmanagement.QueryColumn{Name: to.Ptr(name)}
	}
	return armcostmanagement.QueryResult{
		Properties: &armcostmanagement.QueryProperties{
			Columns: cols,
			Rows:    rows,
		},
	}
}

const vmResourceID = "/subscriptions/sub-1/resourceGroups/rg-app/providers/Microsoft.Compute/virtualMachines/vm-1"

func TestParseCostRowsDaily(t *testing.T) {
	result := queryResult(
		[]string{"Cost", "UsageDate", "ResourceId", "Currency"},
		[][]any{
			{12.34, float64(20260801), vmResourceID, "USD"},
			{5.0, float64(20260802), vmResourceID, "USD"},
		},
	)

	records, skipped := parseCostRows(result, GroupByResource)
	require.Len(t, records, 2)
	assert.Zero(t, skipped)

	assert.Equal(t, 12.34, records[0].Amount)
	assert.Equal(t, vmResourceID, records[0].ResourceID)
	assert.Equal(t, "rg-app", records[0].ResourceGroup)
	assert.Equal(t, "USD", records[0].Currency)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), records[0].Date)
}

func TestParseCostRowsByResourceGroup(t *testing.T) {
	result := queryResult(
		[]string{"Cost", "UsageDate", "ResourceGroupName", "Currency"},
		[][]any{
			{100.0, float64(20260803), "rg-data", "USD"},
		},
	)

	records, skipped := parseCostRows(result, GroupByResourceGroup)
	require.Len(t, records, 1)
	assert.Zero(t, skipped)
	assert.Equal(t, "rg-data", records[0].ResourceGroup)
	assert.Empty(t, records[0].ResourceID)
}

func TestParseCostRowsMonthly(t *testing.T) {
	result := queryResult(
		[]string{"Cost", "BillingMonth", "ResourceGroupName", "Currency"},
		[][]any{
			{250.5, "2026-08-01T00:00:00", "rg-data", "USD"},
		},
	)

	records, skipped := parseCostRows(result, GroupByResourceGroup)
	require.Len(t, records, 1)
	assert.Zero(t, skipped)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), records[0].Date)
}

func TestParseCostRowsSkipsMalformed(t *testing.T) {
	result := queryResult(
		[]string{"Cost", "UsageDate", "ResourceId", "Currency"},
		[][]any{
			{"not-a-number", float64(20260801), vmResourceID, "USD"},
			{9.99, "not-a-date", vmResourceID, "USD"},
			{9.99, float64(20260801), 12345, "USD"},
			{1.0, float64(20260804), vmResourceID, "USD"},
		},
	)

	records, skipped := parseCostRows(result, GroupByResource)
	require.Len(t, records, 1)
	assert.Equal(t, 3, skipped)
	assert.Equal(t, 1.0, records[0].Amount)
}

func TestParseCostRowsMissingColumns(t *testing.T) {
	result := queryResult(
		[]string{"SomethingElse"},
		[][]any{{1.0}, {2.0}},
	)

	records, skipped := parseCostRows(result, GroupByResource)
	assert.Empty(t, records)
	assert.Equal(t, 2, skipped)
}

func TestParseCostRowsEmptyResult(t *testing.T) {
	records, skipped := parseCostRows(armcostmanagement.QueryResult{}, GroupByResource)
	assert.Empty(t, records)
	assert.Zero(t, skipped)
}

func TestParseTagRows(t *testing.T) {
	result := queryResult(
		[]string{"Cost", "environment", "Currency"},
		[][]any{
			{10.0, "production", "USD"},
			{2.5, "staging", "USD"},
			{"bad", "dev", "USD"},
		},
	)

	costs, skipped := parseTagRows(result)
	require.Len(t, costs, 2)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, "production", costs[0].TagValue)
	assert.Equal(t, 10.0, costs[0].Amount)
}

func TestSkippedRowsConcurrent(t *testing.T) {
	// The same service instance backs rules the engine evaluates on
	// parallel workers, so the counter must tolerate concurrent updates.
	s := &service{}

	const workers = 8
	const perWorker = 500

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				s.recordSkipped(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*perWorker, s.SkippedRows())
}

func TestResourceGroupOf(t *testing.T) {
	cases := map[string]string{
		vmResourceID: "rg-app",
		"/subscriptions/sub-1/resourcegroups/RG-Lower/providers/x/y/z": "RG-Lower",
		"/subscriptions/sub-1": "",
		"":                     "",
	}
	for id, want := range cases {
		assert.Equal(t, want, resourceGroupOf(id), "resource id %q", id)
	}
}
