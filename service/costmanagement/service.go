package costmanagement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement/v2"

	"github.com/elC0mpa/azure-optimizer/model"
)

func NewService(subscriptionID string, credential azcore.TokenCredential) (*service, error) {
	client, err := armcostmanagement.NewQueryClient(credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cost management client: %w", err)
	}

	return &service{
		subscriptionID: subscriptionID,
		client:         client,
	}, nil
}

// QueryCost implements service.CostService. Dates are inclusive; the rows
// are normalized into CostRecords with malformed rows skipped and counted.
func (s *service) QueryCost(ctx context.Context, start, end time.Time, granularity model.Granularity, groupBy string) ([]model.CostRecord, error) {
	if start.After(end) {
		return nil, &model.InvalidRangeError{Start: start, End: end}
	}

	scope := fmt.Sprintf("/subscriptions/%s", s.subscriptionID)

	queryDefinition := armcostmanagement.QueryDefinition{
		Type:      to.Ptr(armcostmanagement.ExportTypeActualCost),
		Timeframe: to.Ptr(armcostmanagement.TimeframeTypeCustom),
		TimePeriod: &armcostmanagement.QueryTimePeriod{
			From: to.Ptr(start),
			To:   to.Ptr(end),
		},
		Dataset: &armcostmanagement.QueryDataset{
			Granularity: to.Ptr(armcostmanagement.GranularityType(granularity)),
			Aggregation: map[string]*armcostmanagement.QueryAggregation{
				"totalCost": {
					Name:     to.Ptr("Cost"),
					Function: to.Ptr(armcostmanagement.FunctionTypeSum),
				},
			},
			Grouping: []*armcostmanagement.QueryGrouping{
				{
					Type: to.Ptr(armcostmanagement.QueryColumnTypeDimension),
					Name: to.Ptr(groupBy),
				},
			},
		},
	}

	resp, err := s.client.Usage(ctx, scope, queryDefinition, nil)
	if err != nil {
		return nil, model.ClassifyAzureError("query cost", err)
	}

	records, skipped := parseCostRows(resp.QueryResult, groupBy)
	s.recordSkipped(skipped)
	return records, nil
}

// QueryCostByTag implements service.CostService. Cost is aggregated per
// distinct value of the given tag over the window.
func (s *service) QueryCostByTag(ctx context.Context, tagName string, start, end time.Time) ([]model.TagCost, error) {
	if start.After(end) {
		return nil, &model.InvalidRangeError{Start: start, End: end}
	}

	scope := fmt.Sprintf("/subscriptions/%s", s.subscriptionID)

	queryDefinition := armcostmanagement.QueryDefinition{
		Type:      to.Ptr(armcostmanagement.ExportTypeActualCost),
		Timeframe: to.Ptr(armcostmanagement.TimeframeTypeCustom),
		TimePeriod: &armcostmanagement.QueryTimePeriod{
			From: to.Ptr(start),
			To:   to.Ptr(end),
		},
		Dataset: &armcostmanagement.QueryDataset{
			Aggregation: map[string]*armcostmanagement.QueryAggregation{
				"totalCost": {
					Name:     to.Ptr("Cost"),
					Function: to.Ptr(armcostmanagement.FunctionTypeSum),
				},
			},
			Grouping: []*armcostmanagement.QueryGrouping{
				{
					Type: to.Ptr(armcostmanagement.QueryColumnTypeTagKey),
					Name: to.Ptr(tagName),
				},
			},
		},
	}

	resp, err := s.client.Usage(ctx, scope, queryDefinition, nil)
	if err != nil {
		return nil, model.ClassifyAzureError("query cost by tag", err)
	}

	costs, skipped := parseTagRows(resp.QueryResult)
	s.recordSkipped(skipped)
	return costs, nil
}

func (s *service) recordSkipped(n int) {
	if n > 0 {
		s.skippedRows.Add(int64(n))
	}
}

// SkippedRows returns how many malformed response rows this service has
// dropped so far. Safe to call while queries are in flight.
func (s *service) SkippedRows() int { return int(s.skippedRows.Load()) }

// parseCostRows normalizes a grouped cost query response. Rows whose cost,
// date, or group cell is missing or of the wrong type are skipped.
func parseCostRows(result armcostmanagement.QueryResult, groupBy string) ([]model.CostRecord, int) {
	if result.Properties == nil {
		return nil, 0
	}

	idx := columnIndex(result.Properties.Columns)
	costIdx, costOK := idx[columnCost]
	groupIdx, groupOK := idx[groupBy]
	if !costOK || !groupOK {
		return nil, len(result.Properties.Rows)
	}
	currencyIdx, currencyOK := idx[columnCurrency]

	var records []model.CostRecord
	var skipped int

	for _, row := range result.Properties.Rows {
		cost, ok := cell[float64](row, costIdx)
		if !ok {
			skipped++
			continue
		}
		group, ok := cell[string](row, groupIdx)
		if !ok {
			skipped++
			continue
		}
		date, ok := rowDate(row, idx)
		if !ok {
			skipped++
			continue
		}

		record := model.CostRecord{
			Date:   date,
			Amount: cost,
		}
		if currencyOK {
			record.Currency, _ = cell[string](row, currencyIdx)
		}

		switch groupBy {
		case GroupByResourceGroup:
			record.ResourceGroup = group
		default:
			record.ResourceID = group
			record.ResourceGroup = resourceGroupOf(group)
		}

		records = append(records, record)
	}

	return records, skipped
}

func parseTagRows(result armcostmanagement.QueryResult) ([]model.TagCost, int) {
	if result.Properties == nil {
		return nil, 0
	}

	idx := columnIndex(result.Properties.Columns)
	costIdx, costOK := idx[columnCost]
	if !costOK {
		return nil, len(result.Properties.Rows)
	}
	currencyIdx, currencyOK := idx[columnCurrency]

	var costs []model.TagCost
	var skipped int

	for _, row := range result.Properties.Rows {
		cost, ok := cell[float64](row, costIdx)
		if !ok {
			skipped++
			continue
		}

		// The tag value is the remaining string cell; the response names
		// its column after the tag key, which the caller chose.
		value := ""
		for i, c := range row {
			if i == costIdx || (currencyOK && i == currencyIdx) {
				continue
			}
			if v, ok := c.(string); ok {
				value = v
				break
			}
		}

		tc := model.TagCost{TagValue: value, Amount: cost}
		if currencyOK {
			tc.Currency, _ = cell[string](row, currencyIdx)
		}
		costs = append(costs, tc)
	}

	return costs, skipped
}

func columnIndex(columns []*armcostmanagement.QueryColumn) map[string]int {
	idx := make(map[string]int, len(columns))
	for i, col := range columns {
		if col == nil || col.Name == nil {
			continue
		}
		idx[*col.Name] = i
	}
	return idx
}

func cell[T any](row []any, i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(row) {
		return zero, false
	}
	v, ok := row[i].(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// rowDate extracts the bucket date: daily rows carry UsageDate as a
// yyyymmdd number, monthly rows carry BillingMonth as an ISO string.
func rowDate(row []any, idx map[string]int) (time.Time, bool) {
	if i, ok := idx[columnUsageDate]; ok {
		raw, ok := cell[float64](row, i)
		if !ok {
			return time.Time{}, false
		}
		t, err := time.Parse("20060102", fmt.Sprintf("%08.0f", raw))
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	if i, ok := idx[columnBillingMonth]; ok {
		raw, ok := cell[string](row, i)
		if !ok {
			return time.Time{}, false
		}
		t, err := time.Parse("2006-01-02T15:04:05", raw)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	return time.Time{}, false
}

// resourceGroupOf extracts the resource group segment from a full resource
// ID path, empty when the path does not carry one.
func resourceGroupOf(resourceID string) string {
	parts := strings.Split(resourceID, "/")
	for i := 0; i < len(parts)-1; i++ {
		if strings.EqualFold(parts[i], "resourceGroups") {
			return parts[i+1]
		}
	}
	return ""
}
