package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/monitor/azquery"

	"github.com/elC0mpa/azure-optimizer/model"
)

func NewService(workspaceID string, credential azcore.TokenCredential) (*service, error) {
	client, err := azquery.NewLogsClient(credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create logs client: %w", err)
	}

	return &service{
		workspaceID: workspaceID,
		client:      client,
	}, nil
}

// QueryMetrics implements service.MetricsService. A non-empty workspaceID
// overrides the configured workspace for this call. The query must project
// a ResourceId string column and an AverageCpu numeric column; malformed
// rows are skipped.
func (s *service) QueryMetrics(ctx context.Context, query, workspaceID string) ([]model.UsageRecord, error) {
	workspace := s.workspace(workspaceID)
	if workspace == "" {
		return nil, &model.ConfigurationError{
			Setting: "LOG_ANALYTICS_WORKSPACE_ID",
			Reason:  "is required for metrics queries",
		}
	}

	resp, err := s.client.QueryWorkspace(ctx, workspace, azquery.Body{
		Query: to.Ptr(query),
	}, nil)
	if err != nil {
		return nil, model.ClassifyAzureError("query metrics", err)
	}

	var records []model.UsageRecord
	for _, table := range resp.Tables {
		records = append(records, parseUsageTable(table)...)
	}
	return records, nil
}

// AverageCPUByVM implements service.MetricsService with the canned query
// the idle and right-sizing heuristics share: average processor time per
// VM resource over the window.
func (s *service) AverageCPUByVM(ctx context.Context, start, end time.Time) ([]model.UsageRecord, error) {
	query := fmt.Sprintf(`Perf
| where TimeGenerated between (datetime(%s) .. datetime(%s))
| where ObjectName == "Processor" and CounterName == "%% Processor Time"
| summarize %s = avg(CounterValue) by %s = _ResourceId`,
		start.UTC().Format(time.RFC3339),
		end.UTC().AddDate(0, 0, 1).Format(time.RFC3339),
		columnAverageCPU, columnResourceID)

	return s.QueryMetrics(ctx, query, "")
}

func (s *service) workspace(override string) string {
	if override != "" {
		return override
	}
	return s.workspaceID
}

func parseUsageTable(table *azquery.Table) []model.UsageRecord {
	if table == nil {
		return nil
	}

	resourceIdx, cpuIdx := -1, -1
	for i, col := range table.Columns {
		if col == nil || col.Name == nil {
			continue
		}
		switch *col.Name {
		case columnResourceID:
			resourceIdx = i
		case columnAverageCPU:
			cpuIdx = i
		}
	}
	if resourceIdx < 0 || cpuIdx < 0 {
		return nil
	}

	var records []model.UsageRecord
	for _, row := range table.Rows {
		if resourceIdx >= len(row) || cpuIdx >= len(row) {
			continue
		}
		resourceID, ok := row[resourceIdx].(string)
		if !ok || resourceID == "" {
			continue
		}
		cpu, ok := row[cpuIdx].(float64)
		if !ok {
			continue
		}
		records = append(records, model.UsageRecord{
			ResourceID: resourceID,
			AverageCPU: cpu,
		})
	}
	return records
}
