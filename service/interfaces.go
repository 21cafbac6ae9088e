package service

import (
	"context"
	"time"

	"github.com/elC0mpa/azure-optimizer/model"
)

// IdentityService resolves which subscription a run targets.
type IdentityService interface {
	ListSubscriptions(ctx context.Context) ([]string, error)
	Resolve(ctx context.Context, configured string) (string, error)
}

// CostService provides billing queries, normalized into plain records.
type CostService interface {
	QueryCost(ctx context.Context, start, end time.Time, granularity model.Granularity, groupBy string) ([]model.CostRecord, error)
	QueryCostByTag(ctx context.Context, tagName string, start, end time.Time) ([]model.TagCost, error)
}

// ResourceService lists compute resources relevant to the heuristics.
type ResourceService interface {
	ListDisks(ctx context.Context) ([]model.DiskRecord, error)
	ListVirtualMachines(ctx context.Context) ([]model.VMRecord, error)
}

// MetricsService runs Log Analytics queries and returns aggregated usage.
// An empty workspaceID selects the workspace the service was configured
// with.
type MetricsService interface {
	QueryMetrics(ctx context.Context, query, workspaceID string) ([]model.UsageRecord, error)
	AverageCPUByVM(ctx context.Context, start, end time.Time) ([]model.UsageRecord, error)
}

// SecretService fetches named secrets from the configured secret store.
type SecretService interface {
	GetSecret(ctx context.Context, name string) (string, error)
}
