package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/elC0mpa/azure-optimizer/model"
	"github.com/elC0mpa/azure-optimizer/service"
	"github.com/elC0mpa/azure-optimizer/service/compute"
	"github.com/elC0mpa/azure-optimizer/service/config"
	"github.com/elC0mpa/azure-optimizer/service/costmanagement"
	"github.com/elC0mpa/azure-optimizer/service/credential"
	"github.com/elC0mpa/azure-optimizer/service/identity"
	"github.com/elC0mpa/azure-optimizer/service/metrics"
	"github.com/elC0mpa/azure-optimizer/service/optimizer"
	"github.com/elC0mpa/azure-optimizer/service/orchestrator"
	"github.com/elC0mpa/azure-optimizer/service/pricing"
)

// RegisterOptimizerTools registers all optimization tools with the MCP server
func RegisterOptimizerTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool("azure_list_subscriptions",
			mcp.WithDescription("List all Azure subscriptions the current credential has access to"),
		),
		makeListSubscriptionsHandler(),
	)

	s.AddTool(
		mcp.NewTool("azure_get_idle_vms",
			mcp.WithDescription("List virtual machines whose average CPU over the analysis window is below the configured threshold, with estimated savings."),
		),
		makeRuleHandler(func(d *deps) optimizer.Rule {
			return optimizer.IdleVMRule{Metrics: d.metrics, Cost: d.cost, Cfg: d.cfg}
		}),
	)

	s.AddTool(
		mcp.NewTool("azure_get_sku_resizes",
			mcp.WithDescription("Suggest smaller VM SKUs within the same family for underutilized virtual machines."),
		),
		makeRuleHandler(func(d *deps) optimizer.Rule {
			return optimizer.SKUResizeRule{Metrics: d.metrics, Resources: d.resources, Prices: d.prices, Cfg: d.cfg}
		}),
	)

	s.AddTool(
		mcp.NewTool("azure_get_orphaned_disks",
			mcp.WithDescription("List unattached managed disks older than the configured age threshold, with estimated monthly savings."),
		),
		makeRuleHandler(func(d *deps) optimizer.Rule {
			return optimizer.OrphanedDiskRule{Resources: d.resources, Prices: d.prices, Cfg: d.cfg}
		}),
	)

	s.AddTool(
		mcp.NewTool("azure_get_cost_anomalies",
			mcp.WithDescription("Flag days whose total spend spiked against the trailing baseline, naming the resource groups driving each spike."),
		),
		makeRuleHandler(func(d *deps) optimizer.Rule {
			return optimizer.CostAnomalyRule{Cost: d.cost, Cfg: d.cfg}
		}),
	)

	s.AddTool(
		mcp.NewTool("azure_run_optimization_report",
			mcp.WithDescription("Run every optimization check and return the full recommendations report."),
		),
		makeFullReportHandler(),
	)
}

type deps struct {
	cfg       model.Config
	cost      service.CostService
	resources service.ResourceService
	metrics   service.MetricsService
	prices    pricing.PriceSource
}

func makeListSubscriptionsHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, _, err := config.Load(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to load configuration: %v", err)), nil
		}

		cred, err := credential.Resolve(cfg)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve credential: %v", err)), nil
		}

		identityService, err := identity.NewService(cred)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create identity service: %v", err)), nil
		}

		subscriptions, err := identityService.ListSubscriptions(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list subscriptions: %v", err)), nil
		}

		data, _ := json.MarshalIndent(subscriptions, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeRuleHandler(build func(*deps) optimizer.Rule) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		d, err := buildDeps(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		rule := build(d)
		result, err := rule.Evaluate(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to evaluate %s: %v", rule.Name(), err)), nil
		}

		data, _ := json.MarshalIndent(result, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeFullReportHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		d, err := buildDeps(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		orchestratorService := orchestrator.NewService(d.cost, d.resources, d.metrics, d.prices, d.cfg)
		report, _, err := orchestratorService.Run(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to run optimization report: %v", err)), nil
		}

		data, _ := json.MarshalIndent(report, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

// buildDeps loads configuration, resolves the credential and subscription,
// and builds every provider client the rules need.
func buildDeps(ctx context.Context) (*deps, error) {
	cfg, _, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cred, err := credential.Resolve(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve credential: %w", err)
	}

	identityService, err := identity.NewService(cred)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity service: %w", err)
	}
	cfg.SubscriptionID, err = identityService.Resolve(ctx, cfg.SubscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve subscription: %w", err)
	}

	costService, err := costmanagement.NewService(cfg.SubscriptionID, cred)
	if err != nil {
		return nil, fmt.Errorf("failed to create cost management service: %w", err)
	}
	computeService, err := compute.NewService(cfg.SubscriptionID, cred)
	if err != nil {
		return nil, fmt.Errorf("failed to create compute service: %w", err)
	}
	metricsService, err := metrics.NewService(cfg.WorkspaceID, cred)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics service: %w", err)
	}

	return &deps{
		cfg:       cfg,
		cost:      costService,
		resources: computeService,
		metrics:   metricsService,
		prices:    pricing.NewStaticPriceList(),
	}, nil
}
