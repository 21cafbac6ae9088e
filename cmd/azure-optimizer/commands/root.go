package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/elC0mpa/azure-optimizer/model"
	"github.com/elC0mpa/azure-optimizer/service"
	"github.com/elC0mpa/azure-optimizer/service/compute"
	"github.com/elC0mpa/azure-optimizer/service/config"
	"github.com/elC0mpa/azure-optimizer/service/costmanagement"
	"github.com/elC0mpa/azure-optimizer/service/credential"
	"github.com/elC0mpa/azure-optimizer/service/identity"
	"github.com/elC0mpa/azure-optimizer/service/metrics"
	"github.com/elC0mpa/azure-optimizer/service/orchestrator"
	"github.com/elC0mpa/azure-optimizer/service/pricing"
	"github.com/elC0mpa/azure-optimizer/utils"
)

var (
	flagSubscriptionID string
	flagStartDate      string
	flagEndDate        string
	flagOutput         string
)

var rootCmd = &cobra.Command{
	Use:   "azure-optimizer",
	Short: "Azure cost governance and optimization",
	Long: `azure-optimizer analyzes an Azure subscription for idle compute,
oversized SKUs, orphaned disks and daily cost anomalies, and writes a
recommendations report.`,
	RunE: runAnalysis,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(text.FgHiRed.Sprint(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagSubscriptionID, "subscription-id", "", "Azure subscription to analyze")
	rootCmd.PersistentFlags().StringVar(&flagStartDate, "start-date", "", "Analysis window start (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&flagEndDate, "end-date", "", "Analysis window end (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&flagOutput, "output", "", "Report output path")

	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(subscriptionsCmd)
	rootCmd.AddCommand(tagsCmd)
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	utils.DrawBanner()

	cfg, services, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	utils.StartSpinner("analyzing subscription...")
	orchestratorService := orchestrator.NewService(
		services.cost, services.resources, services.metrics, pricing.NewStaticPriceList(), cfg)
	report, annotations, err := orchestratorService.Run(ctx)
	utils.StopSpinner()
	if err != nil {
		return err
	}

	for _, note := range annotations {
		fmt.Printf(" %s %s\n", text.FgHiYellow.Sprint("⚠"), note)
	}
	if skipped := services.costSkipped(); skipped > 0 {
		fmt.Printf(" %s %d malformed billing rows skipped\n", text.FgHiYellow.Sprint("⚠"), skipped)
	}

	utils.DrawReportSummary(report)
	utils.DrawOrphanedDisksTable(report.OrphanedDisks)
	fmt.Printf("\n Report written to %s\n", text.FgGreen.Sprint(cfg.OutputPath))
	return nil
}

type resolvedServices struct {
	cost      service.CostService
	resources service.ResourceService
	metrics   service.MetricsService

	// costSkipped reports how many malformed billing rows the cost
	// service dropped so far.
	costSkipped func() int
}

// bootstrap loads configuration, resolves a credential and subscription,
// and builds the provider clients every command needs.
func bootstrap(ctx context.Context) (model.Config, resolvedServices, error) {
	cfg, warnings, err := config.Load(ctx)
	if err != nil {
		return model.Config{}, resolvedServices{}, err
	}
	for _, warning := range warnings {
		fmt.Printf(" %s %s\n", text.FgHiYellow.Sprint("⚠"), warning)
	}

	if err := applyFlagOverrides(&cfg); err != nil {
		return model.Config{}, resolvedServices{}, err
	}
	if err := cfg.Validate(); err != nil {
		return model.Config{}, resolvedServices{}, err
	}

	cred, err := credential.Resolve(cfg)
	if err != nil {
		return model.Config{}, resolvedServices{}, err
	}

	identityService, err := identity.NewService(cred)
	if err != nil {
		return model.Config{}, resolvedServices{}, err
	}
	cfg.SubscriptionID, err = identityService.Resolve(ctx, cfg.SubscriptionID)
	if err != nil {
		return model.Config{}, resolvedServices{}, err
	}

	costService, err := costmanagement.NewService(cfg.SubscriptionID, cred)
	if err != nil {
		return model.Config{}, resolvedServices{}, err
	}
	computeService, err := compute.NewService(cfg.SubscriptionID, cred)
	if err != nil {
		return model.Config{}, resolvedServices{}, err
	}
	metricsService, err := metrics.NewService(cfg.WorkspaceID, cred)
	if err != nil {
		return model.Config{}, resolvedServices{}, err
	}

	return cfg, resolvedServices{
		cost:        costService,
		resources:   computeService,
		metrics:     metricsService,
		costSkipped: costService.SkippedRows,
	}, nil
}

func applyFlagOverrides(cfg *model.Config) error {
	if flagSubscriptionID != "" {
		cfg.SubscriptionID = flagSubscriptionID
	}
	if flagOutput != "" {
		cfg.OutputPath = flagOutput
	}
	if flagStartDate != "" {
		start, err := time.Parse("2006-01-02", flagStartDate)
		if err != nil {
			return &model.ConfigurationError{Setting: "start-date", Reason: err.Error()}
		}
		cfg.StartDate = start
	}
	if flagEndDate != "" {
		end, err := time.Parse("2006-01-02", flagEndDate)
		if err != nil {
			return &model.ConfigurationError{Setting: "end-date", Reason: err.Error()}
		}
		cfg.EndDate = end
	}
	return nil
}
