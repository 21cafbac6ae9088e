package commands

import (
	"github.com/spf13/cobra"

	"github.com/elC0mpa/azure-optimizer/model"
	"github.com/elC0mpa/azure-optimizer/service/costmanagement"
	"github.com/elC0mpa/azure-optimizer/service/optimizer"
	"github.com/elC0mpa/azure-optimizer/utils"
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Chart daily spend over the analysis window",
	RunE:  runTrend,
}

func runTrend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	utils.DrawBanner()

	cfg, services, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	utils.StartSpinner("querying daily costs...")
	records, err := services.cost.QueryCost(ctx, cfg.StartDate, cfg.EndDate,
		model.GranularityDaily, costmanagement.GroupByResourceGroup)
	utils.StopSpinner()
	if err != nil {
		return err
	}

	result := optimizer.DetectAnomalies(records, cfg)
	utils.DrawDailyCostChart(records, result.CostAnomalies)
	return nil
}
